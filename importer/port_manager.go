package importer

import (
	"fmt"
	"sync"
)

// PortManager hands out ChromeDriver ports so parallel selenium fetches do
// not collide.
type PortManager struct {
	basePort  int
	portRange int
	portMap   map[int]bool
	mutex     sync.Mutex
}

var (
	globalPortManager *PortManager
	portManagerOnce   sync.Once
)

func initPortManager(basePort, portRange int) {
	portManagerOnce.Do(func() {
		globalPortManager = NewPortManager(basePort, portRange)
	})
}

func NewPortManager(basePort, portRange int) *PortManager {
	portMap := make(map[int]bool)
	for i := 0; i < portRange; i++ {
		portMap[basePort+i] = false
	}
	return &PortManager{
		basePort:  basePort,
		portRange: portRange,
		portMap:   portMap,
	}
}

// GetPort allocates a free port, or errors when all are in use
func (pm *PortManager) GetPort() (int, error) {
	pm.mutex.Lock()
	defer pm.mutex.Unlock()

	for i := 0; i < pm.portRange; i++ {
		port := pm.basePort + i
		if !pm.portMap[port] {
			pm.portMap[port] = true
			return port, nil
		}
	}
	return 0, fmt.Errorf("no available ports in range %d-%d", pm.basePort, pm.basePort+pm.portRange-1)
}

// ReleasePort returns a port to the pool
func (pm *PortManager) ReleasePort(port int) {
	pm.mutex.Lock()
	defer pm.mutex.Unlock()
	pm.portMap[port] = false
}
