package importer

import (
	"context"
	"fmt"
	"time"

	"github.com/tebeka/selenium"
	"github.com/tebeka/selenium/chrome"
)

const chromeDriverPath = "/usr/local/bin/chromedriver"

// SeleniumFetcher drives a full Chrome instance through ChromeDriver. Slowest
// strategy, reserved for sites that fingerprint headless Chrome.
type SeleniumFetcher struct{}

func (s *SeleniumFetcher) Fetch(ctx context.Context, url string) (string, error) {
	initPortManager(4444, 16)

	port, err := globalPortManager.GetPort()
	if err != nil {
		return "", fmt.Errorf("port error: %w", err)
	}
	defer globalPortManager.ReleasePort(port)

	service, err := selenium.NewChromeDriverService(chromeDriverPath, port)
	if err != nil {
		return "", fmt.Errorf("error starting Chrome driver service: %v", err)
	}
	defer service.Stop()

	caps := selenium.Capabilities{"browserName": "chrome"}
	userAgent := "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	chromeCaps := chrome.Capabilities{
		Args: []string{
			"--headless=new",
			"--no-sandbox",
			"--disable-dev-shm-usage",
			"--disable-blink-features=AutomationControlled",
			"--disable-extensions",
			"--disable-gpu",
			"--window-size=1920,1080",
			fmt.Sprintf("--user-agent=%s", userAgent),
		},
		ExcludeSwitches: []string{"enable-automation"},
		Prefs: map[string]interface{}{
			"profile.default_content_setting_values.notifications": 2,
		},
	}
	caps.AddChrome(chromeCaps)

	driver, err := selenium.NewRemote(caps, fmt.Sprintf("http://localhost:%d/wd/hub", port))
	if err != nil {
		return "", fmt.Errorf("error creating WebDriver: %v", err)
	}
	defer driver.Quit()

	maskScript := `
        Object.defineProperty(navigator, 'webdriver', {get: () => undefined});
        window.chrome = {runtime: {}};
        delete window.cdc_adoQpoasnfa76pfcZLmcfl_Array;
        delete window.cdc_adoQpoasnfa76pfcZLmcfl_Promise;
        delete window.cdc_adoQpoasnfa76pfcZLmcfl_Symbol;
    `

	driver.SetPageLoadTimeout(60 * time.Second)

	if err := driver.Get(url); err != nil {
		return "", fmt.Errorf("navigation error: %w", err)
	}

	driver.ExecuteScript(maskScript, nil)
	time.Sleep(2 * time.Second)

	source, err := driver.PageSource()
	if err != nil {
		return "", fmt.Errorf("error reading page source: %v", err)
	}
	return source, nil
}
