package utils

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const mirrorFolderPrefix = "product_images"

// MirrorImagesToS3 downloads the harvested image URLs and re-uploads them to
// S3 under product_images/, returning a sourceURL -> objectKey map. Failures
// on individual images are logged and skipped; the caller falls back to the
// original URL for anything missing from the map.
func MirrorImagesToS3(ctx context.Context, urls []string) (map[string]string, error) {
	urlToKey := make(map[string]string)
	var mu sync.Mutex
	var wg sync.WaitGroup

	// Limit concurrency
	semaphore := make(chan struct{}, 5)

	for i, url := range urls {
		if url == "" {
			continue
		}
		wg.Add(1)
		go func(i int, url string) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			filename := filepath.Base(url)
			if idx := strings.Index(filename, "?"); idx >= 0 {
				filename = filename[:idx]
			}
			if filename == "" || len(filename) > 255 {
				filename = fmt.Sprintf("image_%d.jpg", i)
			}
			filename = fmt.Sprintf("%d_%s", time.Now().UnixNano(), filename)
			objectKey := fmt.Sprintf("%s/%s", mirrorFolderPrefix, filename)

			if err := downloadAndUpload(ctx, url, objectKey); err != nil {
				logrus.WithError(err).WithField("url", url).Warn("Failed to mirror image")
				return
			}

			mu.Lock()
			urlToKey[url] = objectKey
			mu.Unlock()
		}(i, url)
	}

	wg.Wait()
	return urlToKey, nil
}

func downloadAndUpload(ctx context.Context, url, objectKey string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download status %d", resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	_, err = UploadFileToS3(ctx, resp.Body, objectKey, contentType)
	return err
}

// PresignImageURLs swaps mirrored object keys for presigned URLs. Anything
// that is already an http(s) URL, or fails to presign, is passed through.
func PresignImageURLs(ctx context.Context, images []string) []string {
	presigned := make([]string, 0, len(images))
	for _, img := range images {
		if strings.HasPrefix(img, "http") {
			presigned = append(presigned, img)
			continue
		}
		if url, err := GetPresignedURL(ctx, img); err == nil {
			presigned = append(presigned, url)
		} else {
			presigned = append(presigned, img)
		}
	}
	return presigned
}
