package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/iCreativate/peboli-sub000/config"
	"github.com/iCreativate/peboli-sub000/importer"
	"github.com/iCreativate/peboli-sub000/utils"
)

// go run cmd/importcli/main.go -render=browser "https://example.com/product/123"
func main() {
	render := flag.String("render", "", "Fetch strategy: empty (plain HTTP), 'browser' (chromedp) or 'full' (selenium)")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: importcli [-render=browser|full] <url> [<url> ...]")
		os.Exit(1)
	}

	config.LoadConfig()
	logrus.SetLevel(logrus.WarnLevel)

	converter := importer.NewCurrencyConverter(config.FXAPIURL, nil, logrus.StandardLogger())
	pipeline := importer.New(converter, logrus.StandardLogger())

	for _, rawURL := range flag.Args() {
		fmt.Printf("Importing: %s\n", rawURL)

		pageURL := rawURL
		if utils.IsShortenedURL(pageURL) {
			if resolved, err := utils.ResolveShortenedURL(pageURL); err == nil {
				pageURL = resolved
				fmt.Printf("Resolved URL: %s\n", pageURL)
			}
		}

		product, err := pipeline.Import(context.Background(), pageURL, importer.Options{Render: *render})
		if err != nil {
			logrus.Errorf("Import failed for %s: %v", pageURL, err)
			continue
		}

		b, _ := json.MarshalIndent(product, "", "  ")
		fmt.Printf("Product: %s\n", string(b))
		fmt.Println("--------------------------------------------------")
	}
}
