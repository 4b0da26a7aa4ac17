package main

import (
	"net/http"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/iCreativate/peboli-sub000/api"
	"github.com/iCreativate/peboli-sub000/config"
	"github.com/iCreativate/peboli-sub000/importer"
	"github.com/iCreativate/peboli-sub000/observability"
	"github.com/iCreativate/peboli-sub000/utils"
)

func main() {
	config.LoadConfig()

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})
	if levelStr := os.Getenv("LOG_LEVEL"); levelStr != "" {
		if level, err := logrus.ParseLevel(levelStr); err == nil {
			logrus.SetLevel(level)
		}
	}

	// Mongo holds import history and admin accounts; the import pipeline
	// itself runs fine without it.
	if err := utils.ConnectMongo(config.MongoURI); err != nil {
		logrus.WithError(err).Warn("MongoDB unavailable, import history and auth disabled")
	}
	utils.ConnectRedis(config.RedisURL)

	converter := importer.NewCurrencyConverter(config.FXAPIURL, utils.RDB, logrus.StandardLogger())
	api.Pipeline = importer.New(converter, logrus.StandardLogger())

	mux := http.NewServeMux()

	mux.HandleFunc("/api/import-product", utils.CORSMiddleware(api.AuthMiddleware(api.ImportProductHandler)))
	mux.HandleFunc("/api/import-history", utils.CORSMiddleware(api.AuthMiddleware(api.ImportHistoryHandler)))
	mux.HandleFunc("/api/suggest-category", utils.CORSMiddleware(api.AuthMiddleware(api.SuggestCategoryHandler)))

	mux.HandleFunc("/auth/signup", utils.CORSMiddleware(api.SignupHandler))
	mux.HandleFunc("/auth/verify-otp", utils.CORSMiddleware(api.VerifyOTPHandler))
	mux.HandleFunc("/auth/login", utils.CORSMiddleware(api.LoginHandler))

	mux.Handle("/metrics", observability.Handler())

	logrus.Infof("Server starting on port %s", config.Port)
	logrus.Infof("Usage: curl \"http://localhost:%s/api/import-product?url=<product_url>\"", config.Port)
	if err := http.ListenAndServe(":"+config.Port, utils.LatencyMiddleware(mux)); err != nil {
		logrus.Fatalf("Server failed to start: %v", err)
	}
}
