package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

var (
	Port          string
	MongoURI      string
	RedisURL      string
	FXAPIURL      string
	AWSRegion     string
	AWSBucketName string
	GeminiAPIKey  string
	JWTSecret     string
	RequireAuth   bool
)

// LoadConfig loads environment variables from .env file
func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using system environment variables")
	}

	Port = getEnv("PORT", "8080")

	MongoURI = getEnv("MONGO_URI", "mongodb://localhost:27017/")
	RedisURL = os.Getenv("REDIS_URL")

	FXAPIURL = getEnv("FX_API_URL", "https://api.exchangerate.host/convert")

	AWSRegion = getEnv("AWS_REGION", "af-south-1")
	AWSBucketName = os.Getenv("AWS_BUCKET_NAME")

	GeminiAPIKey = os.Getenv("GEMINI_API_KEY")

	JWTSecret = os.Getenv("JWT_SECRET")
	RequireAuth = os.Getenv("REQUIRE_AUTH") == "true"
}

func getEnv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}
