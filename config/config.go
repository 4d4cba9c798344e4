package config

import (
	"log"
	"os"
	"sync"

	"github.com/joho/godotenv"
)

type Config struct {
	TgToken       string
	HttpAddr      string
	UploadBaseURL string
}

var (
	config *Config
	once   sync.Once
)

// GetConfig returns the process-wide configuration singleton.
func GetConfig() *Config {
	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			log.Println("no .env file found, using environment variables")
		}

		config = &Config{
			TgToken:       os.Getenv("TG_TOKEN"),
			HttpAddr:      os.Getenv("HTTP_ADDR"),
			UploadBaseURL: os.Getenv("UPLOAD_BASE_URL"),
		}
		if config.HttpAddr == "" {
			config.HttpAddr = ":8005"
		}
		if config.UploadBaseURL == "" {
			config.UploadBaseURL = "http://localhost:8005"
		}
	})
	return config
}
