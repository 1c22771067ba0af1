package config

import (
	"log"
	"os"
	"sync"

	"github.com/joho/godotenv"
)

// Config holds the connection strings sourced from .env or the environment.
// Everything about how a run behaves lives in ReportConfig instead.
type Config struct {
	DbDsn      string
	SQLitePath string
}

var (
	config *Config
	once   sync.Once
)

// GetConfig returns the singleton environment config.
func GetConfig() *Config {
	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			log.Println("no .env file, reading environment as is")
		}

		config = &Config{
			DbDsn:      os.Getenv("DB_DSN"),
			SQLitePath: os.Getenv("SQLITE_PATH"),
		}
	})
	return config
}
