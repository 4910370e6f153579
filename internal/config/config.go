package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL  string
	RedisAddr    string
	KafkaAddress string
	ESURL        string
	ESUser       string
	ESPassword   string
	ServerPort   string
	LogLevel     string
}

func must(v string, name string) string {
	if v == "" {
		log.Fatalf("missing required env %s", name)
	}
	return v
}

func getenvDefault(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}

func Load() *Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	cfg := &Config{
		DatabaseURL:  must(os.Getenv("DATABASE_URL"), "DATABASE_URL"),
		RedisAddr:    must(os.Getenv("REDIS_ADDR"), "REDIS_ADDR"),
		KafkaAddress: must(os.Getenv("KAFKA_ADDRESS"), "KAFKA_ADDRESS"),
		ESURL:        must(os.Getenv("ES_URL"), "ES_URL"),
		ESUser:       os.Getenv("ES_USER"),
		ESPassword:   os.Getenv("ES_PASSWORD"),
		ServerPort:   getenvDefault("SERVER_PORT", "8080"),
		LogLevel:     getenvDefault("LOG_LEVEL", "info"),
	}

	return cfg
}
