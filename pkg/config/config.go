package config

import (
	"log"
	"os"
	"sync"

	"github.com/joho/godotenv"
)

var (
	once     sync.Once
	instance *Config
)

type Config struct {
}

func New() *Config {
	once.Do(func() {
		err := godotenv.Load("./configs/.env")
		if err != nil {
			log.Println("loading envs error: ", err)
			log.Println("falling back to process environment")
		}
		instance = &Config{}
	})
	return instance
}

func (c *Config) GetString(key string) string {
	return os.Getenv(key)
}

// MustGetString aborts startup on an absent key. Database settings go
// through here so the provider never connects with empty credentials.
func (c *Config) MustGetString(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatal("required config key is not set: " + key)
	}
	return v
}

func (c *Config) GetStringOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
