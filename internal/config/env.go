package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// envFiles are loaded in order; variables already set are never overridden.
var envFiles = []string{".env", ".env.local"}

// loadEnvFiles loads the .env files that exist. Missing files are ignored.
func loadEnvFiles() error {
	for _, name := range envFiles {
		if _, err := os.Stat(name); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(name); err != nil {
			return err
		}
	}
	return nil
}
