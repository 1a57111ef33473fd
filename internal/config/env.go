package config

import (
	"os"

	"github.com/joho/godotenv"
)

var envFiles = []string{".env", ".env.local"}

// loadEnvFiles loads the .env files present in the working directory. Variables that
// are already set are kept, and the first file wins over later ones.
func loadEnvFiles() ([]string, error) {
	var present []string
	for _, name := range envFiles {
		if _, err := os.Stat(name); err == nil {
			present = append(present, name)
		}
	}
	if len(present) == 0 {
		return nil, nil
	}
	if err := godotenv.Load(present...); err != nil {
		return nil, err
	}
	return present, nil
}
