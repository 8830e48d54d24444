package config

import (
	"os"

	"github.com/joho/godotenv"
)

// LoadDotenv reads a .env file into the process environment when present.
// Variables already set in the environment win over file values.
func LoadDotenv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return err
		}
	}
	return nil
}
