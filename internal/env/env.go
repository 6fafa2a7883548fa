// Package env loads configuration for Birikio from the environment.
package env

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// LoadEnvironmentVariables loads the .env file or crashes the program with an error
func LoadEnvironmentVariables() {
	if err := godotenv.Load(".env"); err != nil {
		fmt.Fprintf(os.Stderr, ".env error: %s\n", err)
		os.Exit(1)
	}
}

// Require returns the value of a variable, or crashes the program when unset.
func Require(name string) string {
	value := os.Getenv(name)

	if len(value) == 0 {
		fmt.Fprintf(os.Stderr, "No %s variable set!\n", name)
		os.Exit(1)
	}

	return value
}

// Default returns the value of a variable, or a fallback when unset.
func Default(name, fallback string) string {
	if value := os.Getenv(name); len(value) != 0 {
		return value
	}

	return fallback
}
