package initializers

import "github.com/joho/godotenv"

// LoadEnvVariables reads .env if present. Missing files are fine; deployed
// environments set real variables instead.
func LoadEnvVariables() {
	_ = godotenv.Load()
}
