// Package auth resolves the Google Calendar API key.
package auth

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// EnvAPIKey is the environment variable (and .env key) holding the key.
const EnvAPIKey = "GCAL_API_KEY"

// ErrMissingAPIKey is returned when no source provides a key.
var ErrMissingAPIKey = errors.New("api key is required: pass -api-key, set " + EnvAPIKey + ", or add it to the env file")

// Source names where a key was found.
const (
	FromFlag    = "flag"
	FromEnv     = "env"
	FromEnvFile = "env_file"
)

// ResolveAPIKey returns the first non-empty key from, in order: explicit,
// the GCAL_API_KEY environment variable, and GCAL_API_KEY in envFile. A
// missing envFile is skipped. The second return names where the key came
// from.
func ResolveAPIKey(explicit, envFile string) (string, string, error) {
	if key := strings.TrimSpace(explicit); key != "" {
		return key, FromFlag, nil
	}
	if key := strings.TrimSpace(os.Getenv(EnvAPIKey)); key != "" {
		return key, FromEnv, nil
	}
	if envFile != "" {
		vars, err := godotenv.Read(envFile)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return "", "", fmt.Errorf("read env file %s: %w", envFile, err)
		default:
			if key := strings.TrimSpace(vars[EnvAPIKey]); key != "" {
				return key, FromEnvFile, nil
			}
		}
	}
	return "", "", ErrMissingAPIKey
}

// Mask returns key with all but the last four characters hidden, for logs.
func Mask(key string) string {
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}
