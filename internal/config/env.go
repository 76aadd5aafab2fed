package config

import (
	"os"
	"strconv"

	"claimboard/backend/internal/logger"
)

// GetEnv reads an environment variable, falling back to defaultVal when it
// is unset.
func GetEnv(key, defaultVal string, log *logger.Logger) string {
	val, ok := os.LookupEnv(key)
	if !ok {
		if log != nil {
			log.Debug("Environment variable not found, using default", "env_var", key, "default", defaultVal)
		}
		return defaultVal
	}
	return val
}

// GetEnvAsInt reads an environment variable as an integer, falling back to
// defaultVal when it is unset or unparsable.
func GetEnvAsInt(key string, defaultVal int, log *logger.Logger) int {
	valStr, ok := os.LookupEnv(key)
	if !ok {
		if log != nil {
			log.Debug("Environment variable not found, using default", "env_var", key, "default", defaultVal)
		}
		return defaultVal
	}
	i, err := strconv.Atoi(valStr)
	if err != nil {
		if log != nil {
			log.Warn("Environment variable is not an integer, using default", "env_var", key, "value", valStr, "error", err)
		}
		return defaultVal
	}
	return i
}
