// Package config resolves runtime configuration from the environment,
// with an optional .env file for local overrides.
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	envDBPath         = "BOOKLIB_DB_PATH"
	envLoanPeriodDays = "BOOKLIB_LOAN_PERIOD_DAYS"

	appDirName     = "booklib"
	dbFileName     = "library.db"
	defaultLoanDur = 14
)

// Config carries everything the CLI needs to wire the storage and services.
type Config struct {
	DBPath         string
	LoanPeriodDays int
}

// Load reads an optional .env file and resolves the configuration from the
// environment. Unset values fall back to defaults: the database lives under
// the per-user config directory, the loan period is 14 days.
func Load() Config {
	_ = godotenv.Load() // a missing .env file is fine

	return Config{
		DBPath:         dbPathFromEnv(),
		LoanPeriodDays: loanPeriodFromEnv(),
	}
}

// DefaultDBPath returns the per-user default database location.
// The containing directory may not exist yet; the storage gateway creates it.
func DefaultDBPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// No resolvable home directory - fall back to the working directory.
		return dbFileName
	}

	return filepath.Join(configDir, appDirName, dbFileName)
}

func dbPathFromEnv() string {
	if path := os.Getenv(envDBPath); path != "" {
		return path
	}

	return DefaultDBPath()
}

func loanPeriodFromEnv() int {
	raw := os.Getenv(envLoanPeriodDays)
	if raw == "" {
		return defaultLoanDur
	}

	days, err := strconv.Atoi(raw)
	if err != nil || days <= 0 {
		return defaultLoanDur
	}

	return days
}
