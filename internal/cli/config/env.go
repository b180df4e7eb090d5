package config

import (
	"os"

	appErr "kat/pkg/errors"

	"github.com/joho/godotenv"
)

// LoadEnv loads KAT_* variables from a .env file. A missing file is not an
// error; variables already set in the environment win.
func LoadEnv(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return appErr.Wrapf(err, appErr.ConfigInvalid, "load env file %s failed: %v", path, err)
	}
	return nil
}
