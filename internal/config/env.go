package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	EnvData     = "GRAVSIM_DATA"
	EnvFPS      = "GRAVSIM_FPS"
	EnvLogLevel = "GRAVSIM_LOG_LEVEL"
)

// Env holds process-level settings that may come from the environment or a
// .env file. Zero values mean "not set".
type Env struct {
	DataDir  string
	FPS      int
	LogLevel string
}

// LoadEnv reads the given dotenv files (".env" when none are named) into the
// process environment without overriding existing variables, then collects
// the gravsim settings. Missing files are ignored.
func LoadEnv(files ...string) (Env, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Env{}, fmt.Errorf("load env: %w", err)
	}

	env := Env{
		DataDir:  os.Getenv(EnvData),
		LogLevel: os.Getenv(EnvLogLevel),
	}
	if s := os.Getenv(EnvFPS); s != "" {
		fps, err := strconv.Atoi(s)
		if err != nil || !validFPS(fps) {
			return Env{}, fmt.Errorf("%w: %s=%q", ErrInvalidConfig, EnvFPS, s)
		}
		env.FPS = fps
	}
	return env, nil
}

// Apply overrides config fields that the environment sets.
func (e Env) Apply(cfg *Config) {
	if e.FPS != 0 {
		cfg.FPS = e.FPS
	}
}
