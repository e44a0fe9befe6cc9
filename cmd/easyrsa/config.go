package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/coinbase/easyrsa-go/pkg/easyrsa"
	"github.com/coinbase/easyrsa-go/pkg/easyrsa/primality"
)

const envPrefix = "EASYRSA_"

// config is the CLI configuration. Values come from EASYRSA_* variables in
// the process environment, then from the dotenv file; flags override both.
type config struct {
	KeySize   int
	Rounds    int
	Seed      string
	DB        string
	LogLevel  slog.Level
	LogFormat string
}

func defaultConfig() config {
	return config{
		KeySize:   easyrsa.DefaultKeySize,
		Rounds:    primality.DefaultRounds,
		LogLevel:  slog.LevelInfo,
		LogFormat: "text",
	}
}

// loadConfig resolves the configuration. A missing env file is not an error.
func loadConfig(envFile string, lookup func(string) (string, bool)) (config, error) {
	fileVars := map[string]string{}
	if envFile != "" {
		path, err := SecurePath(envFile)
		if err != nil {
			return config{}, fmt.Errorf("env file: %w", err)
		}
		vars, err := godotenv.Read(path)
		switch {
		case err == nil:
			fileVars = vars
		case errors.Is(err, fs.ErrNotExist):
		default:
			return config{}, fmt.Errorf("read env file: %w", err)
		}
	}

	get := func(name string) (string, bool) {
		if v, ok := lookup(envPrefix + name); ok {
			return v, true
		}
		v, ok := fileVars[envPrefix+name]
		return v, ok
	}

	cfg := defaultConfig()
	if v, ok := get("KEY_SIZE"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return config{}, fmt.Errorf("%sKEY_SIZE: %w", envPrefix, err)
		}
		cfg.KeySize = n
	}
	if v, ok := get("ROUNDS"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return config{}, fmt.Errorf("%sROUNDS: %w", envPrefix, err)
		}
		cfg.Rounds = n
	}
	if v, ok := get("SEED"); ok {
		cfg.Seed = v
	}
	if v, ok := get("DB"); ok {
		cfg.DB = v
	}
	if v, ok := get("LOG_LEVEL"); ok {
		if err := cfg.LogLevel.UnmarshalText([]byte(strings.TrimSpace(v))); err != nil {
			return config{}, fmt.Errorf("%sLOG_LEVEL: %w", envPrefix, err)
		}
	}
	if v, ok := get("LOG_FORMAT"); ok {
		cfg.LogFormat = strings.ToLower(strings.TrimSpace(v))
	}
	if err := cfg.validate(); err != nil {
		return config{}, err
	}
	return cfg, nil
}

func (c config) validate() error {
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("%sLOG_FORMAT: unknown format %q", envPrefix, c.LogFormat)
	}
	return easyrsa.Config{KeySize: c.KeySize, Rounds: c.Rounds}.Validate()
}

func (c config) newLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.LogLevel}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// SecurePath validates that a file path doesn't escape the working directory.
func SecurePath(path string) (string, error) {
	absPath, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("absolute path: %w", err)
	}
	base, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	rel, err := filepath.Rel(base, absPath)
	if err != nil {
		return "", fmt.Errorf("relative path: %w", err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return "", fmt.Errorf("path %q escapes working directory", path)
	}
	return absPath, nil
}
