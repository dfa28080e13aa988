package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	keyServerURL    = "server_url"
	keyAccessToken  = "access_token"
	keyRefreshToken = "refresh_token"
	keyWorkspace    = "workspace"
)

// loadConfig reads $HOME/.config/notes/config.yaml (or path) and NOTES_*
// environment variables into a fresh viper instance. A missing file is fine.
func loadConfig(path string) (*viper.Viper, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to locate home directory: %w", err)
		}
		v.AddConfigPath(filepath.Join(home, ".config", "notes"))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("NOTES")
	v.AutomaticEnv()
	v.SetDefault(keyServerURL, "http://localhost:8080")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}
	return v, nil
}

// saveConfig writes the current settings back to the file they were read
// from, creating it under $HOME/.config/notes when there is none yet.
func saveConfig(v *viper.Viper) error {
	path := v.ConfigFileUsed()
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to locate home directory: %w", err)
		}
		path = filepath.Join(home, ".config", "notes", "config.yaml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return os.Chmod(path, 0o600)
}
