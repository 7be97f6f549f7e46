// Package auth stores and resolves the ClickUp API credential.
//
// Two credential sources are supported. A personal API token taken
// from the CLICKUP_TOKEN environment variable always wins; otherwise
// the token cached on disk by "cuptool auth login" is used.
package auth

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnvToken overrides the cached token when set.
const EnvToken = "CLICKUP_TOKEN"

// EnvWorkspace selects a default workspace for commands that need one.
const EnvWorkspace = "CLICKUP_WORKSPACE"

// TokenFilePath returns the location of the cached token.
func TokenFilePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config directory: %w", err)
	}
	return filepath.Join(dir, "cuptool", "token"), nil
}

// SaveToken caches the token on disk with owner-only permissions.
func SaveToken(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("refusing to save an empty token")
	}

	path, err := TokenFilePath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(token+"\n"), 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}

// LoadToken resolves the ClickUp credential, preferring the
// environment over the cached file.
func LoadToken() (string, error) {
	if token := strings.TrimSpace(os.Getenv(EnvToken)); token != "" {
		return token, nil
	}

	path, err := TokenFilePath()
	if err != nil {
		return "", err
	}
	slurp, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("no ClickUp token found; set %s or run \"cuptool auth login\"", EnvToken)
	}

	token := strings.TrimSpace(string(slurp))
	if token == "" {
		return "", fmt.Errorf("cached token file %s is empty", path)
	}
	return token, nil
}

// HasToken reports whether a credential is available from either source.
func HasToken() bool {
	_, err := LoadToken()
	return err == nil
}

// ClearToken removes the cached token file. A missing file is not an
// error.
func ClearToken() error {
	path, err := TokenFilePath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove token file: %w", err)
	}
	return nil
}
