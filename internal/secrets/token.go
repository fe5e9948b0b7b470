// Package secrets stores the results-store access token. The environment
// wins; otherwise the OS keyring holds it, with a plain-file fallback for
// headless hosts where no keyring daemon runs.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// KeyringService is the service name for keyring storage
	KeyringService = "courtscrape"
	tokenKey       = "store-token"
	// FallbackDir holds the token file when the keyring is unavailable
	FallbackDir = ".courtscrape"

	// EnvToken overrides anything stored.
	EnvToken = "COURTSCRAPE_DB_TOKEN"
)

var fileBasedStorageCache *bool

// useFileBasedStorage probes whether a keyring is usable. CI boxes and
// containers usually have none.
func useFileBasedStorage() bool {
	if fileBasedStorageCache != nil {
		return *fileBasedStorageCache
	}

	if os.Getenv("CODESPACES") != "" || os.Getenv("CI") != "" {
		result := true
		fileBasedStorageCache = &result
		return true
	}

	testKey := "_test_keyring_access_"
	err := keyring.Set(KeyringService, testKey, "test")
	result := (err != nil)
	fileBasedStorageCache = &result

	if !result {
		keyring.Delete(KeyringService, testKey)
	}
	return result
}

func tokenPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, FallbackDir)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", err
	}
	return filepath.Join(dir, "token"), nil
}

// Token returns the store access token: environment first, then keyring or
// file. An empty string with nil error means nothing is stored.
func Token() (string, error) {
	if v := os.Getenv(EnvToken); v != "" {
		return v, nil
	}

	if useFileBasedStorage() {
		path, err := tokenPath()
		if err != nil {
			return "", err
		}
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			return "", nil
		}
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(data)), nil
	}

	v, err := keyring.Get(KeyringService, tokenKey)
	if err == keyring.ErrNotFound {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read token from keyring: %w", err)
	}
	return v, nil
}

// SetToken stores the token in the keyring, or the fallback file.
func SetToken(token string) error {
	if token == "" {
		return fmt.Errorf("token cannot be empty")
	}

	if useFileBasedStorage() {
		path, err := tokenPath()
		if err != nil {
			return err
		}
		return os.WriteFile(path, []byte(token), 0600)
	}

	if err := keyring.Set(KeyringService, tokenKey, token); err != nil {
		return fmt.Errorf("store token in keyring: %w", err)
	}
	return nil
}

// ClearToken removes any stored token. Clearing a token that was never
// stored is not an error.
func ClearToken() error {
	if useFileBasedStorage() {
		path, err := tokenPath()
		if err != nil {
			return err
		}
		err = os.Remove(path)
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	err := keyring.Delete(KeyringService, tokenKey)
	if err == keyring.ErrNotFound {
		return nil
	}
	return err
}
