// Package credentials persists the API token on the local filesystem. It is
// the durable credential slot the session store owns: read at startup and on
// every request, written on login and rotation, deleted on logout or 401.
package credentials

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// ErrNoCredential is returned when no token is stored.
var ErrNoCredential = errors.New("no credential stored")

// tokenFile is the fixed key the credential is persisted under.
const tokenFile = "token"

// Store manages the persisted credential on the local filesystem.
type Store struct {
	baseDir string
}

// NewStore creates a credential store rooted at baseDir.
// If baseDir is empty, uses ~/.leadform/
func NewStore(baseDir string) (*Store, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		baseDir = filepath.Join(home, ".leadform")
	}

	// Create directory with 0700 permissions
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create credentials directory: %w", err)
	}

	log.Debug().Str("baseDir", baseDir).Msg("credential store initialized")

	return &Store{baseDir: baseDir}, nil
}

// Save writes the token, replacing any previous one. The write is atomic so
// a concurrent reader never observes a partial token.
func (s *Store) Save(token string) error {
	if token == "" {
		return errors.New("refusing to store an empty credential")
	}

	tokenPath := filepath.Join(s.baseDir, tokenFile)
	tempPath := tokenPath + ".tmp"

	if err := os.WriteFile(tempPath, []byte(token), 0600); err != nil {
		return fmt.Errorf("failed to write credential: %w", err)
	}

	if err := os.Rename(tempPath, tokenPath); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to save credential: %w", err)
	}

	log.Debug().Msg("credential saved")

	return nil
}

// Load returns the stored token, or ErrNoCredential when none exists.
func (s *Store) Load() (string, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, tokenFile))
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNoCredential
		}
		return "", fmt.Errorf("failed to read credential: %w", err)
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", ErrNoCredential
	}

	return token, nil
}

// Clear removes the stored token. Clearing an empty store is not an error.
func (s *Store) Clear() error {
	if err := os.Remove(filepath.Join(s.baseDir, tokenFile)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove credential: %w", err)
	}

	log.Debug().Msg("credential cleared")

	return nil
}
