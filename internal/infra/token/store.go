package token

import (
	"encoding/json"
	"fmt"
	"os"
)

// Store caches the Pike13 access token on disk. The OAuth exchange happens
// out-of-band (the setup tooling writes this file); the sync only reads it.
type Store struct {
	Path string
}

type tokenFile struct {
	AccessToken string `json:"accessToken"`
}

func NewStore(path string) *Store {
	return &Store{Path: path}
}

// Load returns the cached token. Falls back to the PIKE13_API_TOKEN env var
// for deployments that inject the token directly.
func (s *Store) Load() (string, error) {
	if env := os.Getenv("PIKE13_API_TOKEN"); env != "" {
		return env, nil
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		return "", fmt.Errorf("no pike13 token available: %w", err)
	}

	var tf tokenFile
	if err := json.Unmarshal(data, &tf); err != nil {
		return "", fmt.Errorf("token file is corrupt: %w", err)
	}
	if tf.AccessToken == "" {
		return "", fmt.Errorf("token file has no accessToken")
	}

	return tf.AccessToken, nil
}

func (s *Store) Save(accessToken string) error {
	data, err := json.MarshalIndent(tokenFile{AccessToken: accessToken}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.Path, data, 0600)
}
