package session

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Credentials is the opaque token pair persisted across runs. It never
// appears in a Snapshot; consumers only ever see status and user.
type Credentials struct {
	AccessToken  string `yaml:"access_token"`
	RefreshToken string `yaml:"refresh_token"`
}

// CredentialStore is the durable token storage contract. Only the Session
// writes it; the API client reads the access token through the AccessToken
// view when attaching bearer credentials.
type CredentialStore interface {
	Load() (Credentials, error)
	Save(Credentials) error
	Clear() error
}

// FileStore persists credentials as a yaml file, by default
// ~/.config/jill/credentials.yaml, created with mode 0600.
type FileStore struct {
	path string
}

// DefaultCredentialsPath returns the per-user credentials file location.
func DefaultCredentialsPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "jill", "credentials.yaml"), nil
}

// NewFileStore creates a store backed by the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the persisted credentials. A missing file is not an error;
// it just means nobody is signed in.
func (s *FileStore) Load() (Credentials, error) {
	var creds Credentials
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return creds, nil
		}
		return creds, fmt.Errorf("read credentials: %w", err)
	}
	if err := yaml.Unmarshal(data, &creds); err != nil {
		return Credentials{}, fmt.Errorf("parse credentials file %s: %w", s.path, err)
	}
	return creds, nil
}

// Save writes the token pair, creating the config directory if needed.
func (s *FileStore) Save(creds Credentials) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(creds)
	if err != nil {
		return fmt.Errorf("marshal credentials: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	return nil
}

// Clear removes the credentials file. Clearing an already-empty store
// succeeds.
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove credentials: %w", err)
	}
	return nil
}

// AccessToken implements the api.TokenSource view over the store. Read
// failures surface as an absent token: the call goes out unauthenticated
// and the backend's answer drives what happens next.
func (s *FileStore) AccessToken() string {
	creds, err := s.Load()
	if err != nil {
		return ""
	}
	return creds.AccessToken
}

// MemStore is an in-memory CredentialStore for tests.
type MemStore struct {
	mu    sync.Mutex
	creds Credentials
}

func NewMemStore() *MemStore { return &MemStore{} }

func (s *MemStore) Load() (Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.creds, nil
}

func (s *MemStore) Save(creds Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = creds
	return nil
}

func (s *MemStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = Credentials{}
	return nil
}

func (s *MemStore) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.creds.AccessToken
}
