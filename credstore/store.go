// Package credstore persists the client's one mutable credential (the bearer
// token) plus a snapshot of the signed-in profile and the biometric-gate
// preference, durably and independently of the process lifetime.
package credstore

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"

	"github.com/AguiarDev47/FinancIA/internal/file"
)

// The three keys this store knows about. Token and user are written together
// by the session manager (user first, then token); the biometric flag is a
// local-only preference that never goes on the wire.
const (
	KeyToken     = "token"
	KeyUser      = "user"
	KeyBiometric = "biometricEnabled"
)

// Store is scoped key/value persistence for the session's credentials.
// Reads and writes are atomic per key, but keys are not transactionally
// linked; callers treat a read of token without user (or vice versa) as "no
// session" rather than an error. Clearing everything is the definition of
// signed out.
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
	Clear() error
	// Token satisfies financia.TokenSource: it returns the stored token, or
	// an empty string when no session exists.
	Token() (string, error)
}

type fileStore struct {
	path string
}

// NewFileStore returns a Store backed by a JSON file under the user's
// FinancIA home directory (~/.financia/credentials).
func NewFileStore() (Store, error) {
	financiaHome, err := getFinanciaHome()
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(financiaHome); err != nil {
		if !os.IsNotExist(err) {
			return nil, errors.Wrapf(
				err,
				"error checking for existence of financia home at %s",
				financiaHome,
			)
		}
		if err := os.MkdirAll(financiaHome, 0755); err != nil {
			return nil, errors.Wrapf(
				err,
				"error creating financia home at %s",
				financiaHome,
			)
		}
	}
	return &fileStore{
		path: path.Join(financiaHome, "credentials"),
	}, nil
}

// NewFileStoreAt returns a Store backed by a JSON file at the given path.
// The parent directory must already exist.
func NewFileStoreAt(path string) Store {
	return &fileStore{path: path}
}

func (f *fileStore) Get(key string) (string, bool, error) {
	entries, err := f.read()
	if err != nil {
		return "", false, err
	}
	value, ok := entries[key]
	return value, ok, nil
}

func (f *fileStore) Set(key, value string) error {
	entries, err := f.read()
	if err != nil {
		return err
	}
	entries[key] = value
	return f.write(entries)
}

func (f *fileStore) Delete(key string) error {
	entries, err := f.read()
	if err != nil {
		return err
	}
	delete(entries, key)
	return f.write(entries)
}

func (f *fileStore) Clear() error {
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "error clearing credentials at %s", f.path)
	}
	return nil
}

func (f *fileStore) Token() (string, error) {
	token, _, err := f.Get(KeyToken)
	return token, err
}

func (f *fileStore) read() (map[string]string, error) {
	entries := map[string]string{}
	if !file.Exists(f.path) {
		return entries, nil
	}
	entryBytes, err := ioutil.ReadFile(f.path)
	if err != nil {
		return nil, errors.Wrapf(
			err,
			"error reading credentials file at %s",
			f.path,
		)
	}
	if err := json.Unmarshal(entryBytes, &entries); err != nil {
		return nil, errors.Wrapf(
			err,
			"error parsing credentials file at %s",
			f.path,
		)
	}
	return entries, nil
}

func (f *fileStore) write(entries map[string]string) error {
	entryBytes, err := json.Marshal(entries)
	if err != nil {
		return errors.Wrap(err, "error marshaling credentials")
	}
	// The token is a live credential; keep the file owner-only.
	if err := ioutil.WriteFile(f.path, entryBytes, 0600); err != nil {
		return errors.Wrapf(err, "error writing to %s", f.path)
	}
	return nil
}

func getFinanciaHome() (string, error) {
	homeDir, err := homedir.Dir()
	if err != nil {
		return "", errors.Wrap(err, "error locating user's home directory")
	}
	return path.Join(homeDir, ".financia"), nil
}
