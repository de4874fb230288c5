package cryptox

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LoadOrCreatePepper reads the pepper stored at path, creating the file with
// a fresh random pepper when it does not exist yet. Losing this file makes
// every stored password hash unverifiable.
func LoadOrCreatePepper(path string) ([]byte, error) {
	path = filepath.Clean(path)

	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		p := strings.TrimSpace(string(b))
		if p == "" {
			return nil, fmt.Errorf("cryptox: pepper file %s is empty", path)
		}
		return []byte(p), nil

	case !errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("cryptox: read pepper: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("cryptox: create pepper dir: %w", err)
	}

	p, err := GenerateToken(TokenSize256)
	if err != nil {
		return nil, err
	}

	// O_EXCL so two processes starting together cannot clobber each other.
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return LoadOrCreatePepper(path)
		}
		return nil, fmt.Errorf("cryptox: create pepper: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(p); err != nil {
		return nil, fmt.Errorf("cryptox: write pepper: %w", err)
	}
	return []byte(p), nil
}
