// Package filex holds small filesystem helpers used by the CLI for its local
// state: the parent directory of the session database and the key file used
// to seal the stored token.
package filex

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/admissions/internal/common"
)

// EnsureParentDir creates the directory that will hold path (mode 0700).
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return nil
}

// ReadOrCreateSecret returns the contents of the key file at path. A missing
// file is created with size random bytes and mode 0600.
func ReadOrCreateSecret(path string, size int) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		if len(data) == 0 {
			return nil, fmt.Errorf("key file %s is empty", path)
		}
		return data, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read key file %s: %w", path, err)
	}

	if err := EnsureParentDir(path); err != nil {
		return nil, err
	}
	secret := common.GenerateRandByteArray(size)
	if err := os.WriteFile(path, secret, 0o600); err != nil {
		return nil, fmt.Errorf("write key file %s: %w", path, err)
	}
	return secret, nil
}
