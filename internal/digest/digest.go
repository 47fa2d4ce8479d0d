// Package digest computes content hashes used for duplicate-equality checks.
package digest

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/amanzav/scribe/internal/common"
)

// File streams the file at path through SHA-256 and returns the hex digest.
// Same bytes always produce the same digest. An unreadable file (locked,
// deleted mid-run) returns ErrDigestFailed; the caller must treat that as
// "duplicate status unknown" and fall back to versioned renaming.
func File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", common.ErrDigestFailed, path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("%w: %s: %v", common.ErrDigestFailed, path, err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// Equal reports whether two files have identical content.
func Equal(a, b string) (bool, error) {
	da, err := File(a)
	if err != nil {
		return false, err
	}
	db, err := File(b)
	if err != nil {
		return false, err
	}
	return da == db, nil
}
