//go:build linux || darwin

package provenance

import (
	"strings"

	"golang.org/x/sys/unix"
)

// originAttr is the extended attribute browsers and download tools write
// with the source URL of a downloaded file.
const originAttr = "user.xdg.origin.url"

// Xattr reads the origin URL from the file's extended attributes.
type Xattr struct{}

// NewXattr returns the platform provenance lookup.
func NewXattr() Xattr {
	return Xattr{}
}

// OriginURL reads user.xdg.origin.url. Missing attribute, unsupported
// filesystem and read errors all report "no URL".
func (Xattr) OriginURL(path string) (string, bool) {
	size, err := unix.Getxattr(path, originAttr, nil)
	if err != nil || size <= 0 {
		return "", false
	}

	buf := make([]byte, size)
	n, err := unix.Getxattr(path, originAttr, buf)
	if err != nil || n <= 0 {
		return "", false
	}

	url := strings.TrimRight(string(buf[:n]), "\x00")
	if url == "" {
		return "", false
	}
	return url, true
}
