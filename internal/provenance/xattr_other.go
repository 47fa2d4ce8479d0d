//go:build !linux && !darwin

package provenance

// Xattr is a no-op on hosts without the xattr side channel.
type Xattr struct{}

// NewXattr returns the platform provenance lookup.
func NewXattr() Xattr {
	return Xattr{}
}

// OriginURL never finds a URL on this platform.
func (Xattr) OriginURL(string) (string, bool) {
	return "", false
}
