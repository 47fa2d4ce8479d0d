// Package provenance reads a file's source URL from host-specific
// side-channel metadata.
package provenance

// Lookup resolves the URL a file was downloaded from. Absence of a URL is
// normal and expected, not an error; implementations absorb read failures.
type Lookup interface {
	OriginURL(path string) (string, bool)
}

// LookupFunc adapts a plain function to the Lookup interface.
type LookupFunc func(path string) (string, bool)

// OriginURL calls f.
func (f LookupFunc) OriginURL(path string) (string, bool) {
	return f(path)
}

// None never finds a URL. Used when the host offers no side channel.
var None = LookupFunc(func(string) (string, bool) { return "", false })
