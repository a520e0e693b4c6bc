package config

const SourceFileExt = ".kind"

// SourceFileExtensions are all recognized source file extensions
var SourceFileExtensions = []string{".kind", ".kinds"}

// HasSourceExt reports whether path ends in a recognized source extension.
func HasSourceExt(path string) bool {
	for _, ext := range SourceFileExtensions {
		if len(path) > len(ext) && path[len(path)-len(ext):] == ext {
			return true
		}
	}
	return false
}

// TrimSourceExt strips a recognized source extension, if present.
func TrimSourceExt(path string) string {
	for _, ext := range SourceFileExtensions {
		if len(path) > len(ext) && path[len(path)-len(ext):] == ext {
			return path[:len(path)-len(ext)]
		}
	}
	return path
}

// NamePrefix is prepended to every interned interface name. The digest
// part is always sixteen lowercase hex digits.
const NamePrefix = "Kind_"

// DefaultMemberName is the member selected by a projection that names
// no member of its own.
const DefaultMemberName = "Of"

// Application labels
const (
	BrandLabel     = "brand"
	SignatureLabel = "signature"
	KindLabel      = "kind"
	LifetimesLabel = "lifetimes"
	TypesLabel     = "types"
	OutputLabel    = "output"
)
