// Package naming derives stable interface names from canonical
// signature forms. The name is a pure function of the canonical string,
// so independent compilation units arrive at the same name without any
// shared registry.
package naming

import (
	"fmt"
	"hash/fnv"

	"github.com/funvibe/kindgen/internal/config"
)

// Intern maps a canonical form to its interface name: the 64-bit
// FNV-1a digest of the form, rendered as a fixed prefix plus sixteen
// lowercase hex digits. The width is constant, so generated names sort
// and align predictably.
func Intern(canonical string) string {
	h := fnv.New64a()
	h.Write([]byte(canonical))
	return fmt.Sprintf("%s%016x", config.NamePrefix, h.Sum64())
}
