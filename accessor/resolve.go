package accessor

import (
	"errors"
	"strings"
)

// DefaultReservedPrefixes are the platform core and reflection internal
// namespaces. Imports from them never name the declaring class.
var DefaultReservedPrefixes = []string{"java.", "sun."}

// ErrNoForeignImport marks a unit that imports nothing outside the reserved
// namespaces. It carries no signal and is not a failure.
var ErrNoForeignImport = errors.New("no foreign import")

// Resolver finds the declaring class of an accessor. The zero value uses
// DefaultReservedPrefixes.
type Resolver struct {
	Reserved []string
}

func NewResolver(reserved ...string) Resolver {
	if len(reserved) == 0 {
		reserved = DefaultReservedPrefixes
	}
	return Resolver{Reserved: reserved}
}

// DeclaringClass returns the first import of unit that is not reserved.
// Later foreign imports are ignored.
func (r Resolver) DeclaringClass(unit *SourceUnit) (string, bool) {
	for _, name := range unit.ImportNames {
		if !r.IsReserved(name) {
			return name, true
		}
	}
	return "", false
}

func (r Resolver) IsReserved(name string) bool {
	reserved := r.Reserved
	if reserved == nil {
		reserved = DefaultReservedPrefixes
	}
	for _, prefix := range reserved {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}
