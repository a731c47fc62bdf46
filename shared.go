package bindconv

import "sync"

var (
	sharedOnce sync.Once
	sharedReg  *Registry
)

// Shared returns the process-wide default registry, created on first use.
// Every session whose primary converter is not this exact instance appends
// it to the end of its chain as the final fallback, so the same pointer is
// handed out for the lifetime of the process and must be treated as
// read-only.
func Shared() *Registry {
	sharedOnce.Do(func() {
		sharedReg = NewDefaultRegistry()
	})
	return sharedReg
}
