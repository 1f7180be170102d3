package flow

import "sync"

var (
	shared     *Registry
	sharedOnce sync.Once
)

// Shared returns the process-wide Registry, creating it with default options
// on first use
func Shared() *Registry {
	sharedOnce.Do(func() {
		shared = New()
	})
	return shared
}
