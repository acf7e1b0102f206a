package tinkbasen

import (
	"sync"

	"github.com/google/tink/go/core/registry"
)

var (
	registerOnce sync.Once
	registerErr  error
)

// Register adds the FF1 KeyManager to Tink's global registry. It is safe to
// call more than once and from several goroutines; New and the keyset helpers
// call it themselves.
func Register() error {
	registerOnce.Do(func() {
		// Another package may have registered a manager for the same type URL.
		if _, err := registry.GetKeyManager(KeyTypeURL); err == nil {
			return
		}
		registerErr = registry.RegisterKeyManager(NewKeyManager())
	})
	return registerErr
}
