// Package kv provides the asynchronous key-value persistence backend.
// Two independent namespaces exist: NamespaceLocal holds the note
// collection (large, frequently written) and NamespaceSync holds
// settings (small, eligible for cross-device propagation).
package kv

import "context"

// Namespaces.
const (
	NamespaceLocal = "local"
	NamespaceSync  = "sync"
)

// Store is the persistence backend contract. Both operations can fail;
// callers decide how failures degrade. Absent keys are simply missing
// from the Get result, not errors.
type Store interface {
	// Get returns the values for the requested keys in a namespace.
	Get(ctx context.Context, namespace string, keys ...string) (map[string][]byte, error)

	// Set writes the given key-value pairs into a namespace.
	Set(ctx context.Context, namespace string, pairs map[string][]byte) error
}
