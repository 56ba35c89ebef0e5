// Package store provides a simple, goroutine safe key-addressed blob store
// for item photos. Payloads are opaque byte slices tagged with a content
// type; the keys are item ids plus a file extension.
//
// The production implementation is S3. The FileSystem and Memory stores are
// useful for development and testing.
package store

import (
	"errors"
	"io"
)

// Store is the blob store used for item photos. Every call is a single
// synchronous attempt against the backing service; the caller decides what
// a failure means.
//
// Since the FileSystem store uses keys as file names, keys must not contain
// forbidden filesystem characters, such as '/'.
type Store interface {
	// Put saves data under key with the given content type, replacing any
	// previous payload.
	Put(key, contentType string, data []byte) error

	// Open returns a reader for the payload and its content type, or
	// ErrNotExist. The caller must close the reader.
	Open(key string) (io.ReadCloser, string, error)

	// Delete removes the payload. It is not an error to delete something
	// that doesn't exist.
	Delete(key string) error
}

var (
	// ErrNotExist means the key has no payload in the store.
	ErrNotExist = errors.New("key does not exist")

	// ErrKeyContainsSlash means the key provided contains a forward slash '/'
	ErrKeyContainsSlash = errors.New("key contains forward slash")
)
