package store

import (
	"bytes"
	"io"
	"io/ioutil"
	"sync"
)

// Memory implements a simple in-memory version of a store. It is intended
// mainly for testing.
type Memory struct {
	m     sync.RWMutex
	store map[string]memoryBlob
}

type memoryBlob struct {
	contentType string
	data        []byte
}

var _ Store = &Memory{}

// NewMemory returns a new, empty memory store.
func NewMemory() *Memory {
	return &Memory{store: make(map[string]memoryBlob)}
}

func (ms *Memory) Put(key, contentType string, data []byte) error {
	dup := make([]byte, len(data))
	copy(dup, data)
	ms.m.Lock()
	ms.store[key] = memoryBlob{contentType: contentType, data: dup}
	ms.m.Unlock()
	return nil
}

func (ms *Memory) Open(key string) (io.ReadCloser, string, error) {
	ms.m.RLock()
	b, ok := ms.store[key]
	ms.m.RUnlock()
	if !ok {
		return nil, "", ErrNotExist
	}
	return ioutil.NopCloser(bytes.NewReader(b.data)), b.contentType, nil
}

func (ms *Memory) Delete(key string) error {
	ms.m.Lock()
	delete(ms.store, key)
	ms.m.Unlock()
	return nil
}

// Keys returns the keys currently in the store, for tests that need to
// check for orphans.
func (ms *Memory) Keys() []string {
	ms.m.RLock()
	result := make([]string, 0, len(ms.store))
	for k := range ms.store {
		result = append(result, k)
	}
	ms.m.RUnlock()
	return result
}
