package store

import (
	"io/ioutil"
	"os"
	"testing"
)

// runStoreTests exercises the common Store behavior against any
// implementation.
func runStoreTests(t *testing.T, s Store) {
	if _, _, err := s.Open("nothere.png"); err != ErrNotExist {
		t.Errorf("Open missing key: received %v, expected %v", err, ErrNotExist)
	}

	err := s.Put("abc123.png", "image/png", []byte("not really a png"))
	if err != nil {
		t.Fatal(err)
	}

	rc, contentType, err := s.Open("abc123.png")
	if err != nil {
		t.Fatal(err)
	}
	body, err := ioutil.ReadAll(rc)
	rc.Close()
	if err != nil {
		t.Fatal(err)
	}
	if string(body) != "not really a png" {
		t.Errorf("received %q", body)
	}
	if contentType != "image/png" {
		t.Errorf("received content type %q, expected image/png", contentType)
	}

	// overwrite is allowed
	err = s.Put("abc123.png", "image/png", []byte("second"))
	if err != nil {
		t.Fatal(err)
	}

	if err := s.Delete("abc123.png"); err != nil {
		t.Fatal(err)
	}
	// deleting again is not an error
	if err := s.Delete("abc123.png"); err != nil {
		t.Error("second delete errored:", err)
	}
	if _, _, err := s.Open("abc123.png"); err != ErrNotExist {
		t.Errorf("Open deleted key: received %v, expected %v", err, ErrNotExist)
	}
}

func TestMemoryStore(t *testing.T) {
	runStoreTests(t, NewMemory())
}

func TestFileSystemStore(t *testing.T) {
	dir, err := ioutil.TempDir("", "trove-store-")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	runStoreTests(t, NewFileSystem(dir))
}

func TestFileSystemRejectsSlash(t *testing.T) {
	s := NewFileSystem("unused")
	if err := s.Put("../escape", "image/png", nil); err != ErrKeyContainsSlash {
		t.Errorf("Put: received %v, expected %v", err, ErrKeyContainsSlash)
	}
	if _, _, err := s.Open("a/b"); err != ErrKeyContainsSlash {
		t.Errorf("Open: received %v, expected %v", err, ErrKeyContainsSlash)
	}
	if err := s.Delete("a/b"); err != ErrKeyContainsSlash {
		t.Errorf("Delete: received %v, expected %v", err, ErrKeyContainsSlash)
	}
}
