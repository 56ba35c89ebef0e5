package store

import (
	"io"
	"io/ioutil"
	"log"
	"mime"
	"os"
	"path/filepath"
	"strings"

	raven "github.com/getsentry/raven-go"
)

// FileSystem implements the simple file system based store. The keys are
// used as file names, so keys must not contain a forward slash character
// '/'. The content type is not stored; it is re-derived from the key's file
// extension when the payload is opened.
type FileSystem struct {
	root string
}

var _ Store = &FileSystem{}

// NewFileSystem creates a new FileSystem store based at the given root path.
func NewFileSystem(root string) *FileSystem {
	return &FileSystem{root: root}
}

// Put writes the payload to a scratch file first and renames it into place,
// so readers never see a partial photo.
func (s *FileSystem) Put(key, contentType string, data []byte) error {
	if strings.Contains(key, "/") {
		return ErrKeyContainsSlash
	}
	err := os.MkdirAll(s.root, 0755)
	if err != nil {
		return err
	}
	target := filepath.Join(s.root, key)
	temp := target + ".tmp"
	err = ioutil.WriteFile(temp, data, 0644)
	if err != nil {
		log.Println("FileSystem Put:", key, err)
		raven.CaptureError(err, map[string]string{"Root": s.root, "Key": key})
		return err
	}
	return os.Rename(temp, target)
}

// Open returns a reader for the given key. The content type is guessed from
// the key's extension.
func (s *FileSystem) Open(key string) (io.ReadCloser, string, error) {
	if strings.Contains(key, "/") {
		return nil, "", ErrKeyContainsSlash
	}
	f, err := os.Open(filepath.Join(s.root, key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", ErrNotExist
		}
		return nil, "", err
	}
	contentType := mime.TypeByExtension(filepath.Ext(key))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return f, contentType, nil
}

// Delete the given key from the store. It is not an error if the key
// doesn't exist.
func (s *FileSystem) Delete(key string) error {
	if strings.Contains(key, "/") {
		return ErrKeyContainsSlash
	}
	err := os.Remove(filepath.Join(s.root, key))
	if err != nil && os.IsNotExist(err) {
		err = nil
	}
	return err
}
