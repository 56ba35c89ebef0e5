package items

import (
	"testing"
)

func TestDecodeImage(t *testing.T) {
	var table = []struct {
		name        string
		input       string
		contentType string
		data        string
		err         error
	}{
		{"data uri png", "data:image/png;base64,aGVsbG8=", "image/png", "hello", nil},
		{"data uri no params", "data:image/jpeg,aGVsbG8=", "image/jpeg", "hello", nil},
		{"data uri no type", "data:;base64,aGVsbG8=", DefaultContentType, "hello", nil},
		{"data uri junk type", "data:notatype;base64,aGVsbG8=", DefaultContentType, "hello", nil},
		{"bare base64", "aGVsbG8=", DefaultContentType, "hello", nil},
		{"data uri no comma", "data:image/png;base64", "", "", ErrInvalidImage},
		{"bad alphabet", "data:image/png;base64,???", "", "", ErrInvalidImage},
		{"bad padding", "aGVsbG8", "", "", ErrInvalidImage},
		{"empty payload", "data:image/png;base64,", "", "", ErrInvalidImage},
		{"empty string", "", "", "", ErrInvalidImage},
	}

	for _, row := range table {
		ct, data, err := DecodeImage(row.input)
		if err != row.err {
			t.Errorf("%s: received error %v, expected %v", row.name, err, row.err)
			continue
		}
		if err != nil {
			continue
		}
		if ct != row.contentType {
			t.Errorf("%s: received type %q, expected %q", row.name, ct, row.contentType)
		}
		if string(data) != row.data {
			t.Errorf("%s: received %q, expected %q", row.name, data, row.data)
		}
	}
}

func TestImageExtension(t *testing.T) {
	var table = []struct {
		input  string
		output string
	}{
		{"image/jpeg", ".jpg"},
		{"image/png", ".png"},
		{"image/gif", ".gif"},
		{"image/webp", ".webp"},
		{"application/octet-stream", ".bin"},
		{"not/a-real-type", ".bin"},
		{"", ".bin"},
	}

	for _, row := range table {
		result := ImageExtension(row.input)
		if result != row.output {
			t.Errorf("For %q received %q, expected %q", row.input, result, row.output)
		}
	}
}
