package main

import (
	"testing"

	"github.com/troveapp/trove/store"
)

const (
	typeMemory = iota
	typeFileSystem
	typeS3
)

func TestSplitBucketPrefix(t *testing.T) {
	var table = []struct {
		location string
		bucket   string
		prefix   string
	}{
		{"", "", ""},
		{"rel/path", "rel", "path/"},
		{"/abs/path/", "abs", "path/"},
		{"/bucket", "bucket", ""},
		{"/bucket/prefix/", "bucket", "prefix/"},
		{"/bucket/prefix", "bucket", "prefix/"},
	}

	for _, row := range table {
		t.Log(row.location)
		bucket, prefix := splitBucketPrefix(row.location)
		if bucket != row.bucket {
			t.Error("expected bucket", row.bucket, "received", bucket)
		}
		if prefix != row.prefix {
			t.Error("expected prefix", row.prefix, "received", prefix)
		}
	}
}

func TestParseLocation(t *testing.T) {
	var table = []struct {
		location string
		typ      int
		bucket   string
		prefix   string
	}{
		{"", typeMemory, "", ""},
		{"rel/path", typeFileSystem, "", ""},
		{"/abs/path/", typeFileSystem, "", ""},
		{"file:/rel/path", typeFileSystem, "", ""},
		{"file:rel/path", typeFileSystem, "", ""},
		{"s3:/bucket", typeS3, "bucket", ""},
		{"s3:/bucket/photos", typeS3, "bucket", "photos/"},
		{"s3://localhost:9000/bucket/prefix/", typeS3, "bucket", "prefix/"},
	}

	for _, row := range table {
		t.Log(row.location)
		result := parselocation(row.location)
		switch x := result.(type) {
		case *store.Memory:
			if row.typ != typeMemory {
				t.Errorf("unexpected received %#v", result)
			}
		case *store.FileSystem:
			if row.typ != typeFileSystem {
				t.Errorf("unexpected received %#v", result)
			}
		case *store.S3:
			if row.typ != typeS3 {
				t.Errorf("unexpected received %#v", result)
			}
			if x.Bucket != row.bucket {
				t.Error("expected bucket", row.bucket, "received", x.Bucket)
			}
			if x.Prefix != row.prefix {
				t.Error("expected prefix", row.prefix, "received", x.Prefix)
			}
		}
	}
}

func TestParseLocationMalformed(t *testing.T) {
	// a location url.Parse cannot handle should come back nil, not panic
	var table = []string{
		"://no-scheme",
		"s3://bad\x7fhost/bucket",
	}
	for _, location := range table {
		t.Log(location)
		if result := parselocation(location); result != nil {
			t.Errorf("unexpected received %#v", result)
		}
	}
}
