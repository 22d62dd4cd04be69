package mapqtl

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
)

// IsGoogleStoragePath reports whether path names a Google Storage object.
func IsGoogleStoragePath(path string) bool {
	return strings.HasPrefix(path, "gs://")
}

// googleStorageObject splits a gs://bucket/object path and returns a handle to
// the object.
func googleStorageObject(path string, client *storage.Client) (*storage.ObjectHandle, error) {
	if client == nil {
		return nil, fmt.Errorf("%s: a Google Storage client is required for gs:// paths", path)
	}

	// Detect the bucket and the path to the actual file
	pathParts := strings.SplitN(strings.TrimPrefix(path, "gs://"), "/", 2)
	if len(pathParts) != 2 || pathParts[0] == "" || pathParts[1] == "" {
		return nil, fmt.Errorf("Tried to split your google storage path into 2 parts, but got %d: %v", len(pathParts), pathParts)
	}
	bucketName := pathParts[0]
	pathName := pathParts[1]

	return client.Bucket(bucketName).Object(pathName), nil
}

// OpenInput opens path for reading. Paths starting with gs:// are read from
// Google Storage through client; anything else is a local file. Compressed
// files and zip archives are decompressed transparently (see MaybeDecompress).
func OpenInput(ctx context.Context, path string, client *storage.Client) (io.ReadCloser, error) {
	var rc io.ReadCloser

	if IsGoogleStoragePath(path) {
		handle, err := googleStorageObject(path, client)
		if err != nil {
			return nil, pfx.Err(err)
		}

		r, err := handle.NewReader(ctx)
		if err != nil {
			return nil, pfx.Err(fmt.Errorf("%s: %w", path, err))
		}
		rc = r
	} else {
		local, err := ExpandHome(path)
		if err != nil {
			return nil, err
		}

		f, err := os.Open(local)
		if err != nil {
			return nil, pfx.Err(err)
		}
		rc = f
	}

	out, err := MaybeDecompress(rc)
	if err != nil {
		rc.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return out, nil
}

// CreateOutput opens path for writing: "-" is stdout, gs:// paths become
// Google Storage uploads, anything else is created (or truncated) on disk.
// For Google Storage the object is only committed once Close returns nil, so
// callers must check the error from Close.
func CreateOutput(ctx context.Context, path string, client *storage.Client) (io.WriteCloser, error) {
	switch {
	case path == "-":
		return nopWriteCloser{os.Stdout}, nil
	case IsGoogleStoragePath(path):
		handle, err := googleStorageObject(path, client)
		if err != nil {
			return nil, pfx.Err(err)
		}
		w := handle.NewWriter(ctx)
		w.ContentType = "text/plain"
		return w, nil
	}

	local, err := ExpandHome(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Create(local)
	if err != nil {
		return nil, pfx.Err(err)
	}

	return f, nil
}

// Satisfies io.Closer as a nop, so that stdout survives.
type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error {
	return nil
}
