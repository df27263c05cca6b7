package ports

import "io"

type BlobStore interface {
	Save(key string, r io.Reader) (int64, error)
	Open(key string) (io.ReadCloser, error)
	Path(key string) (string, error)
}
