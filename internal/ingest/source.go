package ingest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"findash/internal/domain"
	"findash/internal/port"
)

const s3Scheme = "s3://"

// Reader loads the exported document array from a local file or from object
// storage.
type Reader struct {
	storage port.ObjectStorage
}

// NewReader creates a Reader. storage may be nil, in which case only local
// paths are readable.
func NewReader(storage port.ObjectStorage) *Reader {
	return &Reader{storage: storage}
}

// Records reads source and decodes it as a JSON array. Numbers are kept as
// json.Number so no precision is lost before conversion.
func (r *Reader) Records(ctx context.Context, source string) ([]interface{}, error) {
	data, err := r.read(ctx, source)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var records []interface{}
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", source, err)
	}
	return records, nil
}

func (r *Reader) read(ctx context.Context, source string) ([]byte, error) {
	if !IsS3URI(source) {
		data, err := os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", source, err)
		}
		return data, nil
	}

	bucket, key, err := ParseS3URI(source)
	if err != nil {
		return nil, err
	}
	if r.storage == nil {
		return nil, fmt.Errorf("%w: no object storage configured for %s", domain.ErrUnsupportedSource, source)
	}
	data, err := r.storage.Download(ctx, bucket, key)
	if err != nil {
		return nil, fmt.Errorf("downloading %s: %w", source, err)
	}
	return data, nil
}

// IsS3URI reports whether source names an object in S3.
func IsS3URI(source string) bool {
	return strings.HasPrefix(source, s3Scheme)
}

// ParseS3URI splits s3://bucket/key into its bucket and key.
func ParseS3URI(uri string) (bucket, key string, err error) {
	rest := strings.TrimPrefix(uri, s3Scheme)
	bucket, key, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("%w: %q is not an s3://bucket/key URI", domain.ErrUnsupportedSource, uri)
	}
	return bucket, key, nil
}
