package port

import "context"

// ObjectStorage abstracts cloud object storage reads.
type ObjectStorage interface {
	Download(ctx context.Context, bucket, key string) ([]byte, error)
}
