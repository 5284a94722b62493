// Package storage pushes files straight to an S3-compatible bucket endpoint
// (GCS interop, MinIO, AWS), bypassing the backend upload route. It satisfies
// the same transport contract as the API client, so the orchestrator does not
// care which path a deployment selects.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/hashedin27-max/GCS-Upload/internal/client/models"
	"github.com/hashedin27-max/GCS-Upload/internal/logging"
)

// Uploader is a direct object-storage transport.
type Uploader struct {
	client *minio.Client
	log    logging.Logger
}

// Options configures the storage endpoint connection.
type Options struct {
	Endpoint  string // e.g. storage.googleapis.com
	AccessKey string
	SecretKey string
	UseSSL    bool
}

// New creates an Uploader against the given endpoint.
func New(opts Options, log logging.Logger) (*Uploader, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("init storage client: %w", err)
	}
	return &Uploader{client: client, log: log}, nil
}

// Upload puts one file under target.DestinationPath in target.Bucket,
// reporting byte progress as the object body is consumed.
func (u *Uploader) Upload(ctx context.Context, target models.BucketTarget, file models.UploadCandidate, progress func(sent, total int64)) error {
	f, err := os.Open(file.Path)
	if err != nil {
		return fmt.Errorf("open %s: %w", file.Path, err)
	}
	defer f.Close()

	key := path.Join(target.DestinationPath, file.Name)
	contentType := file.Type
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	u.log.Debug(ctx, "direct upload", "bucket", target.Bucket, "key", key, "bytes", file.Size)

	reader := &progressReader{r: f, total: file.Size, fn: progress}
	_, err = u.client.PutObject(ctx, target.Bucket, key, reader, file.Size,
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("put object %s/%s: %w", target.Bucket, key, err)
	}

	if progress != nil {
		progress(file.Size, file.Size)
	}
	return nil
}

type progressReader struct {
	r     io.Reader
	total int64
	sent  int64
	fn    func(sent, total int64)
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.sent += int64(n)
		if p.fn != nil {
			p.fn(p.sent, p.total)
		}
	}
	return n, err
}
