// Package blob stores uploaded files and hands back public URLs.
package blob

import (
	"context"
	"fmt"
	"io"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Storage uploads a file and returns the URL it will be served under.
type Storage interface {
	Upload(ctx context.Context, filename, contentType string, r io.Reader) (string, error)
}

// Downloader streams a stored file to w by its hex id.
type Downloader interface {
	Download(w io.Writer, idHex string) (int64, error)
}

// GridFSStorage keeps uploads in a GridFS bucket and serves them from
// baseURL/files/{id}.
type GridFSStorage struct {
	bucket  *gridfs.Bucket
	baseURL string
}

// NewGridFSStorage creates the uploads bucket on the given database.
func NewGridFSStorage(db *mongo.Database, baseURL string) (*GridFSStorage, error) {
	bucket, err := gridfs.NewBucket(db, options.GridFSBucket().SetName("uploads"))
	if err != nil {
		return nil, fmt.Errorf("gridfs.NewBucket: %w", err)
	}
	return &GridFSStorage{bucket: bucket, baseURL: baseURL}, nil
}

// Upload streams the file into the bucket and returns its public URL.
// The bucket API predates context support, so a ctx deadline is applied
// as the bucket's write deadline.
func (s *GridFSStorage) Upload(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	if deadline, ok := ctx.Deadline(); ok {
		_ = s.bucket.SetWriteDeadline(deadline)
	}

	opts := options.GridFSUpload().SetMetadata(bson.M{"content_type": contentType})
	id, err := s.bucket.UploadFromStream(filename, r, opts)
	if err != nil {
		return "", fmt.Errorf("bucket.UploadFromStream: %w", err)
	}
	return fmt.Sprintf("%s/files/%s", s.baseURL, id.Hex()), nil
}

// Download streams a stored file to w.
func (s *GridFSStorage) Download(w io.Writer, idHex string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return 0, fmt.Errorf("invalid file id: %w", err)
	}
	n, err := s.bucket.DownloadToStream(oid, w)
	if err != nil {
		return n, fmt.Errorf("bucket.DownloadToStream: %w", err)
	}
	return n, nil
}
