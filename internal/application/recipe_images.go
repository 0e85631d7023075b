package application

import (
	"context"
	"io"

	"cloud.google.com/go/storage"

	"github.com/oksasatya/go-recipe-platform/pkg/helpers"
)

// GCSImageStore uploads recipe images into a Cloud Storage bucket.
type GCSImageStore struct {
	Client *storage.Client
	Bucket string
}

func (g *GCSImageStore) Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error) {
	return helpers.UploadObject(ctx, g.Client, g.Bucket, objectPath, contentType, r)
}

var _ ImageStore = (*GCSImageStore)(nil)
