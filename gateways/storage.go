package gateways

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

var ErrObjectNotFound = errors.New("object not found")

// DiplomaStore fetches applicant diploma scans from an object-store
// bucket keyed by office and applicant identity.
type DiplomaStore struct {
	client *minio.Client
	bucket string
}

func NewDiplomaStore(endpoint, accessKey, secretKey string, useSSL bool, bucket string) (*DiplomaStore, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, err
	}
	return &DiplomaStore{client: client, bucket: bucket}, nil
}

// objectKey mirrors the layout the back office uploads under:
// <office>/<first last> - <email>/diploma.jpg
func objectKey(office, fullName, email string) string {
	return path.Join(office, fmt.Sprintf("%s - %s", fullName, email), "diploma.jpg")
}

func (d *DiplomaStore) Fetch(ctx context.Context, office, fullName, email string) ([]byte, error) {
	obj, err := d.client.GetObject(ctx, d.bucket, objectKey(office, fullName, email), minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()

	data := new(bytes.Buffer)
	if _, err := data.ReadFrom(obj); err != nil {
		if resp := minio.ToErrorResponse(err); resp.Code == "NoSuchKey" {
			return nil, ErrObjectNotFound
		}
		return nil, fmt.Errorf("read object: %w", err)
	}
	return data.Bytes(), nil
}
