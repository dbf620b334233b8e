package cache

import (
	"bytes"
	"context"
	"io"
	"strings"

	"storygrabber/core/storage"

	"github.com/minio/minio-go/v7"
)

// ObjectBackend stores cache records as JSON objects in a bucket, one
// object per (kind, username) pair. It lets several instances share a
// cache through S3 or MinIO.
type ObjectBackend struct {
	client storage.Client
	bucket string
	prefix string
}

// NewObjectBackend creates an object-storage backend. Objects are named
// <prefix><kind>/<safe-username>.json.
func NewObjectBackend(client storage.Client, bucket, prefix string) *ObjectBackend {
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &ObjectBackend{client: client, bucket: bucket, prefix: prefix}
}

func (o *ObjectBackend) objectName(kind Kind, username string) string {
	return o.prefix + string(kind) + "/" + SafeName(username) + ".json"
}

func (o *ObjectBackend) Get(ctx context.Context, kind Kind, username string) ([]byte, error) {
	obj, err := o.client.GetObject(ctx, o.bucket, o.objectName(kind, username), minio.GetObjectOptions{})
	if err != nil {
		if isMissingObject(err) {
			return nil, nil
		}
		return nil, err
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		// MinIO surfaces missing keys on first read, not on open.
		if isMissingObject(err) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

func (o *ObjectBackend) Put(ctx context.Context, kind Kind, username string, data []byte) error {
	_, err := o.client.PutObject(ctx, o.bucket, o.objectName(kind, username),
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"})
	return err
}

func (o *ObjectBackend) Delete(ctx context.Context, kind Kind, username string) error {
	return o.client.RemoveObject(ctx, o.bucket, o.objectName(kind, username), minio.RemoveObjectOptions{})
}

func (o *ObjectBackend) Close() error {
	return nil
}

func isMissingObject(err error) bool {
	resp := minio.ToErrorResponse(err)
	return resp.Code == "NoSuchKey" || resp.StatusCode == 404
}
