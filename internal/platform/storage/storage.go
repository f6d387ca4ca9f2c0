// Copyright (c) 2026 AV3 Hub. All rights reserved.
// Author: sircats42@gmail.com

/*
Package storage provides blob storage for profile pictures and program binaries.

It exposes a minimal upload-by-path / public-URL contract backed by any
S3-compatible service (AWS S3, MinIO, Cloudflare R2).

Architecture:

  - BlobStore: The contract consumed by domain services.
  - S3Store: Live implementation over the AWS SDK.
  - GuestStore: Stub selected when no backend is configured — uploads are
    rejected with the deterministic guest-mode error, URLs resolve empty.
*/
package storage

import (
	"context"
	"io"

	"github.com/av3hub/avhub/internal/platform/apperr"
)

// BlobStore defines the upload and URL-resolution contract for stored files.
type BlobStore interface {

	/*
		Upload stores a blob under bucket/key, overwriting any existing object.

		Parameters:
		  - context: context.Context
		  - bucket: string (logical bucket, e.g. "avatars")
		  - key: string (object path within the bucket)
		  - body: io.Reader
		  - contentType: string

		Returns:
		  - string: Publicly reachable URL of the stored object
		  - error: Upload failures
	*/
	Upload(context context.Context, bucket, key string, body io.Reader, contentType string) (string, error)

	/*
		PublicURL resolves the publicly reachable URL for an object.

		Parameters:
		  - bucket: string
		  - key: string

		Returns:
		  - string: URL, or empty string when unresolvable
	*/
	PublicURL(bucket, key string) string

	/*
		Delete removes an object. Deleting a missing object is not an error.

		Parameters:
		  - context: context.Context
		  - bucket: string
		  - key: string

		Returns:
		  - error: Deletion failures
	*/
	Delete(context context.Context, bucket, key string) error
}

// # Guest Stub

// GuestStore is the [BlobStore] used when no object storage is configured.
type GuestStore struct{}

// NewGuestStore constructs the stub blob store.
func NewGuestStore() *GuestStore {
	return &GuestStore{}
}

// Upload always rejects with the guest-mode error.
func (store *GuestStore) Upload(context context.Context, bucket, key string, body io.Reader, contentType string) (string, error) {
	return "", apperr.GuestMode("File upload")
}

// PublicURL resolves to an empty URL; the client renders its placeholder.
func (store *GuestStore) PublicURL(bucket, key string) string {
	return ""
}

// Delete silently succeeds; there is nothing to delete in guest mode.
func (store *GuestStore) Delete(context context.Context, bucket, key string) error {
	return nil
}
