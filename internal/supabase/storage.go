package supabase

import (
	"bytes"
	"fmt"
	"strings"

	storage "github.com/supabase-community/storage-go"
)

// StorageClient wraps the Supabase Storage API for a single bucket. Paths are
// caller-chosen strings; the bucket enforces nothing beyond
// uniqueness-on-non-overwrite.
type StorageClient struct {
	client  *storage.Client
	bucket  string
	baseURL string
}

func NewStorageClient(supabaseURL, serviceKey, bucket string) (*StorageClient, error) {
	// Ensure URL doesn't have trailing slash
	baseURL := strings.TrimSuffix(supabaseURL, "/")
	client := storage.NewClient(baseURL+"/storage/v1", serviceKey, nil)

	return &StorageClient{
		client:  client,
		bucket:  bucket,
		baseURL: baseURL,
	}, nil
}

// Upload writes an object at path. With overwrite false the call fails when
// an object already exists at that path.
func (s *StorageClient) Upload(path string, data []byte, contentType string, overwrite bool) error {
	_, err := s.client.UploadFile(s.bucket, path, bytes.NewReader(data), storage.FileOptions{
		ContentType: &contentType,
		Upsert:      &overwrite,
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", path, err)
	}
	return nil
}

// Remove deletes the given objects. Used only for saga compensation.
func (s *StorageClient) Remove(paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	_, err := s.client.RemoveFile(s.bucket, paths)
	if err != nil {
		return fmt.Errorf("failed to remove objects: %w", err)
	}
	return nil
}

// SignedURL issues a time-limited read URL for one object path.
func (s *StorageClient) SignedURL(path string, ttlSeconds int) (string, error) {
	resp, err := s.client.CreateSignedUrl(s.bucket, path, ttlSeconds)
	if err != nil {
		return "", fmt.Errorf("failed to sign %s: %w", path, err)
	}
	signed := resp.SignedURL
	if strings.HasPrefix(signed, "/") {
		signed = s.baseURL + "/storage/v1" + signed
	}
	return signed, nil
}

func (s *StorageClient) PublicURL(path string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, s.bucket, path)
}
