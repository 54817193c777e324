package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// BucketClient uploads objects to a storage bucket over its REST API and
// returns their public URLs.
type BucketClient struct {
	baseURL string
	apiKey  string
	bucket  string
	client  *http.Client
}

func NewBucketClient(baseURL, apiKey, bucket string) (*BucketClient, error) {
	if baseURL == "" {
		return nil, errors.New("STORAGE_URL not set")
	}
	if apiKey == "" {
		return nil, errors.New("STORAGE_KEY not set")
	}

	return &BucketClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		bucket:  bucket,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}, nil
}

// PublicURL is where an uploaded object can be fetched without credentials.
func (b *BucketClient) PublicURL(object string) string {
	return fmt.Sprintf("%s/object/public/%s/%s", b.baseURL, b.bucket, object)
}

func (b *BucketClient) Upload(ctx context.Context, object, contentType string, data []byte) (string, error) {
	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		fmt.Sprintf("%s/object/%s/%s", b.baseURL, b.bucket, object),
		bytes.NewReader(data),
	)
	if err != nil {
		return "", err
	}

	req.Header.Set("Authorization", "Bearer "+b.apiKey)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Cache-Control", "max-age=3600")

	resp, err := b.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		buf := new(bytes.Buffer)
		buf.ReadFrom(resp.Body)
		return "", errors.New("failed to upload image: " + buf.String())
	}

	return b.PublicURL(object), nil
}
