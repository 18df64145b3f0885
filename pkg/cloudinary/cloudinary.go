package cloudinary

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/cloudinary/cloudinary-go/v2/config"
)

// Client stores receipt files. Paths returned by Upload are opaque
// Cloudinary public IDs; viewing goes through time-limited signed URLs.
type Client interface {
	Upload(ctx context.Context, file io.Reader, name string) (path string, err error)
	Remove(ctx context.Context, paths []string)
	SignedURL(path string, ttl time.Duration) (string, error)
}

type clientImpl struct {
	cloudName string
	apiKey    string
	apiSecret string
	folder    string
	uploader  *uploader.API
	now       func() time.Time
}

// NewClientFromParams builds a Client from Cloudinary credentials. folder
// is the logical bucket all receipts live under.
func NewClientFromParams(cloudName, apiKey, apiSecret, folder string) (Client, error) {
	cfg, err := config.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, err
	}
	up, err := uploader.NewWithConfiguration(cfg)
	if err != nil {
		return nil, err
	}
	return &clientImpl{
		cloudName: cloudName,
		apiKey:    apiKey,
		apiSecret: apiSecret,
		folder:    folder,
		uploader:  up,
		now:       time.Now,
	}, nil
}

// Upload stores one receipt and returns its storage path. Receipts can be
// images or PDFs, so the resource type is left to auto-detection.
func (c *clientImpl) Upload(ctx context.Context, file io.Reader, name string) (string, error) {
	result, err := c.uploader.Upload(ctx, file, uploader.UploadParams{
		Folder:       c.folder,
		PublicID:     name,
		ResourceType: "auto",
	})
	if err != nil {
		return "", err
	}
	return result.PublicID, nil
}

// Remove deletes receipts best-effort: a failed delete is logged and the
// remaining paths are still attempted. Orphaned files are acceptable;
// blocking a record deletion on them is not.
func (c *clientImpl) Remove(ctx context.Context, paths []string) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if _, err := c.uploader.Destroy(ctx, uploader.DestroyParams{PublicID: p}); err != nil {
			log.Printf("[cloudinary] destroy %s: %v", p, err)
		}
	}
}

// SignedURL returns a time-limited download URL for one receipt, signed
// the way Cloudinary's private download endpoint expects: an SHA-1 over
// the sorted query params plus the API secret.
func (c *clientImpl) SignedURL(path string, ttl time.Duration) (string, error) {
	if path == "" {
		return "", fmt.Errorf("cloudinary: empty path")
	}
	now := c.now().UTC()
	timestamp := now.Unix()
	expiresAt := now.Add(ttl).Unix()

	toSign := fmt.Sprintf("expires_at=%d&public_id=%s&timestamp=%d%s", expiresAt, path, timestamp, c.apiSecret)
	sum := sha1.Sum([]byte(toSign))
	signature := hex.EncodeToString(sum[:])

	return fmt.Sprintf(
		"https://api.cloudinary.com/v1_1/%s/image/download?public_id=%s&timestamp=%d&expires_at=%d&api_key=%s&signature=%s",
		c.cloudName, path, timestamp, expiresAt, c.apiKey, signature,
	), nil
}
