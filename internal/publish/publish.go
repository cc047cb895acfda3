// Package publish uploads finished augmentation files to Azure Blob Storage.
package publish

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
)

// ErrNotConfigured is returned when no account or container is set.
var ErrNotConfigured = errors.New("publish target not configured")

// Target names where outputs go.
type Target struct {
	AccountURL string
	Container  string
	Prefix     string
}

func (t Target) validate() error {
	if t.AccountURL == "" || t.Container == "" {
		return fmt.Errorf("%w: account URL and container are required", ErrNotConfigured)
	}
	if _, err := url.Parse(t.AccountURL); err != nil {
		return fmt.Errorf("invalid account URL %q: %w", t.AccountURL, err)
	}
	return nil
}

// BlobName is the object name for a local file.
func (t Target) BlobName(localPath string) string {
	base := filepath.Base(localPath)
	prefix := strings.Trim(t.Prefix, "/")
	if prefix == "" {
		return base
	}
	return path.Join(prefix, base)
}

// BlobURL is the address of the named blob.
func (t Target) BlobURL(blobName string) string {
	return strings.TrimRight(t.AccountURL, "/") + "/" + t.Container + "/" + blobName
}

type uploader interface {
	UploadFile(ctx context.Context, containerName, blobName string, file *os.File, o *azblob.UploadFileOptions) (azblob.UploadFileResponse, error)
}

// BlobPublisher uploads files to one container.
type BlobPublisher struct {
	target Target
	client uploader
}

// New creates a publisher authenticated with the default Azure credential
// chain (environment, managed identity, az CLI).
func New(target Target) (*BlobPublisher, error) {
	if err := target.validate(); err != nil {
		return nil, err
	}
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure credential: %w", err)
	}
	return NewWithCredential(target, cred)
}

// NewWithCredential creates a publisher using cred.
func NewWithCredential(target Target, cred azcore.TokenCredential) (*BlobPublisher, error) {
	if err := target.validate(); err != nil {
		return nil, err
	}
	client, err := azblob.NewClient(target.AccountURL, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create blob client: %w", err)
	}
	return &BlobPublisher{target: target, client: client}, nil
}

// Publish uploads the file at localPath and returns its blob URL.
func (p *BlobPublisher) Publish(ctx context.Context, localPath string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", localPath, err)
	}
	defer f.Close() //nolint:errcheck

	name := p.target.BlobName(localPath)
	slog.Debug("uploading", "file", localPath, "container", p.target.Container, "blob", name)

	if _, err := p.client.UploadFile(ctx, p.target.Container, name, f, nil); err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", name, err)
	}
	return p.target.BlobURL(name), nil
}
