package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/qzlaw/office-backend/pkg/config"
)

// Provider stores and removes uploaded artifacts. Delete must treat an
// already-absent object as success so file removal can be retried safely.
type Provider interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string, size int64) error
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
}

// Init picks the provider from configuration: an S3-compatible bucket when
// the S3_* settings are complete, the local uploads directory otherwise.
func Init(cfg *config.Config) Provider {
	if cfg.S3Endpoint != "" && cfg.S3AccessKeyID != "" && cfg.S3SecretAccessKey != "" && cfg.S3Bucket != "" {
		s3p, err := NewS3(cfg)
		if err != nil {
			log.Printf("[WARNING] Failed to initialize S3 storage: %v. Falling back to local storage.", err)
			return NewLocal(cfg.UploadDir)
		}
		log.Printf("Storage connection established (S3 - bucket: %s)", cfg.S3Bucket)
		return s3p
	}
	log.Printf("Storage connection established (Local filesystem - path: %s)", cfg.UploadDir)
	return NewLocal(cfg.UploadDir)
}

// MakeFileKey builds a flat, collision-free storage filename that keeps the
// original extension: "file-<uuid><ext>".
func MakeFileKey(originalName string) string {
	return fmt.Sprintf("file-%s%s", uuid.New().String(), filepath.Ext(originalName))
}

// Local keeps artifacts in a single directory on disk.
type Local struct {
	baseDir string
}

func NewLocal(baseDir string) *Local {
	return &Local{baseDir: baseDir}
}

func (l *Local) Upload(ctx context.Context, key string, r io.Reader, contentType string, size int64) error {
	if err := os.MkdirAll(l.baseDir, 0o755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}
	dst, err := os.Create(filepath.Join(l.baseDir, key))
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		return fmt.Errorf("failed to save file: %w", err)
	}
	return nil
}

func (l *Local) Delete(ctx context.Context, key string) error {
	if err := os.Remove(filepath.Join(l.baseDir, key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// PublicURL returns the path the frontend links to, relative to the server
// root (the uploads directory is served statically).
func (l *Local) PublicURL(key string) string {
	return path.Join(filepath.Base(l.baseDir), key)
}
