package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"vboard/internal/blobstore"
	"vboard/internal/models"
)

// FileContent is a single-pass blob stream plus its resolved media type.
// The underlying transport is consumed once; the reader is not restartable.
type FileContent struct {
	Reader    io.ReadCloser
	MediaType string
}

// FileService resolves storage keys to blob streams.
type FileService struct {
	blobs  blobstore.BlobStore
	policy MediaPolicy
}

// NewFileService constructs a FileService.
func NewFileService(blobs blobstore.BlobStore, policy MediaPolicy) *FileService {
	return &FileService{blobs: blobs, policy: policy}
}

// Open returns the stored stream for fileID, translating the blob store's
// not-found condition into the domain error. The caller owns the reader.
func (s *FileService) Open(ctx context.Context, fileID string) (*FileContent, error) {
	if s == nil || s.blobs == nil {
		return nil, internalError(fmt.Errorf("file service is not configured"))
	}
	fileID = strings.TrimSpace(fileID)
	if fileID == "" || strings.ContainsAny(fileID, "/\\") {
		return nil, badRequestCode(fmt.Errorf("invalid file id"), ErrCodeInvalidID)
	}

	rc, err := s.blobs.Open(ctx, fileID)
	if err != nil {
		if errors.Is(err, blobstore.ErrNotExist) {
			return nil, domainError(models.ErrFileNotExists)
		}
		return nil, err
	}

	return &FileContent{Reader: rc, MediaType: s.policy.MediaTypeForKey(fileID)}, nil
}
