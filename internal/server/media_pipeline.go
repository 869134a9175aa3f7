package server

import (
	"context"
	"io"
	"sort"
	"strings"

	"github.com/google/uuid"

	"vboard/internal/blobstore"
	"vboard/internal/models"
)

const fallbackMediaType = "application/octet-stream"

// attachmentClass selects which extension policy applies to an upload.
type attachmentClass int

const (
	classImage attachmentClass = iota
	classVoice
)

// Upload is one client-supplied attachment stream.
type Upload struct {
	Filename string
	Content  io.Reader
}

// MediaPolicy maps allowed image extensions to media types and names the
// single allowed voice extension.
type MediaPolicy struct {
	ImageTypes map[string]string
	VoiceExt   string
	VoiceType  string
}

// DefaultMediaPolicy returns the stock jpeg/jpg/png + mp3 policy.
func DefaultMediaPolicy() MediaPolicy {
	return MediaPolicy{
		ImageTypes: map[string]string{
			"jpeg": "image/jpeg",
			"jpg":  "image/jpeg",
			"png":  "image/x-png",
		},
		VoiceExt:  "mp3",
		VoiceType: "audio/mpeg",
	}
}

// MediaTypeForKey resolves a storage key's media type from its extension.
func (p MediaPolicy) MediaTypeForKey(key string) string {
	ext := fileExt(key)
	if mediaType, ok := p.ImageTypes[ext]; ok {
		return mediaType
	}
	if ext != "" && ext == p.VoiceExt {
		return p.VoiceType
	}
	return fallbackMediaType
}

func (p MediaPolicy) imageExtensions() []string {
	exts := make([]string, 0, len(p.ImageTypes))
	for ext := range p.ImageTypes {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// fileExt returns the substring after the final dot, case-sensitive as
// supplied. A name without a dot has no extension.
func fileExt(name string) string {
	idx := strings.LastIndexByte(name, '.')
	if idx < 0 || idx == len(name)-1 {
		return ""
	}
	return name[idx+1:]
}

// mediaPipeline validates attachment streams and uploads each to the blob
// store under a freshly generated storage key.
type mediaPipeline struct {
	blobs  blobstore.BlobStore
	policy MediaPolicy
}

// uploadAll processes uploads in input order: validate, generate a storage
// key, store. It fails fast on the first validation failure; blobs stored
// for earlier items stay in place, since no transaction covers blob writes.
func (p *mediaPipeline) uploadAll(ctx context.Context, uploads []Upload, class attachmentClass) ([]models.MediaFile, error) {
	media := make([]models.MediaFile, 0, len(uploads))
	for _, upload := range uploads {
		ext, contentType, err := p.validate(upload.Filename, class)
		if err != nil {
			return nil, err
		}
		key := uuid.NewString() + "." + ext
		if err := p.blobs.Put(ctx, key, contentType, upload.Content); err != nil {
			return nil, err
		}
		media = append(media, models.MediaFile{Filename: upload.Filename, StorageKey: key})
	}
	return media, nil
}

// validate checks the declared filename's extension against the policy for
// the attachment class. No side effects.
func (p *mediaPipeline) validate(filename string, class attachmentClass) (ext, contentType string, err error) {
	ext = fileExt(filename)
	if class == classVoice {
		if ext != p.policy.VoiceExt {
			return "", "", &models.UnsupportedFileTypeError{Filename: filename, Allowed: []string{p.policy.VoiceExt}}
		}
		return ext, p.policy.VoiceType, nil
	}

	mediaType, ok := p.policy.ImageTypes[ext]
	if !ok {
		return "", "", &models.UnsupportedFileTypeError{Filename: filename, Allowed: p.policy.imageExtensions()}
	}
	return ext, mediaType, nil
}
