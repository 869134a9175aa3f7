// Package server implements the vboard HTTP API: boards, threads with image
// attachments, posts with mandatory voice recordings, and media download.
//
// Blob uploads complete before any database transaction opens. A create call
// that fails after its uploads leaves those blobs orphaned on purpose; object
// storage is treated as cheap and reconcilable out of band, and no
// compensation logic runs here.
package server

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"vboard/internal/blobstore"
	"vboard/internal/store"
)

const (
	allowRemoteEnvKey = "VBOARD_ALLOW_REMOTE"
	readHeaderTimeout = 5 * time.Second
	readTimeout       = 30 * time.Second
	writeTimeout      = 60 * time.Second
	idleTimeout       = 60 * time.Second

	defaultPostPreviewLimit        = 3
	defaultUploadMaxBodyBytes      = 100 << 20 // 100 MiB
	defaultMultipartMaxMemoryBytes = 8 << 20   // 8 MiB
)

// Stores groups the persistence surfaces the server needs. A single
// *store.Store satisfies all three.
type Stores struct {
	Boards  store.BoardStore
	Threads store.ThreadStore
	Posts   store.PostStore
}

// Options tunes upload limits, the attachment policy, and the board-listing
// post preview cap.
type Options struct {
	MediaPolicy        MediaPolicy
	PostPreviewLimit   int
	UploadMaxBodyBytes int64
	MultipartMaxMemory int64
}

// Server wraps HTTP handlers for the vboard API.
type Server struct {
	addr    string
	logger  *slog.Logger
	boards  *BoardService
	threads *ThreadService
	posts   *PostService
	files   *FileService

	uploadMaxBody      int64
	multipartMaxMemory int64
}

// New creates a new server instance.
func New(addr string, stores Stores, blobs blobstore.BlobStore, logger *slog.Logger, opts Options) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	policy := opts.MediaPolicy
	if len(policy.ImageTypes) == 0 || policy.VoiceExt == "" {
		policy = DefaultMediaPolicy()
	}
	previewLimit := opts.PostPreviewLimit
	if previewLimit <= 0 {
		previewLimit = defaultPostPreviewLimit
	}
	uploadMaxBody := opts.UploadMaxBodyBytes
	if uploadMaxBody <= 0 {
		uploadMaxBody = defaultUploadMaxBodyBytes
	}
	multipartMaxMemory := opts.MultipartMaxMemory
	if multipartMaxMemory <= 0 {
		multipartMaxMemory = defaultMultipartMaxMemoryBytes
	}

	pipeline := &mediaPipeline{blobs: blobs, policy: policy}

	return &Server{
		addr:               addr,
		logger:             logger,
		boards:             NewBoardService(stores.Boards),
		threads:            NewThreadService(stores.Threads, pipeline, previewLimit),
		posts:              NewPostService(stores.Posts, pipeline),
		files:              NewFileService(blobs, policy),
		uploadMaxBody:      uploadMaxBody,
		multipartMaxMemory: multipartMaxMemory,
	}
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	s.log().Info("starting server", "addr", s.addr)
	server := &http.Server{
		Addr:              s.addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	return server.ListenAndServe()
}

// ListenAddr converts a base API URL into a listen address.
func ListenAddr(apiURL string) (string, error) {
	if apiURL == "" {
		return "", fmt.Errorf("api url is required")
	}
	if u, err := url.Parse(apiURL); err == nil && u.Host != "" {
		host := u.Hostname()
		if !isAllowedListenHost(host) {
			return "", fmt.Errorf("remote listen host %q requires %s=true", host, allowRemoteEnvKey)
		}
		return u.Host, nil
	}

	host, _, err := net.SplitHostPort(apiURL)
	if err == nil && !isAllowedListenHost(host) {
		return "", fmt.Errorf("remote listen host %q requires %s=true", host, allowRemoteEnvKey)
	}

	return apiURL, nil
}

func isAllowedListenHost(host string) bool {
	if host == "" {
		return true
	}
	if strings.EqualFold(strings.TrimSpace(os.Getenv(allowRemoteEnvKey)), "true") {
		return true
	}
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

func (s *Server) log() *slog.Logger {
	if s != nil && s.logger != nil {
		return s.logger
	}
	return slog.Default()
}
