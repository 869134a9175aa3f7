package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"vboard/internal/blobstore"
	"vboard/internal/config"
	"vboard/internal/models"
	"vboard/internal/server"
	"vboard/internal/store"
)

func newSrvCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "srv",
		Short: "Run the vboard API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg == nil {
				return fmt.Errorf("config not initialized")
			}
			if cfg.DBPath == "" {
				return fmt.Errorf("db path is required")
			}

			logger := slog.Default().With("component", "server")

			addr, err := server.ListenAddr(cfg.APIURL)
			if err != nil {
				return err
			}

			logger.Info("opening database", "path", cfg.DBPath)
			st, err := store.Open(cfg.DBPath)
			if err != nil {
				return err
			}
			defer st.Close()

			bs, err := openBlobStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			if err := st.EnsureBoard(cmd.Context(), models.Board{
				Slug: cfg.DefaultBoard.Slug,
				Name: cfg.DefaultBoard.Name,
			}); err != nil {
				return fmt.Errorf("seed default board: %w", err)
			}

			srv := server.New(addr, server.Stores{Boards: st, Threads: st, Posts: st}, bs, logger, server.Options{
				MediaPolicy:        mediaPolicyFromConfig(cfg.Media),
				PostPreviewLimit:   cfg.PostPreviewLimit,
				UploadMaxBodyBytes: cfg.Uploads.MaxBodyBytes,
				MultipartMaxMemory: cfg.Uploads.MultipartMaxMemory,
			})
			return srv.ListenAndServe()
		},
	}
}

func openBlobStore(ctx context.Context, cfg *config.Config) (blobstore.BlobStore, error) {
	switch cfg.Blobs.Backend {
	case config.BlobBackendS3:
		bs, err := blobstore.NewS3(blobstore.S3Options{
			Endpoint:  cfg.Blobs.S3.Endpoint,
			AccessKey: cfg.Blobs.S3.AccessKey,
			SecretKey: cfg.Blobs.S3.SecretKey,
			Bucket:    cfg.Blobs.S3.Bucket,
			UseSSL:    cfg.Blobs.S3.UseSSL,
		})
		if err != nil {
			return nil, err
		}
		if err := bs.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return bs, nil
	case config.BlobBackendLocal:
		root := cfg.Blobs.LocalRoot
		if root == "" {
			root = filepath.Join(filepath.Dir(cfg.DBPath), ".vboard", "blobs")
		}
		return blobstore.NewLocalDir(root)
	default:
		return nil, fmt.Errorf("unknown blob backend %q", cfg.Blobs.Backend)
	}
}

func mediaPolicyFromConfig(media config.MediaConfig) server.MediaPolicy {
	policy := server.DefaultMediaPolicy()
	if len(media.ImageTypes) > 0 {
		policy.ImageTypes = media.ImageTypes
	}
	if media.VoiceExtension != "" {
		policy.VoiceExt = media.VoiceExtension
	}
	if media.VoiceMediaType != "" {
		policy.VoiceType = media.VoiceMediaType
	}
	return policy
}
