package ingest

import (
	"context"
	"time"

	"github.com/dkasturi/docuchat/internal/domain/assetModel"
	"github.com/dkasturi/docuchat/internal/embedding"
	"github.com/dkasturi/docuchat/internal/extract"
	"github.com/dkasturi/docuchat/internal/metrics"
	"github.com/dkasturi/docuchat/pkg/logger_i"
)

type Mode string

const (
	// ModeText stores the extracted text under the new asset id
	ModeText Mode = "text-only"
	// ModeEmbedding stores the embedding of the extracted text instead
	ModeEmbedding Mode = "embedding-only"
)

// Service is the ingestion pipeline: extension routing, text extraction,
// optional embedding, then one insert into the asset store. Nothing is
// committed when any step fails.
type Service interface {
	ProcessUpload(ctx context.Context, filename string, data []byte, mode Mode) (string, error)
}

type service struct {
	assets   assetModel.AssetStore
	embedder embedding.Embedder
	logger   *logger_i.Logger
}

// NewService constructor
func NewService(assets assetModel.AssetStore, embedder embedding.Embedder) Service {
	return &service{
		assets:   assets,
		embedder: embedder,
		logger:   logger_i.NewLogger("Ingest Service"),
	}
}

func (s *service) ProcessUpload(ctx context.Context, filename string, data []byte, mode Mode) (string, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("document_ingestion", time.Since(start)) }()

	format := extract.FormatFor(filename)
	s.logger.Debug("Processing upload", "filename", filename, "format", format, "mode", mode)

	text, err := extract.Extract(data, format)
	if err != nil {
		s.logger.Error("Error extracting document content", "filename", filename, "error", err)
		return "", err
	}

	if mode == ModeEmbedding {
		vector, err := s.embedText(ctx, text)
		if err != nil {
			s.logger.Error("Error embedding document content", "filename", filename, "error", err)
			return "", err
		}
		return s.assets.Add(ctx, assetModel.EmbeddingContent(vector))
	}
	return s.assets.Add(ctx, assetModel.TextContent(text))
}

func (s *service) embedText(ctx context.Context, text string) ([]float32, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("embedding", time.Since(start)) }()
	return s.embedder.GetEmbedding(ctx, text)
}
