package embedding

import (
	"context"
	"fmt"
	"strings"

	"github.com/dkasturi/docuchat/internal/domain/commonModels"
)

type Embedder interface {
	GetEmbedding(ctx context.Context, text string) ([]float32, error)
}

// Service wraps a pretrained encoder backend with the embed contract:
// empty text is rejected, longer inputs are truncated from the end before
// the encoder call, backend failures surface as ErrEncoding. Same text and
// same backend model yield the same vector.
type Service struct {
	backend Embedder
	window  int
}

func NewService(backend Embedder, windowChars int) *Service {
	return &Service{backend: backend, window: windowChars}
}

func (s *Service) GetEmbedding(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: empty text", commonModels.ErrEncoding)
	}

	vector, err := s.backend.GetEmbedding(ctx, Truncate(text, s.window))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", commonModels.ErrEncoding, err)
	}
	return vector, nil
}

// Truncate cuts text to at most window runes, keeping the head. No
// chunking or aggregation across the truncated span.
func Truncate(text string, window int) string {
	if window <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= window {
		return text
	}
	return string(runes[:window])
}
