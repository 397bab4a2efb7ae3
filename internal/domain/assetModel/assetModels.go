package assetModel

import "context"

type ContentKind string

const (
	ContentText      ContentKind = "text"
	ContentEmbedding ContentKind = "embedding"
	ContentBoth      ContentKind = "text+embedding"
)

// AssetContent is a tagged variant: raw extracted text, an embedding
// vector, or both, depending on the ingestion route.
type AssetContent struct {
	Kind      ContentKind `json:"kind"`
	Text      string      `json:"text,omitempty"`
	Embedding []float32   `json:"embedding,omitempty"`
}

func TextContent(text string) AssetContent {
	return AssetContent{Kind: ContentText, Text: text}
}

func EmbeddingContent(vector []float32) AssetContent {
	return AssetContent{Kind: ContentEmbedding, Embedding: vector}
}

// Asset is an ingested document's persisted representation. Created once,
// never mutated.
type Asset struct {
	Id      string       `json:"asset_id"`
	Content AssetContent `json:"content"`
}

// AssetStore owns all assets. Add generates a fresh opaque id and must
// never reuse or silently overwrite one. Get returns
// commonModels.ErrNotFound for unknown ids.
type AssetStore interface {
	Add(ctx context.Context, content AssetContent) (string, error)
	Get(ctx context.Context, assetId string) (Asset, error)
}
