package gemini

import (
	"context"
	"fmt"
	"sync"

	"google.golang.org/genai"

	"github.com/dkasturi/docuchat/internal/config"
	"github.com/dkasturi/docuchat/internal/domain/assetModel"
	"github.com/dkasturi/docuchat/internal/responder"
	"github.com/dkasturi/docuchat/pkg/logger_i"
)

type llmResponder struct {
	client    *genai.Client
	modelName string
	assets    assetModel.AssetStore
}

var logger *logger_i.Logger
var geminiResponder *llmResponder
var once sync.Once

// GetGeminiResponder answers from the bound asset's extracted text. It only
// works against text-carrying assets; embedding-only assets produce an
// empty context.
func GetGeminiResponder(ctx context.Context, apikey string, modelName string, assets assetModel.AssetStore) responder.Responder {
	once.Do(func() {
		logger = logger_i.NewLogger("responder_gemini")
		newGeminiResponder(ctx, apikey, modelName, assets)
	})

	if geminiResponder == nil {
		return nil
	}
	return &llmResponder{client: geminiResponder.client, modelName: geminiResponder.modelName, assets: assets}
}

func newGeminiResponder(ctx context.Context, apikey string, modelName string, assets assetModel.AssetStore) {

	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apikey})
	if err != nil {
		logger.Error("Error creating Gemini client:", "error", err)
	}
	if c != nil {
		geminiResponder = &llmResponder{client: c, modelName: modelName, assets: assets}
		logger.Info("Gemini client created", "model", modelName)
		go closeClient(ctx, geminiResponder)
	}

}

func (c *llmResponder) Respond(ctx context.Context, assetId string, userMessage string) (string, error) {
	log := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	documentText := ""
	asset, err := c.assets.Get(ctx, assetId)
	if err != nil {
		// dangling binding: answer without document context rather than fail the chat
		log.Warn("Bound asset not resolvable", "assetId", assetId, "error", err)
	} else {
		documentText = asset.Content.Text
	}

	systemInstruction := &genai.Content{
		Parts: []*genai.Part{
			{Text: config.ModelContext},
		},
	}

	userPrompt := fmt.Sprintf("Document:\n%s\n\nUser Question: %s", documentText, userMessage)

	contentConfig := &genai.GenerateContentConfig{
		SystemInstruction: systemInstruction,
	}

	result, err := c.client.Models.GenerateContent(
		ctx,
		c.modelName,
		genai.Text(userPrompt),
		contentConfig,
	)
	if err != nil {
		log.Error("Gemini generation failed", "error", err)
		return "", err
	}
	return result.Text(), nil
}

func closeClient(ctx context.Context, llm *llmResponder) {
	<-ctx.Done()
	logger.Info("Closing Gemini client")
	llm.client = nil
	llm.modelName = ""
}
