package mcpserver

import (
	"context"
	"os"
	"path/filepath"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dkasturi/docuchat/internal/chat"
	"github.com/dkasturi/docuchat/internal/ingest"
	"github.com/dkasturi/docuchat/pkg/logger_i"
)

// Exposes document ingestion and chat as MCP tools over stdio, sharing the
// same services as the HTTP API.

var logger *logger_i.Logger

type Deps struct {
	Ingest   ingest.Service
	Sessions chat.Manager
	Pipeline chat.Pipeline
}

type ProcessDocumentInput struct {
	Path string `json:"path" jsonschema:"path of the document file to ingest"`
}

type ProcessDocumentOutput struct {
	AssetID string `json:"asset_id" jsonschema:"id of the stored asset"`
}

type StartChatInput struct {
	AssetID string `json:"asset_id" jsonschema:"asset id to bind the session to"`
}

type StartChatOutput struct {
	ChatID string `json:"chat_id" jsonschema:"id of the new chat session"`
}

type ChatMessageInput struct {
	ChatID  string `json:"chat_id" jsonschema:"chat session id"`
	Message string `json:"message" jsonschema:"user message"`
}

type ChatMessageOutput struct {
	Response string `json:"response" jsonschema:"full response text"`
}

type ChatHistoryInput struct {
	ChatID string `json:"chat_id" jsonschema:"chat session id"`
}

type HistoryExchange struct {
	User string `json:"user"`
	Bot  string `json:"bot"`
}

type ChatHistoryOutput struct {
	History []HistoryExchange `json:"history"`
}

func Run(ctx context.Context, deps Deps) error {
	logger = logger_i.NewLogger("McpServer")

	server := mcp.NewServer(&mcp.Implementation{Name: "docuchat", Version: "1.0.0"}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "process_document",
		Description: "Ingest a document file and store its extracted text as an asset",
	}, func(ctx context.Context, req *mcp.CallToolRequest, in ProcessDocumentInput) (*mcp.CallToolResult, ProcessDocumentOutput, error) {
		data, err := os.ReadFile(in.Path)
		if err != nil {
			return nil, ProcessDocumentOutput{}, err
		}

		assetId, err := deps.Ingest.ProcessUpload(ctx, filepath.Base(in.Path), data, ingest.ModeText)
		if err != nil {
			return nil, ProcessDocumentOutput{}, err
		}

		return nil, ProcessDocumentOutput{AssetID: assetId}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "chat_start",
		Description: "Start a chat session bound to a previously stored asset",
	}, func(ctx context.Context, req *mcp.CallToolRequest, in StartChatInput) (*mcp.CallToolResult, StartChatOutput, error) {
		chatId, err := deps.Sessions.Start(ctx, in.AssetID)
		if err != nil {
			return nil, StartChatOutput{}, err
		}

		return nil, StartChatOutput{ChatID: chatId}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "chat_message",
		Description: "Send a message in a chat session and get the full response",
	}, func(ctx context.Context, req *mcp.CallToolRequest, in ChatMessageInput) (*mcp.CallToolResult, ChatMessageOutput, error) {
		response, err := deps.Pipeline.Message(ctx, in.ChatID, in.Message)
		if err != nil {
			return nil, ChatMessageOutput{}, err
		}

		return nil, ChatMessageOutput{Response: response}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "chat_history",
		Description: "List every user and bot exchange of a chat session in order",
	}, func(ctx context.Context, req *mcp.CallToolRequest, in ChatHistoryInput) (*mcp.CallToolResult, ChatHistoryOutput, error) {
		entries, err := deps.Sessions.History(ctx, in.ChatID)
		if err != nil {
			return nil, ChatHistoryOutput{}, err
		}

		out := ChatHistoryOutput{History: make([]HistoryExchange, 0, len(entries))}
		for _, entry := range entries {
			out.History = append(out.History, HistoryExchange{User: entry.User, Bot: entry.Bot})
		}

		return nil, out, nil
	})

	logger.Info("MCP server listening on stdio")
	return server.Run(ctx, &mcp.StdioTransport{})
}
