package api

import "github.com/dkasturi/docuchat/internal/domain/chatModel"

type UploadResponse struct {
	AssetID string `json:"asset_id" example:"1f4c9f2e-8f7f-4f7d-9d38-0a5b1c2d3e4f"`
}

type ErrorResponse struct {
	Error string `json:"error" example:"Chat ID and message are required"`
}

// requests---------------------

type StartChatRequest struct {
	AssetID string `json:"asset_id" validate:"required"`
}

type ChatMessageRequest struct {
	ChatID  string `json:"chat_id" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// responses--------------------

type StartChatResponse struct {
	ChatID string `json:"chat_id"`
}

type ChatMessageResponse struct {
	Response string `json:"response"`
}

type HistoryResponse struct {
	History []chatModel.HistoryEntry `json:"history"`
}
