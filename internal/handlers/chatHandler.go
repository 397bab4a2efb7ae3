package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dkasturi/docuchat/internal/api"
	"github.com/dkasturi/docuchat/internal/domain/commonModels"
)

// StartChatHandler godoc
// @Summary      Start a chat session
// @Description  Binds a new chat id to an asset id. The asset is not required to exist yet.
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Param        request  body      api.StartChatRequest  true  "Asset ID to chat about"
// @Success      200      {object}  api.StartChatResponse
// @Failure      400      {object}  api.ErrorResponse  "Missing asset id"
// @Router       /api/chat/start [post]
func StartChatHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logCH.Warn("Invalid Context by request ", "remoteAddr", r.RemoteAddr)
		return
	}

	var requestData api.StartChatRequest
	decodeBody(r, &requestData)

	chatId, err := handlerInstance.sessions.Start(r.Context(), requestData.AssetID)
	if err != nil {
		logCH.Warn("Bad chat start request", "error", err)
		WriteErrorResponse(w, statusFromError(err), startErrorMessage(err))
		return
	}
	writeJsonResponse(w, http.StatusOK, api.StartChatResponse{ChatID: chatId})
}

// ChatMessageHandler godoc
// @Summary      Send a chat message
// @Description  Computes a reply for the message, appends the exchange to the session history and returns the reply.
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Param        request  body      api.ChatMessageRequest  true  "Chat ID and message"
// @Success      200      {object}  api.ChatMessageResponse
// @Failure      400      {object}  api.ErrorResponse  "Missing chat id or message"
// @Failure      404      {object}  api.ErrorResponse  "Unknown chat id"
// @Router       /api/chat/message [post]
func ChatMessageHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logCH.Warn("Invalid Context by request ", "remoteAddr", r.RemoteAddr)
		return
	}

	var requestData api.ChatMessageRequest
	decodeBody(r, &requestData)

	response, err := handlerInstance.pipeline.Message(r.Context(), requestData.ChatID, requestData.Message)
	if err != nil {
		logCH.Warn("Bad chat message request", "chatId", requestData.ChatID, "error", err)
		WriteErrorResponse(w, statusFromError(err), chatErrorMessage(err))
		return
	}
	writeJsonResponse(w, http.StatusOK, api.ChatMessageResponse{Response: response})
}

// ChatStreamHandler godoc
// @Summary      Stream a chat response
// @Description  Computes a reply and delivers it as an ordered server-sent event stream, one chunk per event. Validation failures arrive as a single JSON error event.
// @Tags         Chat
// @Accept       json
// @Produce      text/event-stream
// @Param        request  body  api.ChatMessageRequest  true  "Chat ID and message"
// @Success      200  {string}  string  "event stream of response chunks"
// @Router       /api/chat/stream [post]
func ChatStreamHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logCH.Warn("Invalid Context by request ", "remoteAddr", r.RemoteAddr)
		return
	}

	var requestData api.ChatMessageRequest
	decodeBody(r, &requestData)

	flusher, ok := w.(http.Flusher)
	if !ok {
		WriteErrorResponse(w, http.StatusInternalServerError, "Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	sentChunks := false
	err := handlerInstance.pipeline.Stream(r.Context(), requestData.ChatID, requestData.Message, func(chunk string) error {
		if r.Context().Err() != nil {
			return r.Context().Err()
		}
		if _, err := fmt.Fprintf(w, "data: %s\n\n", chunk); err != nil {
			return err
		}
		sentChunks = true
		flusher.Flush()
		return nil
	})
	if err != nil {
		logCH.Warn("Stream rejected", "chatId", requestData.ChatID, "error", err)
		// once content chunks went out the error event slot is gone; a late
		// failure only gets logged
		if sentChunks {
			return
		}
		// headers are committed, so the failure travels as an event
		payload, _ := json.Marshal(api.ErrorResponse{Error: chatErrorMessage(err)})
		fmt.Fprintf(w, "data: %s\n\n", payload)
		flusher.Flush()
	}
}

// ChatHistoryHandler godoc
// @Summary      Get chat history
// @Description  Returns the ordered user/bot exchanges recorded for a chat session.
// @Tags         Chat
// @Produce      json
// @Param        chat_id  query     string  true  "Chat ID"
// @Success      200      {object}  api.HistoryResponse
// @Failure      400      {object}  api.ErrorResponse  "Missing chat id"
// @Failure      404      {object}  api.ErrorResponse  "Unknown chat id"
// @Router       /api/chat/history [get]
func ChatHistoryHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logCH.Warn("Invalid Context by request ", "remoteAddr", r.RemoteAddr)
		return
	}

	chatId := r.URL.Query().Get("chat_id")
	if chatId == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "Chat ID is required")
		return
	}

	history, err := handlerInstance.sessions.History(r.Context(), chatId)
	if err != nil {
		WriteErrorResponse(w, statusFromError(err), chatErrorMessage(err))
		return
	}
	writeJsonResponse(w, http.StatusOK, api.HistoryResponse{History: history})
}

// decodeBody tolerates malformed bodies: the zero request then fails the
// handler's own field validation, same as absent fields would.
func decodeBody(r *http.Request, target interface{}) {
	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			logCH.Error("Couldn't close the request reader", "error", err)
		}
	}(r.Body)
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		logCH.Debug("Bad request body", "error", err)
	}
}

func startErrorMessage(err error) string {
	if errors.Is(err, commonModels.ErrInvalidArgument) {
		return "Asset ID is required"
	}
	return "Internal Server Error"
}

func chatErrorMessage(err error) string {
	switch {
	case errors.Is(err, commonModels.ErrInvalidArgument):
		return "Chat ID and message are required"
	case errors.Is(err, commonModels.ErrNotFound):
		return "Invalid Chat ID"
	default:
		return "Internal Server Error"
	}
}
