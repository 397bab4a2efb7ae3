package handlers

import (
	"net/http"
	"sync"

	"github.com/dkasturi/docuchat/internal/api"
	"github.com/dkasturi/docuchat/internal/chat"
	"github.com/dkasturi/docuchat/internal/ingest"
	"github.com/dkasturi/docuchat/pkg/logger_i"
)

var (
	handlerInstance *serviceHandler //private singleton
	once            sync.Once
	logDH           *logger_i.Logger
	logCH           *logger_i.Logger
)

type serviceHandler struct {
	ingest   ingest.Service
	sessions chat.Manager
	pipeline chat.Pipeline
}

func InitHandlers(ingestService ingest.Service, sessions chat.Manager, pipeline chat.Pipeline) {
	once.Do(func() {
		handlerInstance = &serviceHandler{
			ingest:   ingestService,
			sessions: sessions,
			pipeline: pipeline,
		}

		logDH = logger_i.NewLogger("DocumentHandler")
		logCH = logger_i.NewLogger("ChatHandler")
		logDH.Info("Handlers initialized")
	})
}

// the upload form the index route serves alongside the POST contract;
// real templating is out of scope for this service
const indexPage = `<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>docuchat</title></head>
<body>
<h1>docuchat</h1>
<form method="post" enctype="multipart/form-data">
<input type="file" name="file" accept=".txt,.pdf">
<button type="submit">Upload</button>
</form>
</body>
</html>`

func IndexPageHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(indexPage)); err != nil {
		logDH.Error("Error writing index page", "error", err)
	}
}

// UploadHandler godoc
// @Summary      Upload a document
// @Description  Accepts a .txt or .pdf file, extracts its text and stores it as a new asset.
// @Tags         Documents
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "The document to ingest"
// @Success      200   {object}  api.UploadResponse
// @Failure      400   {object}  api.ErrorResponse  "Unsupported file type or bad payload"
// @Router       / [post]
func UploadHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logDH.Warn("Invalid Context by request ", "remoteAddr", r.RemoteAddr)
		return
	}

	filename, data, err := readUploadedFile(r)
	if err != nil || filename == "" {
		// the browser form flow: bounce back to the upload page
		logDH.Warn("Upload without a usable file", "error", err)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	assetId, err := handlerInstance.ingest.ProcessUpload(r.Context(), filename, data, ingest.ModeText)
	if err != nil {
		WriteErrorResponse(w, statusFromError(err), err.Error())
		return
	}
	writeJsonResponse(w, http.StatusOK, api.UploadResponse{AssetID: assetId})
}

// ProcessDocumentHandler godoc
// @Summary      Process a document into an embedding asset
// @Description  Accepts a .txt or .pdf file, extracts its text, embeds it and stores the embedding as a new asset.
// @Tags         Documents
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "The document to process"
// @Success      200   {object}  api.UploadResponse
// @Failure      400   {object}  api.ErrorResponse  "Missing file or unsupported file type"
// @Failure      500   {object}  api.ErrorResponse  "Embedding failure"
// @Router       /api/documents/process [post]
func ProcessDocumentHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logDH.Warn("Invalid Context by request ", "remoteAddr", r.RemoteAddr)
		return
	}

	filename, data, err := readUploadedFile(r)
	if err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "No file provided")
		return
	}

	assetId, err := handlerInstance.ingest.ProcessUpload(r.Context(), filename, data, ingest.ModeEmbedding)
	if err != nil {
		WriteErrorResponse(w, statusFromError(err), err.Error())
		return
	}
	writeJsonResponse(w, http.StatusOK, api.UploadResponse{AssetID: assetId})
}
