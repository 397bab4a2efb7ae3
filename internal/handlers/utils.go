package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/dkasturi/docuchat/internal/api"
	"github.com/dkasturi/docuchat/internal/config"
	"github.com/dkasturi/docuchat/internal/domain/commonModels"
)

func writeJsonResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but can't send a clean status code now
		logDH.Error("Error encoding response", "error", err)
	}
}

func WriteErrorResponse(w http.ResponseWriter, httpCode int, message string) {
	writeJsonResponse(w, httpCode, api.ErrorResponse{Error: message})
}

// statusFromError maps the shared error taxonomy onto HTTP codes.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, commonModels.ErrInvalidArgument),
		errors.Is(err, commonModels.ErrDecode),
		errors.Is(err, commonModels.ErrMalformedDocument):
		return http.StatusBadRequest
	case errors.Is(err, commonModels.ErrNotFound):
		return http.StatusNotFound
	default:
		// includes ErrEncoding: embedding failures are server-side, not retried
		return http.StatusInternalServerError
	}
}

func validateContext(ctx context.Context) bool {
	if ctx.Err() != nil {
		logDH.Warn("context error", "error", ctx.Err())
		return false
	}

	select {
	case <-ctx.Done():
		logDH.Warn("context cancelled")
		return false
	default:
		return true

	}
}

// readUploadedFile pulls the multipart "file" field fully into memory.
func readUploadedFile(r *http.Request) (string, []byte, error) {
	if err := r.ParseMultipartForm(config.MaxUploadSize); err != nil {
		return "", nil, err
	}

	fileReader, fileMetadata, err := r.FormFile("file")
	if err != nil {
		return "", nil, err
	}
	defer closeUpload(fileReader)

	data, err := io.ReadAll(fileReader)
	if err != nil {
		return "", nil, err
	}
	return fileMetadata.Filename, data, nil
}

func closeUpload(f multipart.File) {
	if err := f.Close(); err != nil {
		logDH.Error("Couldn't close the upload reader", "error", err)
	}
}
