package extract

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dslipak/pdf"
	"github.com/lu4p/cat"

	"github.com/dkasturi/docuchat/internal/domain/commonModels"
	"github.com/dkasturi/docuchat/pkg/logger_i"
)

var logger = logger_i.NewLogger("Extract")

// extractPDF walks the pages in order and concatenates their text with no
// added separator, matching the renderer's page-by-page output.
func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		logger.Error("failed opening pdf payload", "error", err)
		return "", fmt.Errorf("%w: %v", commonModels.ErrMalformedDocument, err)
	}

	var text strings.Builder
	numPages := reader.NumPage()
	logger.Debug("extractPDF", "number of pages", numPages)
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		content, err := protectExtract(page)
		if err != nil {
			logger.Error("Error parsing page content", "page", i, "error", err)
			return "", fmt.Errorf("%w: page %d: %v", commonModels.ErrMalformedDocument, i, err)
		}
		text.WriteString(content)
	}
	return text.String(), nil
}

// extractOffice reads .odt, .docx or .rtf content via cat, which dispatches
// on the file extension, so the payload goes through a scratch file.
func extractOffice(data []byte, ext string) (string, error) {
	tempFile, err := os.CreateTemp("", "docuchat-*"+ext)
	if err != nil {
		return "", err
	}
	tempPath := tempFile.Name()
	defer os.Remove(tempPath)

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		return "", err
	}
	if err := tempFile.Close(); err != nil {
		return "", err
	}

	text, err := cat.File(tempPath)
	if err != nil {
		logger.Error("Error extracting content from doc", "ext", filepath.Ext(tempPath), "error", err)
		return "", fmt.Errorf("%w: %v", commonModels.ErrMalformedDocument, err)
	}
	return strings.TrimSpace(text), nil
}

// protectExtract keeps a single bad page from stalling or crashing the
// whole extraction.
func protectExtract(page pdf.Page) (content string, err error) {
	type result struct {
		content string
		err     error
	}
	resChan := make(chan result, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				resChan <- result{"", fmt.Errorf("page extraction panicked: %v", r)}
			}
		}()
		content, err := page.GetPlainText(nil)
		resChan <- result{content, err}
	}()
	select {
	case r := <-resChan:
		return r.content, r.err
	case <-time.After(time.Second * 10):
		logger.Error("pageExtract", "timeout", true)
		return "", errors.New("timeout")
	}
}
