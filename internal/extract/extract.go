package extract

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/dkasturi/docuchat/internal/domain/commonModels"
)

type Format string

const (
	FormatPlain     Format = "plain"
	FormatPaginated Format = "paginated-document"
	FormatDocx      Format = "docx"
	FormatRtf       Format = "rtf"
	FormatOdt       Format = "odt"
	FormatErr       Format = "unsupported"
)

// FormatFor routes by filename extension only, no content sniffing.
func FormatFor(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt":
		return FormatPlain
	case ".pdf":
		return FormatPaginated
	case ".docx":
		return FormatDocx
	case ".rtf":
		return FormatRtf
	case ".odt":
		return FormatOdt
	default:
		return FormatErr
	}
}

// Extract converts an uploaded payload into one normalized string.
func Extract(data []byte, format Format) (string, error) {
	switch format {
	case FormatPlain:
		return extractPlain(data)
	case FormatPaginated:
		return extractPDF(data)
	case FormatDocx, FormatRtf, FormatOdt:
		return extractOffice(data, "."+string(format))
	default:
		return "", fmt.Errorf("%w: unsupported file type", commonModels.ErrInvalidArgument)
	}
}

func extractPlain(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: payload is not valid UTF-8", commonModels.ErrDecode)
	}
	return strings.TrimSpace(string(data)), nil
}
