package decoder

import (
	"errors"
	"mime"
	"path/filepath"
	"strings"

	"tariff-simulator/internal/ingestion/domain"
)

// ErrUnsupportedKind is wrapped in a DecodeError when the declared kind is unknown.
var ErrUnsupportedKind = errors.New("decoder: unsupported kind")

// Decode turns an uploaded export into a grid. Cells are trimmed and fully
// empty rows dropped.
func Decode(data []byte, kind ingestion.Kind) (ingestion.Grid, error) {
	switch kind {
	case ingestion.KindDelimitedText:
		rows, err := decodeText(data)
		if err != nil {
			return nil, err
		}
		return ingestion.NewGrid(rows), nil
	case ingestion.KindSpreadsheet:
		rows, err := decodeSpreadsheet(data)
		if err != nil {
			return nil, err
		}
		return ingestion.NewGrid(rows), nil
	default:
		return nil, &ingestion.DecodeError{Kind: kind, Err: ErrUnsupportedKind}
	}
}

// KindFromUpload infers the declared kind from a content type, falling back to
// the file extension. ok is false when neither is recognised.
func KindFromUpload(filename, contentType string) (ingestion.Kind, bool) {
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		switch mediaType {
		case "text/csv", "text/plain", "application/csv":
			return ingestion.KindDelimitedText, true
		case "application/vnd.ms-excel",
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":
			return ingestion.KindSpreadsheet, true
		}
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".txt":
		return ingestion.KindDelimitedText, true
	case ".xlsx", ".xlsm", ".xls":
		return ingestion.KindSpreadsheet, true
	}
	return "", false
}
