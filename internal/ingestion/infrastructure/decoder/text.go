package decoder

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"tariff-simulator/internal/ingestion/domain"
)

const delimiter = ';'

var errNoDelimiter = errors.New("no semicolon-delimited content")

type textEncoding struct {
	name       string
	enc        encoding.Encoding
	singleByte bool
}

// Tried in order; the first strict decode holding a delimiter wins.
var textEncodings = []textEncoding{
	{name: "UTF-8", enc: unicode.UTF8BOM},
	{name: "ISO-8859-1", enc: charmap.ISO8859_1, singleByte: true},
	{name: "Windows-1252", enc: charmap.Windows1252, singleByte: true},
}

func decodeText(data []byte) ([][]string, error) {
	tried := make([]string, 0, len(textEncodings))
	for _, candidate := range textEncodings {
		tried = append(tried, candidate.name)
		text, ok := decodeStrict(data, candidate)
		if !ok || !strings.ContainsRune(text, delimiter) {
			continue
		}
		rows, err := readDelimited(text)
		if err != nil {
			return nil, &ingestion.DecodeError{Kind: ingestion.KindDelimitedText, Encodings: tried, Err: err}
		}
		return rows, nil
	}
	return nil, &ingestion.DecodeError{Kind: ingestion.KindDelimitedText, Encodings: tried, Err: errNoDelimiter}
}

func decodeStrict(data []byte, candidate textEncoding) (string, bool) {
	if !candidate.singleByte {
		// Invalid UTF-8 is replaced, not rejected, by the x/text decoder.
		if !utf8.Valid(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))) {
			return "", false
		}
	}
	out, _, err := transform.Bytes(candidate.enc.NewDecoder(), data)
	if err != nil {
		return "", false
	}
	text := string(out)
	for _, r := range text {
		if r == utf8.RuneError {
			return "", false
		}
		if candidate.singleByte && r >= 0x80 && r <= 0x9f {
			return "", false
		}
	}
	return text, true
}

func readDelimited(text string) ([][]string, error) {
	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	var rows [][]string
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", line, err)
		}
		for i, cell := range record {
			record[i] = strings.Trim(strings.TrimSpace(cell), `"`)
		}
		rows = append(rows, record)
	}
	return rows, nil
}
