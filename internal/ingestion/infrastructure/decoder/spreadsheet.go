package decoder

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"

	"tariff-simulator/internal/ingestion/domain"
)

var errNoSheets = errors.New("workbook has no sheets")

// decodeSpreadsheet reads the first sheet. Raw cell values are kept so dates
// arrive as serial numbers and numbers are not rendered through cell formats.
// Legacy BIFF (.xls) workbooks are rejected by excelize.
func decodeSpreadsheet(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, &ingestion.DecodeError{Kind: ingestion.KindSpreadsheet, Err: fmt.Errorf("open workbook: %w", err)}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &ingestion.DecodeError{Kind: ingestion.KindSpreadsheet, Err: errNoSheets}
	}
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &ingestion.DecodeError{Kind: ingestion.KindSpreadsheet, Err: fmt.Errorf("read rows from sheet %s: %w", sheets[0], err)}
	}
	return rows, nil
}
