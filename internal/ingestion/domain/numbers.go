package ingestion

import (
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// ParseNumber reads a reading value written with a decimal comma or point.
// "1234,56", "1.234,56" and "1234.56" all yield 1234.56. Anything
// unparsable yields 0.
func ParseNumber(raw string) float64 {
	s := strings.TrimSpace(raw)
	s = strings.NewReplacer(" ", "", "\u00a0", "", "\u202f", "").Replace(s)
	if s == "" {
		return 0
	}
	comma := strings.LastIndex(s, ",")
	dot := strings.LastIndex(s, ".")
	switch {
	case comma >= 0 && dot >= 0 && comma > dot:
		// 1.234,56
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case comma >= 0 && dot >= 0:
		// 1,234.56
		s = strings.ReplaceAll(s, ",", "")
	case strings.Count(s, ",") > 1:
		// 1,234,567
		s = strings.ReplaceAll(s, ",", "")
	case comma >= 0:
		s = strings.Replace(s, ",", ".", 1)
	}
	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return value
}

var dateLayouts = []string{
	"2/1/2006",
	"2-1-2006",
	"2.1.2006",
	"2006-1-2",
	"2006/1/2",
}

var timeSuffixes = []string{"", " 15:04", " 15:04:05"}

// excel serial day numbers between 1950 and 2100
const (
	minExcelSerial = 18264
	maxExcelSerial = 73051
)

// ParseDate reads a reading date. Day-first layouts are tried before
// ISO ones; spreadsheet serial day numbers are accepted as well. The result
// is truncated to midnight UTC.
func ParseDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return midnight(t), true
	}
	for _, layout := range dateLayouts {
		for _, suffix := range timeSuffixes {
			if t, err := time.Parse(layout+suffix, s); err == nil {
				return midnight(t), true
			}
		}
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial >= minExcelSerial && serial <= maxExcelSerial {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err == nil {
			return midnight(t), true
		}
	}
	return time.Time{}, false
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
