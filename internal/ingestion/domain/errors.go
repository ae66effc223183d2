package ingestion

import (
	"fmt"
	"strings"
)

// DecodeError reports an upload that could not be turned into a grid.
type DecodeError struct {
	Kind      Kind
	Encodings []string
	Err       error
}

func (e *DecodeError) Error() string {
	var b strings.Builder
	b.WriteString("decode")
	if e.Kind != "" {
		fmt.Fprintf(&b, " %s", e.Kind)
	}
	if len(e.Encodings) > 0 {
		fmt.Fprintf(&b, ": no usable text encoding (tried %s)", strings.Join(e.Encodings, ", "))
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *DecodeError) Unwrap() error { return e.Err }

// SectionNotFoundError reports a required section marker absent from the grid.
type SectionNotFoundError struct {
	Marker string
}

func (e *SectionNotFoundError) Error() string {
	return fmt.Sprintf("section %q not found", e.Marker)
}

// MissingColumnsError lists every required column absent from a section header.
type MissingColumnsError struct {
	Section string
	Fields  []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("section %q is missing required columns: %s", e.Section, strings.Join(e.Fields, ", "))
}

// NoUsableDataError reports readings that cannot support a simulation.
type NoUsableDataError struct {
	Reason string
}

func (e *NoUsableDataError) Error() string {
	if e.Reason == "" {
		return "no usable consumption data"
	}
	return "no usable consumption data: " + e.Reason
}
