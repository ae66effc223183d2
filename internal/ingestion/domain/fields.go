package ingestion

import "strings"

// FieldSpec binds a semantic field to the header text that carries it.
type FieldSpec struct {
	Name     string
	Header   string
	Required bool
}

// FieldMap maps semantic field names to column indexes of one section.
type FieldMap map[string]int

// Column returns the column index of field, or -1 when it was not resolved.
func (m FieldMap) Column(field string) int {
	if idx, ok := m[field]; ok {
		return idx
	}
	return -1
}

// ResolveFields matches specs against the header cells of a section. Header
// matching is exact and case-sensitive after trimming. Every unresolved
// required field is reported, not just the first.
func ResolveFields(section Section, header []string, specs []FieldSpec) (FieldMap, error) {
	fields := make(FieldMap, len(specs))
	var missing []string
	for _, spec := range specs {
		idx := headerIndex(header, spec.Header)
		if idx < 0 {
			if spec.Required {
				missing = append(missing, spec.Name)
			}
			continue
		}
		fields[spec.Name] = idx
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Section: section.Marker, Fields: missing}
	}
	return fields, nil
}

func headerIndex(header []string, name string) int {
	want := strings.TrimSpace(name)
	for i, cell := range header {
		if strings.TrimSpace(cell) == want {
			return i
		}
	}
	return -1
}
