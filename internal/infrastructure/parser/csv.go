// Package parser loads the shop's catalog and slug exports. The exports come
// from a spreadsheet tool whose quoting is close to RFC 4180 but does not
// double embedded quotes, so the tokenizer here is deliberately lenient
// instead of using encoding/csv.
package parser

import "strings"

// ParseLine splits one export line on commas, keeping text inside a pair of
// double quotes literal (embedded commas included). Escaped quotes ("") are
// not handled; the exports never produce them. An unbalanced quote never
// fails: the rest of the line is treated as still quoted and whatever was
// accumulated is returned. Every field is trimmed.
func ParseLine(line string) []string {
	var fields []string
	var current strings.Builder
	inQuotes := false

	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	fields = append(fields, strings.TrimSpace(current.String()))
	return fields
}
