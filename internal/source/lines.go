package source

import "strings"

// ParseLines reads one row per line. "# " starts a header, a leading "~"
// disables the row, and "value<TAB>label" sets a label. Blank lines are
// skipped.
func ParseLines(text string) []Row {
	var (
		rows  []Row
		group string
	)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if strings.HasPrefix(line, "# ") {
			group = strings.TrimSpace(strings.TrimPrefix(line, "# "))
			rows = append(rows, Row{Value: group, Label: group, Header: true})
			continue
		}
		row := Row{Group: group}
		if strings.HasPrefix(line, "~") {
			row.Disabled = true
			line = strings.TrimPrefix(line, "~")
		}
		value, label, _ := strings.Cut(line, "\t")
		row.Value = strings.TrimSpace(value)
		row.Label = strings.TrimSpace(label)
		rows = append(rows, row)
	}
	return rows
}
