package history

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FormatStatus returns a human-readable summary of the database location
// and its aggregate stats.
func FormatStatus(path string, s Stats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Database: %s\n", path)
	fmt.Fprintf(&b, "Counts recorded: %d\n", s.Count)
	fmt.Fprintf(&b, "Tokens counted: %d\n", s.TotalTokens)
	fmt.Fprintf(&b, "Largest count: %d\n", s.MaxTokens)
	return b.String()
}

// FormatList returns a formatted table of records. Returns
// "No counts recorded.\n" if the slice is empty.
func FormatList(records []Record) string {
	if len(records) == 0 {
		return "No counts recorded.\n"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%-10s %-24s %-12s %8s %8s %-6s %-22s\n", "ID", "MODEL", "ENCODING", "TOKENS", "CHARS", "SOURCE", "CREATED")
	for _, r := range records {
		id := r.ID
		if len(id) > 8 {
			id = id[:8]
		}
		fmt.Fprintf(&b, "%-10s %-24s %-12s %8d %8d %-6s %-22s\n", id, r.Model, r.Encoding, r.Tokens, r.Chars, r.Source, r.CreatedAt)
	}
	return b.String()
}

// FormatListJSON returns the records as indented JSON.
func FormatListJSON(records []Record) (string, error) {
	if records == nil {
		records = []Record{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return "", fmt.Errorf("history: json marshal: %w", err)
	}
	return string(data), nil
}
