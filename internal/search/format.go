// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/teaching-team/pkg/types"
)

// FormatTable writes records as a human-readable table to w.
func FormatTable(records []types.SearchRecord, w io.Writer) {
	if types.SearchFailed(records) {
		fmt.Fprintln(w, records[0].Error)
		return
	}
	if len(records) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-50s  %s\n", "Rank", "Title", "Link")
	fmt.Fprintln(w, strings.Repeat("-", 100))
	for i, r := range records {
		fmt.Fprintf(w, "%-4d  %-50s  %s\n", i+1, truncate(r.Title, 50), r.Link)
		if r.Snippet != "" {
			fmt.Fprintf(w, "      %s\n", truncate(r.Snippet, 94))
		}
	}
	fmt.Fprintf(w, "\n%d results\n", len(records))
}

// FormatJSON writes records as indented JSON to w.
func FormatJSON(records []types.SearchRecord, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// truncate shortens s to at most max runes, marking the cut with "...".
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
