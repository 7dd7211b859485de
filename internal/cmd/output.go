package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/mrlokans/bookfinder/internal/entities"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeBooks prints books as a table; starred ids get a marker column.
func writeBooks(w io.Writer, books []entities.Book, starred map[string]bool) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\tID\tTITLE\tAUTHORS")
	for _, b := range books {
		mark := ""
		if starred[b.ID] {
			mark = "★"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", mark, b.ID, truncate(b.Title, 50), truncate(b.AuthorsLine(), 40))
	}
	return tw.Flush()
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}
