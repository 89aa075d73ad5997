package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"
)

// Table provides a simple table formatter.
type Table struct {
	w       *tabwriter.Writer
	headers []string
}

// NewTable creates a new table with the given headers.
func NewTable(headers ...string) *Table {
	return NewTableWriter(os.Stdout, headers...)
}

// NewTableWriter creates a table writing to a specific writer.
func NewTableWriter(out io.Writer, headers ...string) *Table {
	t := &Table{
		w:       tabwriter.NewWriter(out, 0, 0, 2, ' ', 0),
		headers: headers,
	}
	if len(headers) > 0 {
		_, _ = t.w.Write([]byte(strings.Join(headers, "\t") + "\n"))
	}
	return t
}

// Row adds a row to the table.
func (t *Table) Row(values ...string) {
	_, _ = t.w.Write([]byte(strings.Join(values, "\t") + "\n"))
}

// Flush writes the table output.
func (t *Table) Flush() {
	_ = t.w.Flush()
}

// StatusIcon marks an enabled flag in plain table output.
func StatusIcon(on bool) string {
	if on {
		return "●"
	}
	return "○"
}

// LikeIcon marks liked tracks in plain table output.
func LikeIcon(liked bool) string {
	if liked {
		return "♥"
	}
	return " "
}

// TruncateString shortens s to maxLen runes, ending in "..." when cut.
func TruncateString(s string, maxLen int) string {
	r := []rune(s)
	switch {
	case len(r) <= maxLen:
		return s
	case maxLen <= 3:
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

// FormatDuration renders d as m:ss, or h:mm:ss past an hour. Sub-second
// remainders are dropped.
func FormatDuration(d time.Duration) string {
	secs := max(int(d/time.Second), 0)
	if secs >= 3600 {
		return fmt.Sprintf("%d:%02d:%02d", secs/3600, secs%3600/60, secs%60)
	}
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// FormatProgress draws a width-cell bar for current out of total.
func FormatProgress(current, total time.Duration, width int) string {
	filled := 0
	if total > 0 {
		filled = min(max(int(float64(width)*float64(current)/float64(total)), 0), width)
	}
	return strings.Repeat("━", filled) + strings.Repeat("─", width-filled)
}
