package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"

	bindist "github.com/bindist/bindist-go"
)

// statusf prints a status message to stderr unless quiet mode is set.
func statusf(format string, args ...any) {
	if !flagQuiet {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}

// stderrIsTerminal reports whether stderr is attached to a terminal.
// Transfer progress lines are suppressed when output is redirected.
func stderrIsTerminal() bool {
	fd := os.Stderr.Fd()

	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Size unit constants for human-readable formatting.
const (
	sizeKB = 1024
	sizeMB = 1024 * 1024
	sizeGB = 1024 * 1024 * 1024
	sizeTB = 1024 * 1024 * 1024 * 1024
)

// formatSize returns a human-readable size string (e.g. "1.2 MB").
func formatSize(bytes int64) string {
	switch {
	case bytes >= sizeTB:
		return fmt.Sprintf("%.1f TB", float64(bytes)/float64(sizeTB))
	case bytes >= sizeGB:
		return fmt.Sprintf("%.1f GB", float64(bytes)/float64(sizeGB))
	case bytes >= sizeMB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(sizeMB))
	case bytes >= sizeKB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(sizeKB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// formatTime returns a compact timestamp for display.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}

	now := time.Now()

	// Same calendar year: show "Jan  2 15:04"
	if t.Year() == now.Year() {
		return t.Format("Jan _2 15:04")
	}

	// Different year: show "Jan  2  2006"
	return t.Format("Jan _2  2006")
}

// printTable writes aligned columns to the given writer.
// headers and each row must have the same length.
func printTable(w io.Writer, headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}

	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	printRow(w, headers, widths)

	for _, row := range rows {
		printRow(w, row, widths)
	}
}

// printRow writes a single padded row.
func printRow(w io.Writer, cells []string, widths []int) {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		parts[i] = fmt.Sprintf("%-*s", widths[i], cell)
	}

	fmt.Fprintln(w, strings.Join(parts, "  "))
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}

// renderResult prints a successful envelope's data object and converts an
// API failure into a command error. With --json the whole envelope is
// printed instead, and failures still exit non-zero.
func renderResult(res *bindist.Result) error {
	if flagJSON {
		if err := printJSON(envelopeJSON(res)); err != nil {
			return err
		}

		if !res.Success {
			return apiFailure(res)
		}

		return nil
	}

	if !res.Success {
		return apiFailure(res)
	}

	return printJSON(res.Data)
}

// envelopeJSON reshapes a Result for --json output.
func envelopeJSON(res *bindist.Result) map[string]any {
	out := map[string]any{
		"success": res.Success,
		"status":  res.StatusCode,
	}

	if res.Data != nil {
		out["data"] = res.Data
	}

	if res.Error != nil {
		out["error"] = res.Error
	}

	if res.Meta != nil {
		out["meta"] = res.Meta
	}

	return out
}

// apiFailure converts a failed envelope into a command error.
func apiFailure(res *bindist.Result) error {
	msg := res.ErrorMessage()
	if msg == "" {
		msg = "request failed"
	}

	return fmt.Errorf("API error (HTTP %d): %s", res.StatusCode, msg)
}
