package main

import (
	"bytes"
	"io"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bindist "github.com/bindist/bindist-go"
)

func TestFormatSize(t *testing.T) {
	tests := []struct {
		name  string
		bytes int64
		want  string
	}{
		{"bytes", 512, "512 B"},
		{"zero", 0, "0 B"},
		{"kilobytes", 2048, "2.0 KB"},
		{"megabytes", 5 * 1024 * 1024, "5.0 MB"},
		{"fractional megabytes", 1536 * 1024, "1.5 MB"},
		{"gigabytes", 3 * 1024 * 1024 * 1024, "3.0 GB"},
		{"terabytes", 2 * 1024 * 1024 * 1024 * 1024, "2.0 TB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatSize(tt.bytes))
		})
	}
}

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "-", formatTime(time.Time{}))

	sameYear := time.Date(time.Now().Year(), time.March, 5, 14, 30, 0, 0, time.UTC)
	assert.Equal(t, "Mar  5 14:30", formatTime(sameYear))

	otherYear := time.Date(2019, time.March, 5, 14, 30, 0, 0, time.UTC)
	assert.Equal(t, "Mar  5  2019", formatTime(otherYear))
}

func TestPrintTable_Alignment(t *testing.T) {
	var buf bytes.Buffer

	printTable(&buf, []string{"NAME", "SIZE"}, [][]string{
		{"short", "1.0 KB"},
		{"a-much-longer-name", "12 B"},
	})

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 3)

	// All SIZE cells start at the same column.
	headerIdx := bytes.Index(lines[0], []byte("SIZE"))
	require.Positive(t, headerIdx)
	assert.Equal(t, headerIdx, bytes.Index(lines[1], []byte("1.0 KB")))
	assert.Equal(t, headerIdx, bytes.Index(lines[2], []byte("12 B")))
}

// captureStdout redirects os.Stdout to a pipe and returns what fn wrote.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)

	os.Stdout = w

	t.Cleanup(func() { os.Stdout = old })

	fn()
	w.Close()

	out, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(out)
}

func TestRenderResult_SuccessPrintsData(t *testing.T) {
	oldJSON := flagJSON
	t.Cleanup(func() { flagJSON = oldJSON })

	flagJSON = false

	res := &bindist.Result{
		Success:    true,
		StatusCode: 200,
		Data:       map[string]any{"version": "1.2.3"},
		Meta:       map[string]any{"page": float64(1)},
	}

	var renderErr error

	out := captureStdout(t, func() {
		renderErr = renderResult(res)
	})

	require.NoError(t, renderErr)
	assert.Contains(t, out, `"version": "1.2.3"`)
	// Data only; meta belongs to --json output.
	assert.NotContains(t, out, "page")
}

func TestRenderResult_FailureIsError(t *testing.T) {
	oldJSON := flagJSON
	t.Cleanup(func() { flagJSON = oldJSON })

	flagJSON = false

	res := &bindist.Result{
		Success:    false,
		StatusCode: 404,
		Error:      map[string]any{"message": "version not found"},
	}

	var renderErr error

	out := captureStdout(t, func() {
		renderErr = renderResult(res)
	})

	require.Error(t, renderErr)
	assert.Contains(t, renderErr.Error(), "version not found")
	assert.Contains(t, renderErr.Error(), "404")
	assert.Empty(t, out)
}

func TestRenderResult_JSONPrintsWholeEnvelope(t *testing.T) {
	oldJSON := flagJSON
	t.Cleanup(func() { flagJSON = oldJSON })

	flagJSON = true

	res := &bindist.Result{
		Success:    true,
		StatusCode: 200,
		Data:       map[string]any{"version": "1.2.3"},
		Meta:       map[string]any{"page": float64(2)},
	}

	var renderErr error

	out := captureStdout(t, func() {
		renderErr = renderResult(res)
	})

	require.NoError(t, renderErr)
	assert.Contains(t, out, `"success": true`)
	assert.Contains(t, out, `"version": "1.2.3"`)
	assert.Contains(t, out, `"page": 2`)
}

func TestRenderResult_JSONFailureStillErrors(t *testing.T) {
	oldJSON := flagJSON
	t.Cleanup(func() { flagJSON = oldJSON })

	flagJSON = true

	res := &bindist.Result{
		Success:    false,
		StatusCode: 403,
		Error:      map[string]any{"message": "forbidden"},
	}

	var renderErr error

	out := captureStdout(t, func() {
		renderErr = renderResult(res)
	})

	require.Error(t, renderErr)
	// The envelope is still printed for scripts before the error exit.
	assert.Contains(t, out, `"success": false`)
	assert.Contains(t, out, "forbidden")
}

func TestApiFailure_FallbackMessage(t *testing.T) {
	res := &bindist.Result{Success: false, StatusCode: 500}

	err := apiFailure(res)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "request failed")
	assert.Contains(t, err.Error(), "500")
}

func TestEnvelopeJSON_OmitsAbsentSections(t *testing.T) {
	res := &bindist.Result{Success: true, StatusCode: 200}

	out := envelopeJSON(res)

	assert.Equal(t, true, out["success"])
	assert.Equal(t, 200, out["status"])
	assert.NotContains(t, out, "data")
	assert.NotContains(t, out, "error")
	assert.NotContains(t, out, "meta")
}
