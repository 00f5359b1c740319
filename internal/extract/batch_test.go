// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdf-extract/pkg/types"
)

// selectiveSource returns different pages per file path.
type selectiveSource struct {
	pages  map[string][]PageText
	errors map[string]error
}

func (s *selectiveSource) Name() types.Backend { return "fake" }

func (s *selectiveSource) Pages(ctx context.Context, path string) ([]PageText, error) {
	if err, ok := s.errors[path]; ok {
		return nil, err
	}
	if p, ok := s.pages[path]; ok {
		return p, nil
	}
	return nil, errors.New("unexpected path: " + path)
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, filepath.Join("text", "report.txt"), OutputPath("/data/raw/report.pdf", "text"))
	assert.Equal(t, filepath.Join("out", "Untitled presentation.txt"), OutputPath("Untitled presentation.pdf", "out"))
}

func TestExtractFile(t *testing.T) {
	tests := []struct {
		name       string
		source     PageSource
		preCreate  bool
		wantStatus types.ExtractionStatus
		wantLog    string
	}{
		{
			name:       "successful extraction",
			source:     &fakeSource{pages: []PageText{{Text: "Hello"}}},
			wantStatus: types.ExtractionDone,
			wantLog:    "extracted:",
		},
		{
			name:       "skip existing text",
			source:     &fakeSource{pages: []PageText{{Text: "should not be used"}}},
			preCreate:  true,
			wantStatus: types.ExtractionSkipped,
			wantLog:    "skipped:",
		},
		{
			name:       "backend failure",
			source:     &fakeSource{err: errors.New("parser crashed")},
			wantStatus: types.ExtractionFailed,
			wantLog:    "failed:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			pdfPath := touchPDF(t, tmpDir, "paper.pdf")
			outDir := filepath.Join(tmpDir, "text")

			if tt.preCreate {
				require.NoError(t, os.MkdirAll(outDir, 0o755))
				require.NoError(t, os.WriteFile(filepath.Join(outDir, "paper.txt"), []byte("existing"), 0o644))
			}

			var log bytes.Buffer
			status := ExtractFile(context.Background(), tt.source, pdfPath, outDir, Options{}, &log)

			assert.Equal(t, tt.wantStatus, status)
			assert.Contains(t, log.String(), tt.wantLog)
		})
	}
}

func TestExtractFile_WritesRenderedText(t *testing.T) {
	tmpDir := t.TempDir()
	pdfPath := touchPDF(t, tmpDir, "paper.pdf")
	outDir := filepath.Join(tmpDir, "text")
	src := &fakeSource{pages: []PageText{{Text: "Hello"}, {Text: ""}, {Text: "World"}}}

	var log bytes.Buffer
	status := ExtractFile(context.Background(), src, pdfPath, outDir, Options{}, &log)
	require.Equal(t, types.ExtractionDone, status)

	data, err := os.ReadFile(filepath.Join(outDir, "paper.txt"))
	require.NoError(t, err)
	assert.Equal(t, "--- PAGE 1 ---\nHello\n\n--- PAGE 2 ---\n\n\n--- PAGE 3 ---\nWorld\n", string(data))
	assert.Contains(t, log.String(), "(3 pages)")
}

func TestExtractFile_MissingPDF(t *testing.T) {
	tmpDir := t.TempDir()
	outDir := filepath.Join(tmpDir, "text")

	var log bytes.Buffer
	status := ExtractFile(context.Background(), &fakeSource{}, filepath.Join(tmpDir, "gone.pdf"), outDir, Options{}, &log)

	assert.Equal(t, types.ExtractionFailed, status)
	assert.Contains(t, log.String(), "PDF not found at")
	assert.NoFileExists(t, filepath.Join(outDir, "gone.txt"))
}

func TestExtractBatch(t *testing.T) {
	tmpDir := t.TempDir()
	rawDir := filepath.Join(tmpDir, "raw")
	require.NoError(t, os.MkdirAll(rawDir, 0o755))

	var paths []string
	for _, name := range []string{"a.pdf", "b.pdf", "c.pdf"} {
		paths = append(paths, touchPDF(t, rawDir, name))
	}

	// Pre-create output for "b" to trigger skip.
	outDir := filepath.Join(tmpDir, "text")
	require.NoError(t, os.MkdirAll(outDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(outDir, "b.txt"), []byte("existing"), 0o644))

	src := &selectiveSource{
		pages: map[string][]PageText{
			paths[0]: {{Text: "A"}},
			paths[1]: {{Text: "B"}},
		},
		errors: map[string]error{
			paths[2]: errors.New("bad pdf"),
		},
	}

	var log bytes.Buffer
	result := ExtractBatch(context.Background(), src, paths, outDir, Options{}, &log)

	assert.Equal(t, 1, result.Extracted)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 1, result.Failed)
	assert.True(t, result.HasFailures())
	assert.Equal(t, 3, result.Total())
	assert.Contains(t, log.String(), "Batch summary: 1 extracted, 1 skipped, 1 failed (total: 3)")
}

func TestExtractBatch_NameCollision(t *testing.T) {
	tmpDir := t.TempDir()
	for _, d := range []string{"a", "b"} {
		require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, d), 0o755))
	}
	first := touchPDF(t, filepath.Join(tmpDir, "a"), "x.pdf")
	second := touchPDF(t, filepath.Join(tmpDir, "b"), "x.pdf")
	outDir := filepath.Join(tmpDir, "text")

	src := &selectiveSource{pages: map[string][]PageText{
		first:  {{Text: "One"}},
		second: {{Text: "Two"}},
	}}

	var log bytes.Buffer
	result := ExtractBatch(context.Background(), src, []string{first, second}, outDir, Options{}, &log)

	assert.Equal(t, 1, result.Extracted)
	assert.Equal(t, 0, result.Skipped)
	assert.Equal(t, 1, result.Failed)
	assert.Contains(t, log.String(), "failed:    x.txt (name collision with "+first+")")

	data, err := os.ReadFile(filepath.Join(outDir, "x.txt"))
	require.NoError(t, err)
	assert.Equal(t, "--- PAGE 1 ---\nOne\n", string(data))
}

func TestExtractBatch_Cancelled(t *testing.T) {
	tmpDir := t.TempDir()
	path := touchPDF(t, tmpDir, "a.pdf")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var log bytes.Buffer
	result := ExtractBatch(ctx, &fakeSource{pages: []PageText{{Text: "A"}}}, []string{path}, filepath.Join(tmpDir, "text"), Options{}, &log)

	assert.Equal(t, 0, result.Total())
	assert.False(t, result.HasFailures())
}
