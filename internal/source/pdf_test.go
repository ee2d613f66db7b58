package source

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/bracketscan/internal/bracket"
)

// writePDF stores a PDF with blank 200x100pt pages
func writePDF(t *testing.T, path string, pages int) {
	t.Helper()

	kids := make([]string, pages)
	for i := range kids {
		kids[i] = fmt.Sprintf("%d 0 R", i+3)
	}
	objs := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), pages),
	}
	for i := 0; i < pages; i++ {
		objs = append(objs, "<< /Type /Page /Parent 2 0 R /MediaBox [0 0 200 100] >>")
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objs))
	for i, o := range objs {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, o)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objs)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objs)+1, xref)

	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
}

// TestPDFPageNameRounds checks that page names yield the page number as round,
// even when the file name carries digits of its own
func TestPDFPageNameRounds(t *testing.T) {
	src := &FitzPDFSource{path: filepath.Join("exports", "finals_2024.pdf")}

	tests := []struct {
		index int
		name  string
		round int
	}{
		{0, "page_001_finals_2024.pdf", 1},
		{6, "page_007_finals_2024.pdf", 7},
		{119, "page_120_finals_2024.pdf", 120},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, src.PageName(tt.index))

			round, err := bracket.ParseRound(src.PageName(tt.index))
			require.NoError(t, err)
			assert.Equal(t, tt.round, round)
		})
	}
}

func TestPDFSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bracket.pdf")
	writePDF(t, path, 2)

	src, err := New(path)
	require.NoError(t, err)
	defer src.Close()

	_, ok := src.(*FitzPDFSource)
	require.True(t, ok)
	require.Equal(t, 2, src.PageCount())
	assert.Equal(t, "page_002_bracket.pdf", src.PageName(1))

	w, h, err := src.GetPageDimensions(0)
	require.NoError(t, err)
	assert.Equal(t, 200.0, w)
	assert.Equal(t, 100.0, h)

	img, err := src.RenderPage(1, 72)
	require.NoError(t, err)
	assert.False(t, img.Bounds().Empty())
}
