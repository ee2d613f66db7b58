package source

import (
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// ErrNoPages is returned when a source holds nothing to scan
var ErrNoPages = errors.New("source contains no pages or images")

// Source yields the screenshots of a tournament, one page per round.
// PageName carries the round number.
type Source interface {
	PageCount() int
	PageName(index int) string
	GetPageDimensions(index int) (width, height float64, err error)
	RenderPage(index int, dpi int) (image.Image, error)
	Close() error
}

// New opens a PDF export or a directory/file of screenshots
func New(path string) (Source, error) {
	var (
		src Source
		err error
	)
	if strings.HasSuffix(strings.ToLower(path), ".pdf") {
		src, err = NewFitzPDFSource(path)
	} else {
		src, err = NewImageSource(path)
	}
	if err != nil {
		return nil, err
	}

	if src.PageCount() == 0 {
		src.Close()
		return nil, fmt.Errorf("%s: %w", path, ErrNoPages)
	}
	return src, nil
}

// FitzPDFSource treats every page of a PDF bracket export as one round
type FitzPDFSource struct {
	doc  *fitz.Document
	path string
}

func NewFitzPDFSource(path string) (*FitzPDFSource, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, err
	}
	return &FitzPDFSource{doc: doc, path: path}, nil
}

func (f *FitzPDFSource) PageCount() int {
	return f.doc.NumPage()
}

// PageName puts the 1-based page number first so it becomes the round number
func (f *FitzPDFSource) PageName(index int) string {
	return fmt.Sprintf("page_%03d_%s", index+1, filepath.Base(f.path))
}

func (f *FitzPDFSource) GetPageDimensions(index int) (float64, float64, error) {
	rect, err := f.doc.Bound(index)
	if err != nil {
		return 0, 0, err
	}
	return float64(rect.Dx()), float64(rect.Dy()), nil
}

// RenderPage opens its own document so that workers do not share one handle
func (f *FitzPDFSource) RenderPage(index int, dpi int) (image.Image, error) {
	workerDoc, err := fitz.New(f.path)
	if err != nil {
		return nil, err
	}
	defer workerDoc.Close()
	return workerDoc.ImageDPI(index, float64(dpi))
}

func (f *FitzPDFSource) Close() error {
	return f.doc.Close()
}
