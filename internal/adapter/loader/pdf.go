package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	ledongthuc "github.com/ledongthuc/pdf"
	rscpdf "rsc.io/pdf"

	"ragstore/internal/adapter/fs"
	"ragstore/internal/domain"
)

// PDFLoader reads PDF files from a path (single file or directory) and
// produces one document per file. Page boundaries are inlined in the text
// as "--- Page N ---" markers so splitters can annotate page spans.
//
// Extraction tries ledongthuc/pdf first and falls back to rsc.io/pdf when
// the primary parser rejects the file.
type PDFLoader struct {
	path string
}

func NewPDFLoader(path string) *PDFLoader {
	return &PDFLoader{path: path}
}

// Load extracts text and metadata from the configured path. Directories
// are walked recursively for .pdf files.
func (l *PDFLoader) Load() ([]domain.Document, error) {
	info, err := os.Stat(l.path)
	if err != nil {
		return nil, fmt.Errorf("cannot access path %s: %w", l.path, err)
	}

	if info.IsDir() {
		return l.loadDirectory()
	}
	if !strings.EqualFold(filepath.Ext(l.path), ".pdf") {
		return nil, fmt.Errorf("provided path is neither a directory nor a .pdf file: %s", l.path)
	}

	doc, err := loadPDFFile(l.path)
	if err != nil {
		return nil, err
	}
	return []domain.Document{doc}, nil
}

func (l *PDFLoader) loadDirectory() ([]domain.Document, error) {
	walker := fs.NewWalker([]string{"**/*.pdf", "**/*.PDF"})
	files, err := walker.Walk(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory %s: %w", l.path, err)
	}

	var docs []domain.Document
	for _, file := range files {
		doc, err := loadPDFFile(file)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func loadPDFFile(path string) (domain.Document, error) {
	doc, primaryErr := extractPrimary(path)
	if primaryErr == nil {
		return doc, nil
	}

	doc, fallbackErr := extractFallback(path)
	if fallbackErr != nil {
		return domain.Document{}, fmt.Errorf("error reading PDF file %s: %w (fallback: %v)",
			path, primaryErr, fallbackErr)
	}
	return doc, nil
}

func extractPrimary(path string) (doc domain.Document, err error) {
	defer recoverParseError(&err)

	f, r, err := ledongthuc.Open(path)
	if err != nil {
		return domain.Document{}, err
	}
	defer f.Close()

	var text strings.Builder
	total := r.NumPage()
	for pageNum := 1; pageNum <= total; pageNum++ {
		page := r.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			return domain.Document{}, err
		}
		fmt.Fprintf(&text, "\n--- Page %d ---\n%s", pageNum, content)
	}

	info := r.Trailer().Key("Info")
	infoText := func(key string) string {
		v := info.Key(key)
		if v.IsNull() {
			return ""
		}
		return v.Text()
	}

	return domain.Document{
		Text:     strings.TrimSpace(text.String()),
		Metadata: pdfMetadata(path, total, infoText, "ledongthuc/pdf"),
	}, nil
}

func extractFallback(path string) (doc domain.Document, err error) {
	defer recoverParseError(&err)

	r, err := rscpdf.Open(path)
	if err != nil {
		return domain.Document{}, err
	}

	var text strings.Builder
	total := r.NumPage()
	for pageNum := 1; pageNum <= total; pageNum++ {
		page := r.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		var pageText strings.Builder
		for _, t := range page.Content().Text {
			pageText.WriteString(t.S)
		}
		fmt.Fprintf(&text, "\n--- Page %d ---\n%s", pageNum, pageText.String())
	}

	info := r.Trailer().Key("Info")
	infoText := func(key string) string {
		v := info.Key(key)
		if v.IsNull() {
			return ""
		}
		return v.Text()
	}

	return domain.Document{
		Text:     strings.TrimSpace(text.String()),
		Metadata: pdfMetadata(path, total, infoText, "rsc.io/pdf"),
	}, nil
}

func pdfMetadata(path string, totalPages int, infoText func(string) string, loaderName string) map[string]any {
	return map[string]any{
		"source":            path,
		"total_pages":       totalPages,
		"title":             infoText("Title"),
		"author":            infoText("Author"),
		"subject":           infoText("Subject"),
		"creator":           infoText("Creator"),
		"producer":          infoText("Producer"),
		"creation_date":     infoText("CreationDate"),
		"modification_date": infoText("ModDate"),
		"loader":            loaderName,
	}
}

// recoverParseError converts parser panics into errors. Both PDF libraries
// panic on some malformed inputs.
func recoverParseError(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("pdf parse panic: %v", r)
	}
}
