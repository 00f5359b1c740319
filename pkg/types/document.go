// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ExtractionStatus indicates the outcome of extracting one PDF in a batch.
type ExtractionStatus string

const (
	ExtractionDone    ExtractionStatus = "extracted"
	ExtractionFailed  ExtractionStatus = "failed"
	ExtractionSkipped ExtractionStatus = "skipped"
)

// Page is one page of extracted text.
type Page struct {
	// Number is the 1-based position of the page in document order.
	Number int `json:"number" yaml:"number"`

	// Text is the extracted text. It is empty when the page has no
	// extractable text or extraction failed in best-effort mode.
	Text string `json:"text" yaml:"text"`
}

// Document is the result of extracting every page of a PDF.
type Document struct {
	// Path is the filesystem path the PDF was read from.
	Path string `json:"path" yaml:"path"`

	// Backend names the tool that produced the text.
	Backend Backend `json:"backend" yaml:"backend"`

	// Pages holds one entry per page, numbered 1..N in order.
	Pages []Page `json:"pages" yaml:"pages"`
}

// PageCount returns the number of pages in the document.
func (d Document) PageCount() int {
	return len(d.Pages)
}

// DocumentInfo summarizes a PDF's structure without extracting text.
type DocumentInfo struct {
	Path string `json:"path" yaml:"path"`
	Size int64  `json:"size" yaml:"size"`

	// PageCount is nil when the page tree could not be read.
	PageCount *int `json:"page_count" yaml:"page_count"`

	// Valid reports whether the file passed structural validation.
	Valid bool `json:"valid" yaml:"valid"`

	// ValidationError holds the validator message when Valid is false.
	ValidationError string `json:"validation_error,omitempty" yaml:"validation_error,omitempty"`
}
