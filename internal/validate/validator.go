package validate

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/DEFRA/content-reviewer-frontend/internal/config"
	"github.com/DEFRA/content-reviewer-frontend/pkg/errors"
)

var defaultMimeTypes = []string{
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

var defaultExtensions = []string{"pdf", "doc", "docx"}

// Validator enforces submission constraints before anything is sent to
// the backend. Checks are pure; callers display the rejection message.
type Validator struct {
	maxFileSize   int64
	mimeTypes     map[string]bool
	extensions    map[string]bool
	minTextLength int
	maxTextLength int
}

func New(cfg config.UploadConfig) *Validator {
	mimeTypes := cfg.AllowedMimeTypes
	if len(mimeTypes) == 0 {
		mimeTypes = defaultMimeTypes
	}
	extensions := cfg.AllowedExtensions
	if len(extensions) == 0 {
		extensions = defaultExtensions
	}

	v := &Validator{
		maxFileSize:   cfg.MaxFileSize,
		mimeTypes:     make(map[string]bool, len(mimeTypes)),
		extensions:    make(map[string]bool, len(extensions)),
		minTextLength: cfg.MinTextLength,
		maxTextLength: cfg.MaxTextLength,
	}
	for _, m := range mimeTypes {
		v.mimeTypes[strings.ToLower(m)] = true
	}
	for _, e := range extensions {
		v.extensions[strings.ToLower(strings.TrimPrefix(e, "."))] = true
	}
	return v
}

func (v *Validator) ValidateFile(filename, mimeType string, size int64) error {
	if size > v.maxFileSize {
		return errors.ValidationError{
			Field: "file",
			Value: filename,
			Message: fmt.Sprintf("File too large. Maximum size is %dMB. Your file is %.2fMB.",
				v.maxFileSize/1024/1024, float64(size)/1024/1024),
		}
	}

	// A missing or generic content type falls back to extension matching.
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	if i := strings.Index(mimeType, ";"); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))

	if !v.mimeTypes[mimeType] && !v.extensions[ext] {
		return errors.ValidationError{
			Field:   "file",
			Value:   filename,
			Message: "Invalid file type. Please upload a PDF or Word document (.pdf, .doc, .docx).",
		}
	}

	return nil
}

func (v *Validator) ValidateText(content string) error {
	// Length limits are in characters, not bytes, and surrounding
	// whitespace never counts toward either bound.
	length := utf8.RuneCountInString(strings.TrimSpace(content))
	if length < v.minTextLength {
		return errors.ValidationError{
			Field: "textContent",
			Value: length,
			Message: fmt.Sprintf("Text content too short. Please provide at least %d characters.",
				v.minTextLength),
		}
	}
	if length > v.maxTextLength {
		return errors.ValidationError{
			Field: "textContent",
			Value: length,
			Message: fmt.Sprintf("Text content too long. Maximum %d characters. Your content has %d characters.",
				v.maxTextLength, length),
		}
	}
	return nil
}

func (v *Validator) MaxFileSize() int64 {
	return v.maxFileSize
}
