// Package upload validates local image files and hands them to an image host,
// returning the public URL to store in the portfolio.
package upload

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// MaxSize is the largest accepted image, in bytes.
const MaxSize = 5 << 20

const (
	MsgInvalidType   = "Please select a valid image file"
	MsgTooLarge      = "Image size must be less than 5MB"
	MsgUploadFailed  = "Upload failed"
	MsgUploadNetwork = "Upload failed. Please try again."
)

var (
	ErrInvalidType = errors.New(MsgInvalidType)
	ErrTooLarge    = errors.New(MsgTooLarge)
)

// Error is a failure reported by the image host; Message is shown verbatim.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return MsgUploadFailed
	}
	return e.Message
}

// File is an image selected by the user.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

func (f File) Size() int { return len(f.Data) }

// Ext returns the lowercase file extension, derived from the content type when
// the name has none.
func (f File) Ext() string {
	if ext := strings.ToLower(filepath.Ext(f.Name)); ext != "" {
		return ext
	}
	if exts, _ := mime.ExtensionsByType(f.ContentType); len(exts) > 0 {
		return exts[0]
	}
	return ""
}

// OpenFile reads path and fills in the content type, from the extension when
// known and otherwise sniffed from the content.
func OpenFile(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read %s: %w", path, err)
	}

	ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if ct == "" {
		ct = http.DetectContentType(data)
	}
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	return File{Name: filepath.Base(path), ContentType: ct, Data: data}, nil
}

// Validate checks the file before any network traffic.
func Validate(f File) error {
	ct := f.ContentType
	if ct == "" {
		ct = http.DetectContentType(f.Data)
	}
	if !strings.HasPrefix(ct, "image/") {
		return ErrInvalidType
	}
	if f.Size() > MaxSize {
		return ErrTooLarge
	}
	return nil
}

// Uploader stores an image and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, f File) (string, error)
}

// Message returns the text to show for an upload error.
func Message(err error) string {
	var upErr *Error
	switch {
	case errors.Is(err, ErrInvalidType):
		return MsgInvalidType
	case errors.Is(err, ErrTooLarge):
		return MsgTooLarge
	case errors.As(err, &upErr) && upErr.Message != "":
		return upErr.Message
	case errors.As(err, &upErr):
		return MsgUploadFailed
	default:
		return MsgUploadNetwork
	}
}
