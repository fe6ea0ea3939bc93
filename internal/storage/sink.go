package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	apperrors "github.com/agbru/txt2pptx/internal/errors"
)

// ContentType is the media type of a generated deck.
const ContentType = "application/vnd.openxmlformats-officedocument.presentationml.presentation"

// Sink stores a deck and returns its location.
type Sink interface {
	Store(ctx context.Context, name string, body io.Reader) (string, error)
}

// SafeName reduces a service-provided filename to a single path element.
// It rejects names that would escape the destination.
func SafeName(name string) (string, error) {
	base := filepath.Base(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))
	if base == "." || base == ".." || base == "/" || base == "" {
		return "", apperrors.ValidationError{Field: "filename", Message: fmt.Sprintf("invalid deck filename %q", name)}
	}
	if filepath.Ext(base) == "" {
		base += ".pptx"
	}
	return base, nil
}

// LocalSink writes decks into a directory.
type LocalSink struct {
	Dir string
}

// NewLocalSink returns a sink writing into dir. An empty dir means the
// working directory.
func NewLocalSink(dir string) *LocalSink {
	if dir == "" {
		dir = "."
	}
	return &LocalSink{Dir: dir}
}

// Store writes body to Dir/name through a temporary file so a failed
// download never leaves a truncated deck behind.
func (s *LocalSink) Store(ctx context.Context, name string, body io.Reader) (string, error) {
	name, err := SafeName(name)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", apperrors.WrapError(err, "create output directory")
	}

	tmp, err := os.CreateTemp(s.Dir, "."+name+".*.part")
	if err != nil {
		return "", apperrors.WrapError(err, "create temporary file")
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, contextReader{ctx: ctx, r: body}); err != nil {
		tmp.Close()
		return "", apperrors.WrapError(err, "write %s", name)
	}
	if err := tmp.Close(); err != nil {
		return "", apperrors.WrapError(err, "close %s", name)
	}

	dest := filepath.Join(s.Dir, name)
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return "", apperrors.WrapError(err, "move %s into place", name)
	}
	return dest, nil
}

// contextReader stops copying once ctx is done.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
