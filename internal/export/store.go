package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"

	billy "gopkg.in/src-d/go-billy.v4"

	"heightgen/internal/heightfield"
)

// Store persists named blobs.
type Store interface {
	Put(ctx context.Context, name string, data []byte) error
}

// FSStore writes blobs under a directory of a billy filesystem.
type FSStore struct {
	fs  billy.Filesystem
	dir string
}

// NewFSStore returns a store rooted at dir on fs.
func NewFSStore(fs billy.Filesystem, dir string) *FSStore {
	return &FSStore{fs: fs, dir: dir}
}

// Put writes data to dir/name, creating dir if needed.
func (s *FSStore) Put(_ context.Context, name string, data []byte) error {
	if s.dir != "" {
		if err := s.fs.MkdirAll(s.dir, 0755); err != nil {
			return fmt.Errorf("create %s: %w", s.dir, err)
		}
	}
	p := path.Join(s.dir, name)
	f, err := s.fs.Create(p)
	if err != nil {
		return fmt.Errorf("create %s: %w", p, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", p, err)
	}
	return f.Close()
}

// Formats selects which encodings Snapshot writes.
type Formats struct {
	JSON bool
	PNG  bool
	TIFF bool
}

// Any reports whether at least one format is selected.
func (f Formats) Any() bool { return f.JSON || f.PNG || f.TIFF }

type encoder struct {
	ext     string
	enabled bool
	write   func(io.Writer, *heightfield.Field) error
}

// Snapshot encodes f in every selected format and stores each as base plus
// the format's extension. It returns the stored names in JSON, PNG, TIFF order.
func Snapshot(ctx context.Context, store Store, base string, f *heightfield.Field, formats Formats) ([]string, error) {
	encoders := []encoder{
		{".json", formats.JSON, WriteJSON},
		{".png", formats.PNG, WritePNG},
		{".tiff", formats.TIFF, WriteTIFF},
	}
	var names []string
	for _, e := range encoders {
		if !e.enabled {
			continue
		}
		var buf bytes.Buffer
		if err := e.write(&buf, f); err != nil {
			return names, err
		}
		name := base + e.ext
		if err := store.Put(ctx, name, buf.Bytes()); err != nil {
			return names, err
		}
		names = append(names, name)
	}
	return names, nil
}
