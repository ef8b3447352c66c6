package sink

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
)

// PNGSequence writes every frame as a numbered PNG file in a directory:
// prefix_00000.png, prefix_00001.png, ...
type PNGSequence struct {
	dir    string
	prefix string
	enc    png.Encoder
	paths  []string
	closed bool
}

// NewPNGSequence creates dir if needed and returns a sink writing into it.
func NewPNGSequence(dir, prefix string) (*PNGSequence, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create frame directory: %w", err)
	}
	if prefix == "" {
		prefix = "frame"
	}
	return &PNGSequence{
		dir:    dir,
		prefix: prefix,
		enc:    png.Encoder{CompressionLevel: png.BestSpeed},
	}, nil
}

// WriteFrame encodes frame to the next numbered file.
func (s *PNGSequence) WriteFrame(frame image.Image) error {
	if s.closed {
		return ErrClosed
	}
	path := filepath.Join(s.dir, fmt.Sprintf("%s_%05d.png", s.prefix, len(s.paths)))
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := s.enc.Encode(f, frame); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	s.paths = append(s.paths, path)
	return nil
}

// Paths returns the files written so far.
func (s *PNGSequence) Paths() []string {
	return append([]string(nil), s.paths...)
}

// Close marks the sequence complete.
func (s *PNGSequence) Close() error {
	s.closed = true
	return nil
}
