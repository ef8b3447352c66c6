package sink

import (
	"image"
	"io"
)

// Sink consumes rendered frames in order.
type Sink interface {
	// WriteFrame appends one frame. The sink must not retain frame after
	// returning unless it copies it.
	WriteFrame(frame image.Image) error
	// Close flushes buffered output. Writing after Close is an error.
	Close() error
}

// Multi fans frames out to several sinks. Close closes every sink and
// returns the first error.
func Multi(sinks ...Sink) Sink {
	return multi(sinks)
}

type multi []Sink

func (m multi) WriteFrame(frame image.Image) error {
	for _, s := range m {
		if err := s.WriteFrame(frame); err != nil {
			return err
		}
	}
	return nil
}

func (m multi) Close() error {
	var first error
	for _, s := range m {
		if err := s.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
