// Package trajectory writes particle configurations in the XYZ text format
// understood by VMD and similar viewers. It has no dependency on sim/ — it
// consumes plain position slices.
//
// One frame per sample: the total particle count, a blank comment line, then
// one line per particle of the form "<tag> <x> <y> 0" with tag 0 for the
// small species and 1 for the large. The third coordinate is always 0; the
// 2D system is expressed in a 3D viewer format.
package trajectory

import (
	"fmt"
	"io"
	"os"

	"github.com/Dakror/aabbtree"
)

const (
	tagSmall = 0
	tagLarge = 1
)

// Writer appends XYZ frames to an io.Writer.
type Writer struct {
	w io.Writer
}

// NewWriter wraps an io.Writer for frame output.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// RecordFrame appends one frame holding both species.
func (t *Writer) RecordFrame(small, large []aabbtree.Point) error {
	if _, err := fmt.Fprintf(t.w, "%d\n\n", len(small)+len(large)); err != nil {
		return err
	}
	for _, p := range small {
		if _, err := fmt.Fprintf(t.w, "%d %f %f 0\n", tagSmall, p[0], p[1]); err != nil {
			return err
		}
	}
	for _, p := range large {
		if _, err := fmt.Fprintf(t.w, "%d %f %f 0\n", tagLarge, p[0], p[1]); err != nil {
			return err
		}
	}
	return nil
}

// FileWriter is a Writer backed by a file. The file is truncated at creation
// and appended to frame by frame.
type FileWriter struct {
	*Writer
	f *os.File
}

// Create opens (and truncates) the trajectory file at path.
func Create(path string) (*FileWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("opening trajectory file: %w", err)
	}
	return &FileWriter{Writer: NewWriter(f), f: f}, nil
}

// Close flushes and closes the backing file.
func (t *FileWriter) Close() error {
	return t.f.Close()
}
