// Package pinkio implements the binary input/output formats of §6: a
// pull-style reader over the training input stream and a writer for the
// composite SOM output image.
package pinkio

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"pinksom/internal/geometry"
	"pinksom/internal/som"
)

// headerSentinel terminates the textual header section of the input
// stream. Everything up to and including the line equal to this sentinel
// is discarded.
const headerSentinel = "# END OF HEADER"

// Reader streams training images from the binary input format (§6): a
// textual header, three reserved int32s, an entry count, a skipped layout
// code, a dimensionality, that many dimension ints, then that many
// row-major float32 payloads. It satisfies som.InputSource.
type Reader struct {
	r       *bufio.Reader
	entries int32
	count   int32
	w, h    int
}

// NewReader consumes and validates the header of r, leaving the stream
// positioned at the first payload. It returns *som.InputFormatError if the
// header is malformed or declares an unsupported dimensionality.
func NewReader(r io.Reader) (*Reader, error) {
	br := bufio.NewReader(r)

	if err := skipHeader(br); err != nil {
		return nil, err
	}

	var reserved [3]int32
	if err := readInt32s(br, reserved[:]); err != nil {
		return nil, &som.InputFormatError{Reason: "reading reserved header fields", Err: err}
	}

	var entries int32
	if err := binary.Read(br, binary.LittleEndian, &entries); err != nil {
		return nil, &som.InputFormatError{Reason: "reading entry count", Err: err}
	}

	var layoutCode int32
	if err := binary.Read(br, binary.LittleEndian, &layoutCode); err != nil {
		return nil, &som.InputFormatError{Reason: "reading layout code", Err: err}
	}

	var dimensionality int32
	if err := binary.Read(br, binary.LittleEndian, &dimensionality); err != nil {
		return nil, &som.InputFormatError{Reason: "reading dimensionality", Err: err}
	}
	if dimensionality != 2 {
		return nil, &som.InputFormatError{Reason: fmt.Sprintf("unsupported dimensionality %d, want 2", dimensionality)}
	}

	dims := make([]int32, dimensionality)
	if err := readInt32s(br, dims); err != nil {
		return nil, &som.InputFormatError{Reason: "reading image dimensions", Err: err}
	}
	if dims[0] <= 0 || dims[1] <= 0 {
		return nil, &som.InputFormatError{Reason: fmt.Sprintf("non-positive image dimensions %dx%d", dims[0], dims[1])}
	}

	return &Reader{
		r:       br,
		entries: entries,
		w:       int(dims[0]),
		h:       int(dims[1]),
	}, nil
}

// NumEntries returns the declared entry count from the header.
func (rd *Reader) NumEntries() int { return int(rd.entries) }

// Next reads the next image payload. It returns ok=false, err=nil once the
// declared entry count is exhausted. A short or corrupt payload is reported
// as *som.InputFormatError.
func (rd *Reader) Next() (geometry.Image, bool, error) {
	if rd.count >= rd.entries {
		return geometry.Image{}, false, nil
	}

	img := geometry.NewImage(rd.w, rd.h)
	if err := readFloat32s(rd.r, img.Pix); err != nil {
		return geometry.Image{}, false, &som.InputFormatError{
			Reason: fmt.Sprintf("reading payload %d of %d", rd.count, rd.entries),
			Err:    err,
		}
	}
	rd.count++
	return img, true, nil
}

func skipHeader(r *bufio.Reader) error {
	for {
		line, err := r.ReadString('\n')
		if trimmed := trimEOL(line); trimmed == headerSentinel {
			return nil
		}
		if err != nil {
			if err == io.EOF {
				return &som.InputFormatError{Reason: "header sentinel not found before end of stream"}
			}
			return &som.InputFormatError{Reason: "reading header", Err: err}
		}
	}
}

func trimEOL(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}

func readInt32s(r io.Reader, dst []int32) error {
	return binary.Read(r, binary.LittleEndian, dst)
}

func readFloat32s(r io.Reader, dst []float32) error {
	return binary.Read(r, binary.LittleEndian, dst)
}
