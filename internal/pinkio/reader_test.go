package pinkio

import (
	"bytes"
	"encoding/binary"
	"testing"

	"pinksom/internal/som"
)

func writeTestStream(t *testing.T, entries int32, w, h int32, payloads [][]float32) []byte {
	t.Helper()
	var buf bytes.Buffer
	buf.WriteString("# pinksom synthetic fixture\n")
	buf.WriteString(headerSentinel + "\n")

	write := func(v int32) {
		if err := binary.Write(&buf, binary.LittleEndian, v); err != nil {
			t.Fatalf("writing int32: %v", err)
		}
	}
	write(0) // reserved
	write(0) // reserved
	write(0) // reserved
	write(entries)
	write(0) // layout code
	write(2) // dimensionality
	write(w)
	write(h)

	for _, p := range payloads {
		if err := binary.Write(&buf, binary.LittleEndian, p); err != nil {
			t.Fatalf("writing payload: %v", err)
		}
	}
	return buf.Bytes()
}

func TestReaderParsesHeaderAndPayloads(t *testing.T) {
	payloads := [][]float32{
		{1, 2, 3, 4},
		{5, 6, 7, 8},
	}
	data := writeTestStream(t, 2, 2, 2, payloads)

	r, err := NewReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	if r.NumEntries() != 2 {
		t.Fatalf("NumEntries() = %d, want 2", r.NumEntries())
	}

	for i, want := range payloads {
		img, ok, err := r.Next()
		if err != nil {
			t.Fatalf("Next() entry %d: %v", i, err)
		}
		if !ok {
			t.Fatalf("Next() entry %d: expected ok=true", i)
		}
		if img.W != 2 || img.H != 2 {
			t.Fatalf("entry %d: dims = %dx%d, want 2x2", i, img.W, img.H)
		}
		for p, v := range want {
			if img.Pix[p] != v {
				t.Errorf("entry %d pixel %d: got %v, want %v", i, p, img.Pix[p], v)
			}
		}
	}

	_, ok, err := r.Next()
	if err != nil {
		t.Fatalf("Next() past end: %v", err)
	}
	if ok {
		t.Fatal("Next() past declared entry count should return ok=false")
	}
}

func TestReaderRejectsMissingSentinel(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("no sentinel anywhere in this stream\n")
	_, err := NewReader(&buf)
	if _, ok := err.(*som.InputFormatError); !ok {
		t.Fatalf("expected *som.InputFormatError, got %v", err)
	}
}

func TestReaderRejectsUnsupportedDimensionality(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString(headerSentinel + "\n")
	write := func(v int32) { binary.Write(&buf, binary.LittleEndian, v) }
	write(0)
	write(0)
	write(0)
	write(1)
	write(0)
	write(3) // dimensionality != 2

	_, err := NewReader(&buf)
	if _, ok := err.(*som.InputFormatError); !ok {
		t.Fatalf("expected *som.InputFormatError for dimensionality != 2, got %v", err)
	}
}

func TestReaderRejectsTruncatedPayload(t *testing.T) {
	data := writeTestStream(t, 1, 2, 2, [][]float32{{1, 2, 3, 4}})
	truncated := data[:len(data)-4] // drop the last float

	r, err := NewReader(bytes.NewReader(truncated))
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	_, _, err = r.Next()
	if _, ok := err.(*som.InputFormatError); !ok {
		t.Fatalf("expected *som.InputFormatError for truncated payload, got %v", err)
	}
}
