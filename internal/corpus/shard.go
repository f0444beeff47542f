package corpus

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	// initial and maximum scanner buffer sizes; single web documents can
	// run to many megabytes of text
	readBufBytes  = 64 * 1024
	maxRecordSize = 32 * 1024 * 1024
)

// Reader streams documents from a newline-delimited JSON stream. Blank
// lines are skipped; lines that fail to decode surface as ErrBadRecord so
// callers can skip them while still aborting on real I/O trouble.
type Reader struct {
	scanner *bufio.Scanner
	line    int
}

// NewReader wraps r for document streaming.
func NewReader(r io.Reader) *Reader {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, readBufBytes), maxRecordSize)
	return &Reader{scanner: s}
}

// Next returns the next document. It reports io.EOF at end of stream and
// wraps decode failures in ErrBadRecord with the offending line number.
func (r *Reader) Next() (Document, error) {
	for r.scanner.Scan() {
		r.line++
		data := bytes.TrimSpace(r.scanner.Bytes())
		if len(data) == 0 {
			continue
		}
		var doc Document
		if err := json.Unmarshal(data, &doc); err != nil {
			return Document{}, fmt.Errorf("%w at line %d: %v", ErrBadRecord, r.line, err)
		}
		return doc, nil
	}
	if err := r.scanner.Err(); err != nil {
		return Document{}, fmt.Errorf("reading shard: %w", err)
	}
	return Document{}, io.EOF
}

// Line reports the line number of the most recently scanned record.
func (r *Reader) Line() int {
	return r.line
}

// Writer emits documents as newline-delimited JSON. HTML escaping is off:
// corpus text keeps its angle brackets and ampersands readable.
type Writer struct {
	buf *bufio.Writer
	enc *json.Encoder
}

// NewWriter wraps w for document output.
func NewWriter(w io.Writer) *Writer {
	buf := bufio.NewWriter(w)
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	return &Writer{buf: buf, enc: enc}
}

// Write appends one document record.
func (w *Writer) Write(doc Document) error {
	return w.enc.Encode(doc)
}

// Flush drains buffered output to the underlying writer.
func (w *Writer) Flush() error {
	return w.buf.Flush()
}

// File is a shard opened for reading.
type File struct {
	*Reader
	f  *os.File
	gz *gzip.Reader
}

// Open opens a shard file, transparently decompressing names ending
// in .gz.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening shard: %w", err)
	}
	file := &File{f: f}
	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("decompressing shard %s: %w", path, err)
		}
		file.gz = gz
		r = gz
	}
	file.Reader = NewReader(r)
	return file, nil
}

// Close releases the shard.
func (f *File) Close() error {
	if f.gz != nil {
		if err := f.gz.Close(); err != nil {
			f.f.Close()
			return err
		}
	}
	return f.f.Close()
}

// FileWriter is a shard opened for writing.
type FileWriter struct {
	*Writer
	f  *os.File
	gz *gzip.Writer
}

// Create creates a shard file, compressing output when the name ends
// in .gz. Parent directories must already exist.
func Create(path string) (*FileWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating shard: %w", err)
	}
	fw := &FileWriter{f: f}
	var w io.Writer = f
	if strings.HasSuffix(path, ".gz") {
		fw.gz = gzip.NewWriter(f)
		w = fw.gz
	}
	fw.Writer = NewWriter(w)
	return fw, nil
}

// Close flushes and releases the shard. It must be called for the output
// to be complete.
func (w *FileWriter) Close() error {
	if err := w.Flush(); err != nil {
		w.f.Close()
		return err
	}
	if w.gz != nil {
		if err := w.gz.Close(); err != nil {
			w.f.Close()
			return err
		}
	}
	return w.f.Close()
}
