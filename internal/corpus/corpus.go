// Package corpus defines the document records the pipeline moves around and
// the newline-delimited JSON shard format they are stored in.
//
// A document is a text field plus arbitrary passthrough metadata. The
// pipeline only ever reads and rewrites the text; every other field of the
// source record is carried through byte for byte, so annotations added by
// earlier tooling survive filtering untouched.
package corpus

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrBadRecord marks a shard line that could not be decoded as a document.
// Runs treat these as per-record casualties, not run failures.
var ErrBadRecord = errors.New("malformed corpus record")

// Document is one corpus record.
type Document struct {
	// Text is the document body the pipeline cleans and judges.
	Text string
	// Meta holds every other field of the source record, unparsed.
	Meta map[string]json.RawMessage
}

// WithText returns a copy of the document with its text replaced. The
// metadata map is shared, not copied; documents are treated as immutable
// once read.
func (d Document) WithText(text string) Document {
	d.Text = text
	return d
}

// UnmarshalJSON decodes a record, splitting the text field from the
// passthrough metadata. A record without a text field decodes to empty
// text, which the empty check disposes of downstream.
func (d *Document) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if raw, ok := fields["text"]; ok {
		if err := json.Unmarshal(raw, &d.Text); err != nil {
			return fmt.Errorf("text field: %w", err)
		}
		delete(fields, "text")
	}
	d.Meta = fields
	return nil
}

// MarshalJSON re-emits the record with the metadata fields intact and the
// current text. Keys are sorted by the encoder, so output is deterministic.
func (d Document) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(d.Meta)+1)
	for k, v := range d.Meta {
		out[k] = v
	}
	text, err := json.Marshal(d.Text)
	if err != nil {
		return nil, err
	}
	out["text"] = text
	return json.Marshal(out)
}
