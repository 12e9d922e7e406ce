// An error that remembers the line number, the field and the line we
// were trying to read.

package pdbrec

import (
	"errors"
	"strconv"
)

const maxMsgLen = 70

// ErrMissingHeader is wrapped into the error returned by Build when
// the residue cursor is seeded from a fixed line and that line is not
// there or is not a coordinate record.
var ErrMissingHeader = errors.New("no coordinate record at the expected header position")

// MalformedRecordError is returned when a numeric column of an ATOM or
// HETATM record cannot be parsed. There is no recovery. The whole
// conversion stops.
type MalformedRecordError struct {
	Line   int    // line number, counted from 1
	Field  string // name of the column, like "x" or "serial"
	Text   string // what was in the column, trimmed
	inline string // The line that provoked the error
	err    error
}

func newMalformed(lineNo int, line, field, text string, err error) *MalformedRecordError {
	return &MalformedRecordError{
		Line:   lineNo,
		Field:  field,
		Text:   text,
		inline: line,
		err:    err,
	}
}

func firstPart(s string) string {
	l := len(s)
	if l > maxMsgLen {
		l = maxMsgLen
	}
	return s[:l]
}

func (e *MalformedRecordError) Error() string {
	var errmsg string
	if e.Line != 0 {
		errmsg = "line " + strconv.Itoa(e.Line) + ": "
	}
	errmsg += "bad " + e.Field + " " + strconv.Quote(e.Text)
	if e.inline != "" {
		errmsg += "\nline starting with\n" + firstPart(e.inline)
	}
	return errmsg
}

// Unwrap gives back the strconv error.
func (e *MalformedRecordError) Unwrap() error { return e.err }
