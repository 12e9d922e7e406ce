// 17 Oct 2026

package pdbrec

import (
	"strconv"
	"strings"
)

// Kind says what sort of coordinate record we have.
type Kind byte

const (
	Atom Kind = iota
	HetAtom
	Ter // chain terminator. None of the other fields mean anything.
)

// label is the record name as it is written out, padded to six.
func (k Kind) label() string {
	switch k {
	case Atom:
		return "ATOM  "
	case HetAtom:
		return "HETATM"
	}
	return "TER   "
}

func (k Kind) String() string { return strings.TrimSpace(k.label()) }

// Record is one ATOM, HETATM or TER line.
// AtomID is kept exactly as it was in the file, leading blank and all,
// since " HE2" and "HE2 " are different atoms.
type Record struct {
	Kind       Kind
	Serial     int
	AtomID     string
	ResName    string
	ChainID    string
	ResSeq     int
	X, Y, Z    float64
	Occupancy  float64
	TempFactor float64
	Element    string
	Charge     string
}

const dfltChain = "X"

// Column ranges, counted from zero, end excluded.
const (
	colSerial0, colSerial1 = 6, 11
	colAtomID0, colAtomID1 = 12, 16
	colResNm0, colResNm1   = 17, 20
	colChain0, colChain1   = 21, 22
	colResSeq0, colResSeq1 = 22, 26
	colX0, colX1           = 30, 38
	colY0, colY1           = 38, 46
	colZ0, colZ1           = 46, 54
	colOcc0, colOcc1       = 54, 60
	colTemp0, colTemp1     = 60, 66
	colElem0, colElem1     = 76, 78
	colChrg0, colChrg1     = 78, 80
	minElemLen             = 77 // element and charge are only looked at in lines this long
)

// col returns line[lo:hi], cut back to whatever the line really has.
// Short lines give short or empty fields rather than a panic.
func col(line string, lo, hi int) string {
	if lo >= len(line) {
		return ""
	}
	if hi > len(line) {
		hi = len(line)
	}
	return line[lo:hi]
}

// recordKind looks at the start of a line. ok is false if the line is
// not a coordinate record at all.
func recordKind(line string) (k Kind, ok bool) {
	switch {
	case strings.HasPrefix(line, "ATOM"):
		return Atom, true
	case strings.HasPrefix(line, "HETATM"):
		return HetAtom, true
	case strings.HasPrefix(line, "TER"):
		return Ter, true
	}
	return 0, false
}

// fieldParser carries the line being decoded so each numeric field
// can be parsed in one call, stopping at the first broken one.
type fieldParser struct {
	line   string
	lineNo int
	err    error
}

func (p *fieldParser) integer(name string, lo, hi int) int {
	if p.err != nil {
		return 0
	}
	s := strings.TrimSpace(col(p.line, lo, hi))
	i, err := strconv.Atoi(s)
	if err != nil {
		p.err = newMalformed(p.lineNo, p.line, name, s, err)
	}
	return i
}

func (p *fieldParser) real(name string, lo, hi int) float64 {
	if p.err != nil {
		return 0
	}
	s := strings.TrimSpace(col(p.line, lo, hi))
	x, err := strconv.ParseFloat(s, 64)
	if err != nil {
		p.err = newMalformed(p.lineNo, p.line, name, s, err)
	}
	return x
}

// Decode turns one line into a Record. ok is false for anything that
// is not ATOM, HETATM or TER, and then the record should be ignored.
// lineNo is only used for error messages. A numeric field that will
// not parse gives a *MalformedRecordError.
func Decode(line string, lineNo int) (rec Record, ok bool, err error) {
	line = strings.TrimSuffix(line, "\r")
	kind, ok := recordKind(line)
	if !ok {
		return Record{}, false, nil
	}
	if kind == Ter {
		return Record{Kind: Ter}, true, nil
	}

	p := fieldParser{line: line, lineNo: lineNo}
	rec = Record{
		Kind:       kind,
		Serial:     p.integer("serial", colSerial0, colSerial1),
		AtomID:     col(line, colAtomID0, colAtomID1),
		ResName:    strings.TrimSpace(col(line, colResNm0, colResNm1)),
		ChainID:    strings.TrimSpace(col(line, colChain0, colChain1)),
		ResSeq:     p.integer("residue number", colResSeq0, colResSeq1),
		X:          p.real("x", colX0, colX1),
		Y:          p.real("y", colY0, colY1),
		Z:          p.real("z", colZ0, colZ1),
		Occupancy:  p.real("occupancy", colOcc0, colOcc1),
		TempFactor: p.real("temperature factor", colTemp0, colTemp1),
	}
	if p.err != nil {
		return Record{}, true, p.err
	}
	if rec.ChainID == "" {
		rec.ChainID = dfltChain
	}
	if len(line) >= minElemLen {
		rec.Element = strings.TrimSpace(col(line, colElem0, colElem1))
		rec.Charge = strings.TrimSpace(col(line, colChrg0, colChrg1))
	}
	if rec.Element == "" && rec.AtomID != "" {
		rec.Element = rec.AtomID[:1]
	}
	return rec, true, nil
}

// resSeqAt pulls just the residue number out of a line. It is used to
// seed the residue cursor from a fixed line.
func resSeqAt(line string, lineNo int) (int, error) {
	p := fieldParser{line: strings.TrimSuffix(line, "\r"), lineNo: lineNo}
	n := p.integer("residue number", colResSeq0, colResSeq1)
	return n, p.err
}
