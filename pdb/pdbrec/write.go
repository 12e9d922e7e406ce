package pdbrec

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Layout chooses the columns used for the element and charge and how
// the CRYST1 line is written.
type Layout byte

const (
	// LayoutLegacy is what the old cleaner wrote. The element
	// ends in column 79, one to the right of where it should be, and
	// the CRYST1 line gets a second CRYST1 label in front of it.
	LayoutLegacy Layout = iota
	// LayoutStandard puts element and charge in columns 77-80 and
	// writes the CRYST1 line unchanged.
	LayoutStandard
)

func (l Layout) String() string {
	if l == LayoutStandard {
		return "standard"
	}
	return "legacy"
}

// ParseLayout is the inverse of String. "" gives the legacy layout.
func ParseLayout(s string) (Layout, error) {
	switch s {
	case "", "legacy":
		return LayoutLegacy, nil
	case "standard":
		return LayoutStandard, nil
	}
	return LayoutLegacy, fmt.Errorf("layout %q: want legacy or standard", s)
}

const (
	atomFmt    = "%-6s%5d %-4s %-3s %-1s%4d    %8.3f%8.3f%8.3f%6.2f%6.2f"
	legacyTail = " %12s%-2s\n"
	stdTail    = "          %2s%2s\n"
)

// writeRecord writes one line.
func writeRecord(w io.Writer, r Record, layout Layout) error {
	if r.Kind == Ter {
		_, err := io.WriteString(w, "TER\n")
		return err
	}
	tail := legacyTail
	if layout == LayoutStandard {
		tail = stdTail
	}
	_, err := fmt.Fprintf(w, atomFmt+tail, r.Kind.label(), r.Serial, r.AtomID,
		r.ResName, r.ChainID, r.ResSeq, r.X, r.Y, r.Z, r.Occupancy, r.TempFactor,
		r.Element, r.Charge)
	return err
}

// writeHeader writes the REMARK and CRYST1 lines.
func writeHeader(w io.Writer, doc *Document, layout Layout) error {
	if layout == LayoutStandard {
		if _, err := fmt.Fprintf(w, "REMARK %s\n", doc.Title); err != nil {
			return err
		}
		if doc.Cryst == "" {
			return nil
		}
		_, err := fmt.Fprintf(w, "%s\n", doc.Cryst)
		return err
	}
	_, err := fmt.Fprintf(w, "REMARK %s\nCRYST1 %s\n", doc.Title, doc.Cryst)
	return err
}

// Write puts the whole document to w. Empty groups write nothing.
func Write(w io.Writer, doc *Document, layout Layout) error {
	bw := bufio.NewWriter(w)
	if err := writeHeader(bw, doc, layout); err != nil {
		return err
	}
	for _, g := range doc.Groups {
		for _, r := range g {
			if err := writeRecord(bw, r, layout); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// String gives the document in the legacy layout.
func (d *Document) String() string {
	var b strings.Builder
	Write(&b, d, LayoutLegacy) // a strings.Builder does not fail
	return b.String()
}
