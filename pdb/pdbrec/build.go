// 17 Oct 2026

package pdbrec

import (
	"fmt"
	"strings"
)

// DefaultTitleSuffix is put on the end of every title that does not
// already have it.
const DefaultTitleSuffix = "by supernova"

const titleOffset = 7 // len("REMARK ")

// Group is the set of records that make up one residue, in file order.
// A TER record sits in a group of its own. A group can be empty. These
// are left in the document and just write nothing.
type Group []Record

// IsTer says if this is the single record group made by a TER line.
func (g Group) IsTer() bool { return len(g) == 1 && g[0].Kind == Ter }

// ResName is the residue name of the first record, or "" for an empty
// or TER group.
func (g Group) ResName() string {
	if len(g) == 0 || g.IsTer() {
		return ""
	}
	return g[0].ResName
}

// Document is everything we keep from a PDB file.
type Document struct {
	Title  string
	Cryst  string // the CRYST1 line, trimmed, or ""
	Groups []Group
}

// Atoms returns all the ATOM and HETATM records in file order.
func (d *Document) Atoms() []Record {
	var n int
	for _, g := range d.Groups {
		n += len(g)
	}
	atoms := make([]Record, 0, n)
	for _, g := range d.Groups {
		for _, r := range g {
			if r.Kind != Ter {
				atoms = append(atoms, r)
			}
		}
	}
	return atoms
}

// Chains returns the chain identifiers in the order they first appear.
func (d *Document) Chains() []string {
	seen := make(map[string]bool)
	var chains []string
	for _, r := range d.Atoms() {
		if !seen[r.ChainID] {
			seen[r.ChainID] = true
			chains = append(chains, r.ChainID)
		}
	}
	return chains
}

// NResidue counts the groups which are neither empty nor TER.
func (d *Document) NResidue() int {
	var n int
	for _, g := range d.Groups {
		if len(g) > 0 && !g.IsTer() {
			n++
		}
	}
	return n
}

// SeedStrategy says where the residue cursor gets its first value.
type SeedStrategy byte

const (
	// SeedFirstRecord takes the residue number of the first ATOM or
	// HETATM record.
	SeedFirstRecord SeedStrategy = iota
	// SeedFixedLine reads the residue number from line SeedLine
	// (counted from zero), whatever else is in the file. This is how
	// the old cleaner worked, with SeedLine = 3.
	SeedFixedLine
)

func (s SeedStrategy) String() string {
	if s == SeedFixedLine {
		return "fixed-line"
	}
	return "first-record"
}

// ParseSeed is the inverse of String. "" gives the default.
func ParseSeed(s string) (SeedStrategy, error) {
	switch s {
	case "", "first-record":
		return SeedFirstRecord, nil
	case "fixed-line":
		return SeedFixedLine, nil
	}
	return SeedFirstRecord, fmt.Errorf("seed %q: want first-record or fixed-line", s)
}

// BuildOptions control how a document is put together.
type BuildOptions struct {
	Seed          SeedStrategy
	SeedLine      int
	FlushTrailing bool   // keep atoms after the last residue change
	TitleSuffix   string // "" means DefaultTitleSuffix
}

const legacySeedLine = 3

// DefaultBuildOptions seed from the first record and keep the last
// residue.
func DefaultBuildOptions() BuildOptions {
	return BuildOptions{
		Seed:          SeedFirstRecord,
		SeedLine:      legacySeedLine,
		FlushTrailing: true,
		TitleSuffix:   DefaultTitleSuffix,
	}
}

// LegacyBuildOptions reproduce the old cleaner, including losing
// the last residue of a file that does not end with TER.
func LegacyBuildOptions() BuildOptions {
	return BuildOptions{
		Seed:          SeedFixedLine,
		SeedLine:      legacySeedLine,
		FlushTrailing: false,
		TitleSuffix:   DefaultTitleSuffix,
	}
}

// mkTitle takes the first line of the file, drops the REMARK label and
// makes sure the suffix is there.
func mkTitle(line, suffix string) string {
	title := strings.TrimSpace(col(strings.TrimSuffix(line, "\r"), titleOffset, len(line)))
	if strings.HasSuffix(title, suffix) {
		return title
	}
	return title + " " + suffix // an empty title keeps the blank
}

// grouper is the state carried from line to line while grouping.
type grouper struct {
	cursor  int
	seeded  bool
	pending Group
	groups  []Group
}

// flush moves the pending residue, even an empty one, onto the list.
func (g *grouper) flush() {
	g.groups = append(g.groups, g.pending)
	g.pending = nil
}

func (g *grouper) add(rec Record) {
	if rec.Kind == Ter {
		g.flush()
		g.groups = append(g.groups, Group{rec})
		return // The cursor is left alone after a TER.
	}
	if !g.seeded {
		g.cursor, g.seeded = rec.ResSeq, true
	}
	if rec.ResSeq == g.cursor {
		g.pending = append(g.pending, rec)
		return
	}
	g.flush()
	g.cursor = rec.ResSeq
	g.pending = Group{rec}
}

// Build reads the text of a PDB file into a Document.
// Residues are cut wherever the residue number changes or there is a
// TER. The first error from a coordinate line stops everything.
func Build(text string, opts BuildOptions) (*Document, error) {
	lines := strings.Split(text, "\n")
	suffix := opts.TitleSuffix
	if suffix == "" {
		suffix = DefaultTitleSuffix
	}
	doc := &Document{Title: mkTitle(lines[0], suffix)}

	var g grouper
	if opts.Seed == SeedFixedLine {
		if opts.SeedLine < 0 || opts.SeedLine >= len(lines) {
			return nil, fmt.Errorf("%w: line %d wanted, file has %d lines",
				ErrMissingHeader, opts.SeedLine+1, len(lines))
		}
		n, err := resSeqAt(lines[opts.SeedLine], opts.SeedLine+1)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMissingHeader, err)
		}
		g.cursor, g.seeded = n, true
	}

	haveCryst := false
	for i, line := range lines {
		if !haveCryst && strings.HasPrefix(line, "CRYST1") {
			doc.Cryst = strings.TrimSpace(line)
			haveCryst = true
			continue
		}
		rec, ok, err := Decode(line, i+1)
		if err != nil {
			return nil, err
		}
		if ok {
			g.add(rec)
		}
	}
	if opts.FlushTrailing && len(g.pending) > 0 {
		g.flush()
	}
	doc.Groups = g.groups
	return doc, nil
}
