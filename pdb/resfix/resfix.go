// 17 Oct 2026

// Package resfix renames residues and atoms so gromacs will accept a
// protein that was prepared with Discovery Studio.
//
//  1. HIS becomes HID, HIE or HIP, depending on which ring hydrogens are there.
//  2. ASP with HD2 (protonated) becomes ASH.
//  3. GLU with HE2 (protonated) becomes GLH.
//  4. Terminal carboxylate oxygens 1OCT and 2OCT become OC1 and OC2.
//
// Atom names are compared exactly as they sit in columns 13-16, so
// " HE2" matches but "HE2 " does not.
package resfix

import (
	"github.com/andrew-torda/pdbclean/pdb/pdbrec"
)

// HisState is the protonation state of a histidine.
type HisState byte

const (
	HID HisState = iota // proton on delta nitrogen, or no ring proton at all
	HIE                 // proton on epsilon nitrogen
	HIP                 // both, so positively charged
)

func (h HisState) String() string {
	switch h {
	case HIE:
		return "HIE"
	case HIP:
		return "HIP"
	}
	return "HID"
}

const (
	atHD1 = " HD1"
	atHD2 = " HD2"
	atHE2 = " HE2"
)

const (
	at1OCT = "1OCT"
	at2OCT = "2OCT"
	atOC1  = " OC1"
	atOC2  = " OC2"
)

// Change says what was done to one residue.
type Change struct {
	OldName string
	NewName string // "" if the residue was not renamed
	NOC1    int    // 1OCT atoms relabelled
	NOC2    int
}

// Renamed says if the residue name changed.
func (c Change) Renamed() bool { return c.NewName != "" }

// Report counts what was done to a whole document.
type Report struct {
	NResidue int            // residues looked at
	Renames  map[string]int // key is the new residue name, like "HIP"
	NOC1     int
	NOC2     int
}

func newReport() Report { return Report{Renames: make(map[string]int)} }

// NRenamed is the total number of residues that got a new name.
func (r Report) NRenamed() int {
	var n int
	for _, v := range r.Renames {
		n += v
	}
	return n
}

// atomSet collects the atom names in a residue.
func atomSet(g pdbrec.Group) map[string]bool {
	set := make(map[string]bool, len(g))
	for _, r := range g {
		set[r.AtomID] = true
	}
	return set
}

// ClassifyHis decides the protonation state from the atom names of a
// histidine. HD1 on its own and no ring hydrogen at all both give HID.
func ClassifyHis(atoms map[string]bool) HisState {
	switch {
	case atoms[atHE2] && atoms[atHD1]:
		return HIP
	case atoms[atHE2]:
		return HIE
	}
	return HID
}

// newName decides the new residue name, or "" to leave it alone.
// It must be called before any atom is relabelled.
func newName(g pdbrec.Group) string {
	switch g.ResName() {
	case "HIS":
		return ClassifyHis(atomSet(g)).String()
	case "GLU":
		if atomSet(g)[atHE2] {
			return "GLH"
		}
	case "ASP":
		if atomSet(g)[atHD2] {
			return "ASH"
		}
	}
	return ""
}

// Fix applies the rules to one residue, in place. Empty and TER
// groups are left alone.
func Fix(g pdbrec.Group) Change {
	if len(g) == 0 || g.IsTer() {
		return Change{}
	}
	c := Change{OldName: g.ResName(), NewName: newName(g)}
	for i := range g {
		if c.NewName != "" {
			g[i].ResName = c.NewName
		}
		switch g[i].AtomID {
		case at1OCT:
			g[i].AtomID = atOC1
			c.NOC1++
		case at2OCT:
			g[i].AtomID = atOC2
			c.NOC2++
		}
	}
	return c
}

// Apply runs Fix over every residue of the document in order.
func Apply(doc *pdbrec.Document) Report {
	rep := newReport()
	for _, g := range doc.Groups {
		if len(g) == 0 || g.IsTer() {
			continue
		}
		rep.NResidue++
		c := Fix(g)
		if c.Renamed() {
			rep.Renames[c.NewName]++
		}
		rep.NOC1 += c.NOC1
		rep.NOC2 += c.NOC2
	}
	return rep
}
