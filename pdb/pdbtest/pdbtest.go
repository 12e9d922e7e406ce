// Package pdbtest has small PDB files and line builders shared by the
// tests of the pdb packages and the command.
package pdbtest

import (
	"fmt"
	"strings"
)

// AtomLine builds an ATOM record in the standard columns. kind is
// "ATOM" or "HETATM". Element goes in 77-78 and charge in 79-80.
func AtomLine(kind string, serial int, atomID, resName, chain string, resSeq int,
	x, y, z float64, elem string) string {
	const f = "%-6s%5d %-4s %-3s %-1s%4d    %8.3f%8.3f%8.3f%6.2f%6.2f          %2s  "
	return fmt.Sprintf(f, kind, serial, atomID, resName, chain, resSeq, x, y, z, 1.0, 20.0, elem)
}

// Residue makes one line per atom ID, all in the same residue, with
// made up coordinates. Serial numbers start at serial.
func Residue(serial int, resName, chain string, resSeq int, atomIDs ...string) []string {
	lines := make([]string, len(atomIDs))
	for i, id := range atomIDs {
		f := float64(serial + i)
		lines[i] = AtomLine("ATOM", serial+i, id, resName, chain, resSeq, f, f+0.5, -f, strings.TrimSpace(id)[:1])
	}
	return lines
}

// Join puts lines together with a newline after each one.
func Join(parts ...[]string) string {
	var b strings.Builder
	for _, p := range parts {
		for _, l := range p {
			b.WriteString(l)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Lines is a shorthand for building a []string argument to Join.
func Lines(l ...string) []string { return l }

// Header is a title, a second remark and a CRYST1 line. The first atom
// of a file that starts with Header is on line 3 (counted from zero),
// which is where the old program looked for it.
var Header = Lines(
	"REMARK  my-protein",
	"REMARK   2 prepared by hand",
	"CRYST1   50.000   50.000   50.000  90.00  90.00  90.00 P 1           1",
)

// Sample is a two chain file. The first chain is a doubly protonated
// histidine followed by TER. The second chain has a protonated
// aspartate and a glutamate with a terminal carboxylate in DS naming
// and no TER after it.
var Sample = Join(Header,
	Lines(
		"ATOM      1  N   HIS A  10      11.104   6.134  -6.504  1.00 20.00           N  ",
		"ATOM      2  CA  HIS A  10      11.639   6.071  -5.147  1.00 20.00           C  ",
		"ATOM      3  HD1 HIS A  10      12.100   4.000  -4.000  1.00 20.00           H  ",
		"ATOM      4  HE2 HIS A  10      13.200   5.500  -3.900  1.00 20.00           H  ",
		"TER",
		"ATOM      5  N   ASP    11       1.000   2.000   3.000  1.00 15.50           N  ",
		"ATOM      6  HD2 ASP    11       1.500   2.500   3.500  1.00 15.50           H  ",
		"HETATM    7  N   GLU B  12      -1.000  -2.000  -3.000  0.50  9.25           N  ",
		"HETATM    8 1OCT GLU B  12      -1.250  -2.250  -3.250  0.50  9.25           O1-",
		"HETATM    9 2OCT GLU B  12      -1.500  -2.500  -3.500  0.50  9.25           O  ",
		"END",
	))
