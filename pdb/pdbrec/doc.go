// Package pdbrec reads and writes the old, column based PDB format,
// restricted to what is needed to clean up a protein before handing it
// to gromacs.
//
// A file is turned into a Document. The title comes from the first
// line, the CRYST1 line is kept as it is and the ATOM, HETATM and TER
// records are collected into residue groups. A TER record always gets
// a group of its own. Everything else in the file (remarks, CONECT,
// END, ...) is thrown away.
//
// Columns are the ones from the PDB format description, counted from
// zero, so the residue number lives in line[22:26].
//
// Writing does the reverse. The default layout copies the output of
// the old cleaner byte for byte, including its odd placement of
// the element symbol one column too far right. LayoutStandard puts the
// element and charge where the PDB says they belong.
package pdbrec
