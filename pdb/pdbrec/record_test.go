package pdbrec_test

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/andrew-torda/pdbclean/pdb/pdbrec"
)

const hisLine = "ATOM      1  N   HIS A  10      11.104   6.134  -6.504  1.00 20.00           N  "

func TestDecodeAtom(t *testing.T) {
	rec, ok, err := Decode(hisLine, 1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, Record{
		Kind:       Atom,
		Serial:     1,
		AtomID:     " N  ",
		ResName:    "HIS",
		ChainID:    "A",
		ResSeq:     10,
		X:          11.104,
		Y:          6.134,
		Z:          -6.504,
		Occupancy:  1.0,
		TempFactor: 20.0,
		Element:    "N",
	}, rec)
}

func TestDecodeHetatmCharge(t *testing.T) {
	line := "HETATM    8 1OCT GLU B  12      -1.250  -2.250  -3.250  0.50  9.25           O1-"
	rec, ok, err := Decode(line, 1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, HetAtom, rec.Kind)
	assert.Equal(t, "1OCT", rec.AtomID)
	assert.Equal(t, "O", rec.Element)
	assert.Equal(t, "1-", rec.Charge)
}

func TestDecodeTer(t *testing.T) {
	for _, line := range []string{"TER", "TER      10      HIS A  10", "TER\r"} {
		rec, ok, err := Decode(line, 1)
		require.NoError(t, err)
		require.True(t, ok, line)
		assert.Equal(t, Record{Kind: Ter}, rec)
	}
}

func TestDecodeNotARecord(t *testing.T) {
	for _, line := range []string{
		"",
		"END",
		"REMARK   1 nothing here",
		"CRYST1   50.000   50.000   50.000  90.00  90.00  90.00 P 1           1",
		"CONECT    1    2",
		"ANISOU    1  N   HIS A  10     2406   1892   1614    198    519   -328       N",
	} {
		_, ok, err := Decode(line, 1)
		assert.NoError(t, err, line)
		assert.False(t, ok, line)
	}
}

// A blank chain becomes X and a short line gets its element from the
// first character of the atom name, blank included.
func TestDecodeDefaults(t *testing.T) {
	line := "ATOM      5  N   ASP    11       1.000   2.000   3.000  1.00 15.50"
	rec, ok, err := Decode(line, 1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "X", rec.ChainID)
	assert.Equal(t, " ", rec.Element)
	assert.Equal(t, "", rec.Charge)

	line = "ATOM      5 CA   ASP    11       1.000   2.000   3.000  1.00 15.50"
	rec, _, err = Decode(line, 1)
	require.NoError(t, err)
	assert.Equal(t, "C", rec.Element)
}

// A line of exactly 77 characters has a one character element column
// and no charge.
func TestDecodeLen77(t *testing.T) {
	line := hisLine[:77]
	rec, _, err := Decode(line, 1)
	require.NoError(t, err)
	assert.Equal(t, "", rec.Charge)
	assert.Equal(t, " ", rec.Element) // line[76:77] is blank, so falls back to the atom name
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		field string
	}{
		{"serial", "ATOM    x 1  N   HIS A  10      11.104   6.134  -6.504  1.00 20.00           N  ", "serial"},
		{"resseq", "ATOM      1  N   HIS A  1a      11.104   6.134  -6.504  1.00 20.00           N  ", "residue number"},
		{"x", "ATOM      1  N   HIS A  10      11.1x4   6.134  -6.504  1.00 20.00           N  ", "x"},
		{"z", "ATOM      1  N   HIS A  10      11.104   6.134          1.00 20.00           N  ", "z"},
		{"occupancy", "ATOM      1  N   HIS A  10      11.104   6.134  -6.504  one  20.00           N  ", "occupancy"},
		{"short", "ATOM      1  N   HIS A  10      11.104   6.134  -6.504  1.00", "temperature factor"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok, err := Decode(tt.line, 42)
			assert.True(t, ok)
			var merr *MalformedRecordError
			require.True(t, errors.As(err, &merr), "got %v", err)
			assert.Equal(t, 42, merr.Line)
			assert.Equal(t, tt.field, merr.Field)
			assert.Contains(t, err.Error(), "line 42")
			var nerr *strconv.NumError
			assert.True(t, errors.As(err, &nerr))
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "ATOM", Atom.String())
	assert.Equal(t, "HETATM", HetAtom.String())
	assert.Equal(t, "TER", Ter.String())
}
