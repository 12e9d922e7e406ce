package pdbrec_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/andrew-torda/pdbclean/pdb/pdbrec"
	"github.com/andrew-torda/pdbclean/pdb/pdbtest"
)

// groupSeqs gives the residue numbers of each group, -1 for TER.
// Empty groups are skipped, as they are when writing.
func groupSeqs(doc *Document) []int {
	var r []int
	for _, g := range doc.Groups {
		switch {
		case len(g) == 0:
		case g.IsTer():
			r = append(r, -1)
		default:
			r = append(r, g[0].ResSeq)
		}
	}
	return r
}

func TestBuildSample(t *testing.T) {
	doc, err := Build(pdbtest.Sample, DefaultBuildOptions())
	require.NoError(t, err)
	assert.Equal(t, "my-protein by supernova", doc.Title)
	assert.Equal(t, "CRYST1   50.000   50.000   50.000  90.00  90.00  90.00 P 1           1", doc.Cryst)
	assert.Equal(t, []int{10, -1, 11, 12}, groupSeqs(doc))
	assert.Len(t, doc.Groups, 5) // the ASP after TER flushes an empty group
	assert.Len(t, doc.Groups[2], 0)
	assert.Len(t, doc.Groups[0], 4)
	assert.Equal(t, 3, doc.NResidue())
	assert.Len(t, doc.Atoms(), 9)
	assert.Equal(t, []string{"A", "X", "B"}, doc.Chains())
}

// The old way seeds from line 3 and forgets the glutamate at the end,
// since nothing comes after it to push it out.
func TestBuildLegacyDropsLastResidue(t *testing.T) {
	doc, err := Build(pdbtest.Sample, LegacyBuildOptions())
	require.NoError(t, err)
	assert.Equal(t, []int{10, -1, 11}, groupSeqs(doc))
}

// Every group which is not a TER has one residue number.
func TestBuildGroupsShareResSeq(t *testing.T) {
	text := pdbtest.Join(pdbtest.Header,
		pdbtest.Residue(1, "ALA", "A", 1, " N  ", " CA ", " C  "),
		pdbtest.Residue(4, "GLY", "A", 2, " N  ", " CA "),
		pdbtest.Residue(6, "ALA", "A", 1, " N  "), // number goes back down
		pdbtest.Lines("TER"),
		pdbtest.Residue(7, "SER", "B", 2, " N  ", " OG "),
	)
	for _, opts := range []BuildOptions{DefaultBuildOptions(), LegacyBuildOptions()} {
		doc, err := Build(text, opts)
		require.NoError(t, err)
		for _, g := range doc.Groups {
			if len(g) == 0 || g.IsTer() {
				continue
			}
			for _, r := range g {
				assert.Equal(t, g[0].ResSeq, r.ResSeq)
				assert.Equal(t, g[0].ResName, r.ResName)
			}
		}
	}
}

func TestBuildChainTerminator(t *testing.T) {
	text := pdbtest.Join(pdbtest.Header,
		pdbtest.Residue(1, "ALA", "A", 10, " N  ", " CA "),
		pdbtest.Lines("TER"),
		pdbtest.Residue(3, "GLY", "B", 11, " N  "),
		pdbtest.Lines("TER", "END"),
	)
	doc, err := Build(text, DefaultBuildOptions())
	require.NoError(t, err)
	assert.Equal(t, []int{10, -1, 11, -1}, groupSeqs(doc))
	assert.Equal(t, Group{{Kind: Ter}}, doc.Groups[1])
	assert.Equal(t, "TER\n", doc.String()[len(doc.String())-4:])
}

// TER straight after TER flushes an empty residue. It stays in the
// document, but writes nothing.
func TestBuildEmptyGroupKept(t *testing.T) {
	text := pdbtest.Join(pdbtest.Header,
		pdbtest.Residue(1, "ALA", "A", 10, " N  "),
		pdbtest.Lines("TER", "TER"),
	)
	doc, err := Build(text, DefaultBuildOptions())
	require.NoError(t, err)
	require.Len(t, doc.Groups, 4)
	assert.Len(t, doc.Groups[2], 0)
	assert.True(t, doc.Groups[3].IsTer())
	assert.Equal(t, 1, doc.NResidue())
}

// After a TER the cursor is not reset. A new chain starting with the
// same residue number goes straight into the emptied pending list and
// no empty group is flushed in front of it.
func TestBuildTerKeepsCursor(t *testing.T) {
	text := pdbtest.Join(pdbtest.Header,
		pdbtest.Residue(1, "ALA", "A", 10, " N  "),
		pdbtest.Lines("TER"),
		pdbtest.Residue(2, "ALA", "B", 10, " N  "),
		pdbtest.Residue(3, "GLY", "B", 11, " N  "),
	)
	doc, err := Build(text, DefaultBuildOptions())
	require.NoError(t, err)
	assert.Equal(t, []int{10, -1, 10, 11}, groupSeqs(doc))
	assert.Len(t, doc.Groups, 4)
	assert.Equal(t, "B", doc.Groups[2][0].ChainID)
}

func TestTitle(t *testing.T) {
	tests := []struct {
		first string
		want  string
	}{
		{"REMARK  my-protein", "my-protein by supernova"},
		{"REMARK   cleaned by supernova", "cleaned by supernova"},
		{"REMARK   my-protein   \r", "my-protein by supernova"},
		{"REMARK", " by supernova"},
		{"REMARK      ", " by supernova"},
		{"", " by supernova"},
	}
	for _, tt := range tests {
		doc, err := Build(tt.first+"\n", DefaultBuildOptions())
		require.NoError(t, err)
		assert.Equal(t, tt.want, doc.Title, tt.first)
	}
}

func TestEmptyTitleWritten(t *testing.T) {
	doc, err := Build("REMARK\nCRYST1 1\n", DefaultBuildOptions())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(doc.String(), "REMARK  by supernova\n"), doc.String())
}

func TestTitleSuffixOption(t *testing.T) {
	opts := DefaultBuildOptions()
	opts.TitleSuffix = "for gromacs"
	doc, err := Build("REMARK  lysozyme\n", opts)
	require.NoError(t, err)
	assert.Equal(t, "lysozyme for gromacs", doc.Title)
}

// Only the first CRYST1 line counts.
func TestCrystFirst(t *testing.T) {
	text := pdbtest.Join(pdbtest.Lines("REMARK  x",
		"CRYST1   10.000   10.000   10.000  90.00  90.00  90.00 P 1           1  ",
		"CRYST1   20.000   20.000   20.000  90.00  90.00  90.00 P 1           1",
	))
	doc, err := Build(text, DefaultBuildOptions())
	require.NoError(t, err)
	assert.Equal(t, "CRYST1   10.000   10.000   10.000  90.00  90.00  90.00 P 1           1", doc.Cryst)

	doc, err = Build("REMARK  x\n", DefaultBuildOptions())
	require.NoError(t, err)
	assert.Equal(t, "", doc.Cryst)
}

func TestBuildMissingHeader(t *testing.T) {
	short := pdbtest.Join(pdbtest.Lines("REMARK  x", "CRYST1"))
	_, err := Build(short, LegacyBuildOptions())
	assert.True(t, errors.Is(err, ErrMissingHeader), "got %v", err)

	// Line 3 is there, but is a remark.
	noAtom := pdbtest.Join(pdbtest.Header, pdbtest.Lines("REMARK 99 surprise"),
		pdbtest.Residue(1, "ALA", "A", 1, " N  "))
	_, err = Build(noAtom, LegacyBuildOptions())
	assert.True(t, errors.Is(err, ErrMissingHeader), "got %v", err)
	var merr *MalformedRecordError
	assert.True(t, errors.As(err, &merr))

	// The default does not care.
	doc, err := Build(noAtom, DefaultBuildOptions())
	require.NoError(t, err)
	assert.Equal(t, []int{1}, groupSeqs(doc))
}

func TestBuildMalformedAborts(t *testing.T) {
	text := pdbtest.Join(pdbtest.Header,
		pdbtest.Residue(1, "ALA", "A", 1, " N  "),
		pdbtest.Lines("ATOM      2  CA  ALA A   1       x.000   2.000   3.000  1.00 15.50"),
	)
	doc, err := Build(text, DefaultBuildOptions())
	assert.Nil(t, doc)
	var merr *MalformedRecordError
	require.True(t, errors.As(err, &merr))
	assert.Equal(t, 5, merr.Line)
	assert.Equal(t, "x", merr.Field)
}

func TestSeedStrategyString(t *testing.T) {
	assert.Equal(t, "first-record", SeedFirstRecord.String())
	assert.Equal(t, "fixed-line", SeedFixedLine.String())
	s, err := ParseSeed("fixed-line")
	require.NoError(t, err)
	assert.Equal(t, SeedFixedLine, s)
	s, err = ParseSeed("")
	require.NoError(t, err)
	assert.Equal(t, SeedFirstRecord, s)
	_, err = ParseSeed("line 3")
	assert.Error(t, err)
}
