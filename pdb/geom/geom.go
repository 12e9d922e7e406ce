// Calculate some simple geometry on the atoms of a document, the centre,
// the box around them, distances and the radius of gyration.
// Coordinates are kept in an n x 3 matrix, one row per atom.

package geom

import (
	"math"

	"github.com/andrew-torda/matrix"

	"github.com/andrew-torda/pdbclean/pdb/pdbrec"
)

type Error string

func (e Error) Error() string { return string(e) }

// ErrNoAtoms comes back from anything that makes no sense without atoms.
const ErrNoAtoms = Error("no atoms")

type Xyz struct{ X, Y, Z float32 }

const (
	ix = iota
	iy
	iz
	ndim
)

// Coords puts the coordinates of every atom in the document into a
// matrix, in file order. TER records have no coordinates.
func Coords(doc *pdbrec.Document) *matrix.FMatrix2d {
	atoms := doc.Atoms()
	mat := matrix.NewFMatrix2d(len(atoms), ndim)
	for i, r := range atoms {
		row := mat.Mat[i]
		row[ix], row[iy], row[iz] = float32(r.X), float32(r.Y), float32(r.Z)
	}
	return mat
}

func rowXyz(row []float32) Xyz { return Xyz{row[ix], row[iy], row[iz]} }

// Centroid is the unweighted mean of the rows.
func Centroid(mat *matrix.FMatrix2d) (Xyz, error) {
	nrow, _ := mat.Size()
	if nrow == 0 {
		return Xyz{}, ErrNoAtoms
	}
	var sx, sy, sz float64
	for _, row := range mat.Mat {
		sx += float64(row[ix])
		sy += float64(row[iy])
		sz += float64(row[iz])
	}
	n := float64(nrow)
	return Xyz{float32(sx / n), float32(sy / n), float32(sz / n)}, nil
}

// BBox gives the lowest and highest corner of the box holding every atom.
func BBox(mat *matrix.FMatrix2d) (lo, hi Xyz, err error) {
	if nrow, _ := mat.Size(); nrow == 0 {
		return lo, hi, ErrNoAtoms
	}
	lo = rowXyz(mat.Mat[0])
	hi = lo
	for _, row := range mat.Mat[1:] {
		p := rowXyz(row)
		lo.X, hi.X = min(lo.X, p.X), max(hi.X, p.X)
		lo.Y, hi.Y = min(lo.Y, p.Y), max(hi.Y, p.Y)
		lo.Z, hi.Z = min(lo.Z, p.Z), max(hi.Z, p.Z)
	}
	return lo, hi, nil
}

// xyzDiff gets the difference of two vectors
func xyzDiff(start, end Xyz) Xyz {
	return Xyz{end.X - start.X, end.Y - start.Y, end.Z - start.Z}
}

// xyzLen2 gives us the length squared
func xyzLen2(v Xyz) float32 { return v.X*v.X + v.Y*v.Y + v.Z*v.Z }

// XyzDist is the distance between two points.
func XyzDist(a, b Xyz) float32 {
	return float32(math.Sqrt(float64(xyzLen2(xyzDiff(a, b)))))
}

// Rgyr is the radius of gyration, all atoms having the same mass.
func Rgyr(mat *matrix.FMatrix2d) (float32, error) {
	c, err := Centroid(mat)
	if err != nil {
		return 0, err
	}
	var s float64
	for _, row := range mat.Mat {
		s += float64(xyzLen2(xyzDiff(c, rowXyz(row))))
	}
	nrow, _ := mat.Size()
	return float32(math.Sqrt(s / float64(nrow))), nil
}
