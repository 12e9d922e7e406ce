// 17 Oct 2026

package pdbclean

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/andrew-torda/pdbclean/pdb/pdbrec"
	"github.com/andrew-torda/pdbclean/pdb/resfix"
	"github.com/andrew-torda/pdbclean/pdb/slurp"
)

// Options are the settings for one conversion.
type Options struct {
	Build    pdbrec.BuildOptions
	Layout   pdbrec.Layout
	ReadMode slurp.Mode
}

// DefaultOptions matches config.Default.
func DefaultOptions() Options {
	return Options{Build: pdbrec.DefaultBuildOptions(), Layout: pdbrec.LayoutLegacy}
}

// Result is what a conversion did.
type Result struct {
	Doc    *pdbrec.Document
	Report resfix.Report
}

// NRecord is the number of ATOM and HETATM records.
func (r *Result) NRecord() int { return len(r.Doc.Atoms()) }

// Clean builds the document and applies the renaming rules, but writes
// nothing.
func Clean(text string, opts Options) (*Result, error) {
	doc, err := pdbrec.Build(text, opts.Build)
	if err != nil {
		return nil, err
	}
	return &Result{Doc: doc, Report: resfix.Apply(doc)}, nil
}

// Convert is Clean followed by writing to w.
func Convert(text string, w io.Writer, opts Options) (*Result, error) {
	res, err := Clean(text, opts)
	if err != nil {
		return nil, err
	}
	if err := pdbrec.Write(w, res.Doc, opts.Layout); err != nil {
		return nil, err
	}
	return res, nil
}

// ReadInput gets the text of a file, which may be gzipped.
func ReadInput(in string, mode slurp.Mode) (string, error) {
	text, err := slurp.File(in, mode)
	if err != nil {
		return "", fmt.Errorf("cannot read %s: %w", in, err)
	}
	return text, nil
}

// ConvertFile reads in and writes out. If anything goes wrong, out is
// not touched.
func ConvertFile(in, out string, opts Options) (*Result, error) {
	text, err := ReadInput(in, opts.ReadMode)
	if err != nil {
		return nil, err
	}
	res, err := Clean(text, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", in, err)
	}
	if err := writeAtomic(out, res.Doc, opts.Layout); err != nil {
		return nil, err
	}
	return res, nil
}

// writeAtomic writes to a temporary file next to fname, then renames
// it. Readers see the old file or the complete new one.
func writeAtomic(fname string, doc *pdbrec.Document, layout pdbrec.Layout) error {
	dir, base := filepath.Split(fname)
	if dir == "" {
		dir = "."
	}
	fp, err := os.CreateTemp(dir, "."+base+".tmp*")
	if err != nil {
		return fmt.Errorf("cannot write %s: %w", fname, err)
	}
	tmpName := fp.Name()
	if err := writeTo(fp, doc, layout); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("cannot write %s: %w", fname, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, fname); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("cannot write %s: %w", fname, err)
	}
	return nil
}

// writeTo writes the document and always closes wc. The first error wins.
func writeTo(wc io.WriteCloser, doc *pdbrec.Document, layout pdbrec.Layout) error {
	err := pdbrec.Write(wc, doc, layout)
	if e := wc.Close(); err == nil {
		err = e
	}
	return err
}

// OutName is where batch mode puts the result for in. A trailing .gz
// is dropped, since we always write plain text.
func OutName(dir, in string) string {
	base := strings.TrimSuffix(filepath.Base(in), ".gz")
	return filepath.Join(dir, base)
}

// isMalformed says if err comes from bad input rather than bad I/O.
func isMalformed(err error) bool {
	var merr *pdbrec.MalformedRecordError
	return errors.As(err, &merr) || errors.Is(err, pdbrec.ErrMissingHeader)
}
