// 17 Oct 2026

// Package slurp gets a whole PDB file into a string, compressed or not.
// There are two ways to read. Mapping the file avoids one copy of a
// big file, but cannot work on pipes. Streaming works on anything.
package slurp

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/edsrzf/mmap-go"

	"github.com/andrew-torda/pdbclean/pdb/zwrap"
)

// Mode says how to read a file.
type Mode byte

const (
	Mmap Mode = iota
	Stream
)

func (m Mode) String() string {
	if m == Stream {
		return "stream"
	}
	return "mmap"
}

// ParseMode is the inverse of String.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "", "mmap":
		return Mmap, nil
	case "stream":
		return Stream, nil
	}
	return Mmap, fmt.Errorf("read mode %q: want mmap or stream", s)
}

// Stdin is the file name which means standard input. It is always streamed.
const Stdin = "-"

// File reads fname and decompresses it if need be.
func File(fname string, mode Mode) (string, error) {
	if fname == Stdin {
		return FromReader(os.Stdin)
	}
	if mode == Stream {
		fp, err := os.Open(fname)
		if err != nil {
			return "", err
		}
		defer fp.Close()
		return FromReader(fp)
	}
	return byMmap(fname)
}

// byMmap maps the file. Anything that is not a regular file is
// streamed. Empty files cannot be mapped, so they give an empty string
// without calling mmap.
func byMmap(fname string) (string, error) {
	fp, err := os.Open(fname)
	if err != nil {
		return "", err
	}
	defer fp.Close()
	fi, err := fp.Stat()
	if err != nil {
		return "", err
	}
	if !fi.Mode().IsRegular() { // pipes and devices report size 0
		return FromReader(fp)
	}
	if fi.Size() == 0 {
		return "", nil
	}
	mm, err := mmap.Map(fp, mmap.RDONLY, 0)
	if err != nil {
		return "", err
	}
	defer mm.Unmap()
	b, err := zwrap.Bytes(mm)
	if err != nil {
		return "", err
	}
	return string(b), nil // copies, so safe after Unmap
}

// FromReader reads everything from r. The caller still owns r and must
// close it.
func FromReader(r io.Reader) (string, error) {
	zr, err := zwrap.WrapMaybe(io.NopCloser(r))
	if err != nil {
		return "", err
	}
	defer zr.Close()
	var sb strings.Builder
	if _, err := io.Copy(&sb, zr); err != nil {
		return "", err
	}
	return sb.String(), nil
}
