// Package zwrap looks at the first bytes of a source and, if it is gzipped,
// puts a decompressor in front of it. Close shuts the decompressor, followed
// by the underlying source.
// Detection uses a peek, so the source does not have to be able to seek.
// That means it works on an http body or a pipe as well as a file.

package zwrap

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"errors"
	"io"
)

var magic = []byte{0x1f, 0x8b}

// IsGzip says if b starts with the gzip magic number.
func IsGzip(b []byte) bool { return bytes.HasPrefix(b, magic) }

// Reader is what we return. It reads plain text whether or not the
// source was compressed.
type Reader struct {
	src  io.Closer
	zrdr *gzip.Reader // nil if the source is not compressed
	rdr  io.Reader
}

// Compressed says if we are decompressing.
func (r *Reader) Compressed() bool { return r.zrdr != nil }

func (r *Reader) Read(p []byte) (int, error) { return r.rdr.Read(p) }

// Close closes the decompressor, then the source. Both errors are kept.
func (r *Reader) Close() error {
	var ez error
	if r.zrdr != nil {
		ez = r.zrdr.Close()
	}
	return errors.Join(ez, r.src.Close())
}

// Wrap insists the source is compressed.
func Wrap(src io.ReadCloser) (*Reader, error) {
	zrdr, err := gzip.NewReader(src)
	if err != nil {
		return nil, err
	}
	return &Reader{src: src, zrdr: zrdr, rdr: zrdr}, nil
}

// WrapMaybe decides if the source is compressed and only then puts a
// decompressor in front of it. An empty source is not an error.
func WrapMaybe(src io.ReadCloser) (*Reader, error) {
	br := bufio.NewReader(src)
	head, err := br.Peek(len(magic))
	if err != nil && err != io.EOF {
		return nil, err
	}
	if !IsGzip(head) {
		return &Reader{src: src, rdr: br}, nil
	}
	zrdr, err := gzip.NewReader(br)
	if err != nil {
		return nil, err
	}
	return &Reader{src: src, zrdr: zrdr, rdr: zrdr}, nil
}

// Bytes is for data already in memory, like a mapped file. Plain data
// comes back untouched.
func Bytes(b []byte) ([]byte, error) {
	if !IsGzip(b) {
		return b, nil
	}
	zrdr, err := gzip.NewReader(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	defer zrdr.Close()
	return io.ReadAll(zrdr)
}
