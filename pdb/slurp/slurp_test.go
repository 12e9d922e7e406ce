package slurp_test

import (
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrew-torda/pdbclean/brokenio"
	"github.com/andrew-torda/pdbclean/pdb/pdbtest"
	. "github.com/andrew-torda/pdbclean/pdb/slurp"
	"github.com/andrew-torda/pdbclean/pkg/common"
)

func gzFile(t *testing.T, s string) string {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(s))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	fname := filepath.Join(t.TempDir(), "in.pdb.gz")
	require.NoError(t, os.WriteFile(fname, buf.Bytes(), 0o644))
	return fname
}

func TestFile(t *testing.T) {
	plainName, err := common.WrtTemp(pdbtest.Sample)
	require.NoError(t, err)
	defer os.Remove(plainName)
	gzName := gzFile(t, pdbtest.Sample)

	for _, mode := range []Mode{Mmap, Stream} {
		for _, fname := range []string{plainName, gzName} {
			s, err := File(fname, mode)
			require.NoError(t, err, "%s %s", mode, fname)
			assert.Equal(t, pdbtest.Sample, s, "%s %s", mode, fname)
		}
	}
}

func TestEmptyFile(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "empty.pdb")
	require.NoError(t, os.WriteFile(fname, nil, 0o644))
	for _, mode := range []Mode{Mmap, Stream} {
		s, err := File(fname, mode)
		assert.NoError(t, err)
		assert.Empty(t, s)
	}
}

// fifo makes a named pipe and has a goroutine write s into it once.
func fifo(t *testing.T, s string) string {
	fname := filepath.Join(t.TempDir(), "in.fifo")
	require.NoError(t, syscall.Mkfifo(fname, 0o600))
	go func() {
		fp, err := os.OpenFile(fname, os.O_WRONLY, 0)
		if err != nil {
			return
		}
		defer fp.Close()
		fp.WriteString(s)
	}()
	return fname
}

func TestFifo(t *testing.T) {
	for _, mode := range []Mode{Mmap, Stream} {
		s, err := File(fifo(t, pdbtest.Sample), mode)
		require.NoError(t, err, mode)
		assert.Equal(t, pdbtest.Sample, s, mode)
	}
}

func TestEmptyFifo(t *testing.T) {
	for _, mode := range []Mode{Mmap, Stream} {
		s, err := File(fifo(t, ""), mode)
		assert.NoError(t, err, mode)
		assert.Empty(t, s, mode)
	}
}

func TestMissingFile(t *testing.T) {
	for _, mode := range []Mode{Mmap, Stream} {
		_, err := File(filepath.Join(t.TempDir(), "not_there"), mode)
		assert.ErrorIs(t, err, os.ErrNotExist)
	}
}

func TestFromReaderBroken(t *testing.T) {
	r := brokenio.NewReader(strings.NewReader(pdbtest.Sample))
	r.SetFailAfter(100)
	_, err := FromReader(r)
	assert.ErrorIs(t, err, brokenio.ErrBroken)
	assert.False(t, r.Closed(), "the caller closes the reader")
}

func TestParseMode(t *testing.T) {
	for _, m := range []Mode{Mmap, Stream} {
		got, err := ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	m, err := ParseMode("")
	assert.NoError(t, err)
	assert.Equal(t, Mmap, m)
	_, err = ParseMode("carrier pigeon")
	assert.Error(t, err)
}
