// Package explore profiles a delimited text file the way a first look in a
// notebook would: head, column info, missing rates, unique counts and
// descriptive statistics.
package explore

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
)

var gzipMagic = []byte{0x1f, 0x8b}

// SeparatorFor picks the field separator from the file name: tab for .tsv
// and .tsv.gz, comma otherwise.
func SeparatorFor(path string) rune {
	name := strings.ToLower(filepath.Base(path))
	name = strings.TrimSuffix(name, ".gz")
	if strings.HasSuffix(name, ".tsv") || strings.HasSuffix(name, ".tab") {
		return '\t'
	}
	return ','
}

type readCloser struct {
	io.Reader
	closers []io.Closer
}

func (r *readCloser) Close() error {
	var first error
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Open opens path for reading, transparently decompressing gzip content.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("explore: open %s: %w", path, err)
	}

	br := bufio.NewReaderSize(f, 1<<16)
	head, _ := br.Peek(len(gzipMagic))
	if len(head) == len(gzipMagic) && head[0] == gzipMagic[0] && head[1] == gzipMagic[1] {
		zr, err := gzip.NewReader(br)
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("explore: gzip %s: %w", path, err)
		}
		return &readCloser{Reader: zr, closers: []io.Closer{f, zr}}, nil
	}
	return &readCloser{Reader: br, closers: []io.Closer{f}}, nil
}
