package table

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"
)

// Compression is the container format wrapped around a CSV stream.
type Compression int

const (
	CompressionNone Compression = iota
	CompressionGzip
	CompressionBzip2
	CompressionXZ
)

func (c Compression) String() string {
	switch c {
	case CompressionGzip:
		return "gzip"
	case CompressionBzip2:
		return "bzip2"
	case CompressionXZ:
		return "xz"
	default:
		return "none"
	}
}

var (
	gzipMagic  = []byte{0x1f, 0x8b}
	bzip2Magic = []byte{0x42, 0x5a, 0x68}
	xzMagic    = []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}
)

// DetectCompression sniffs the magic bytes at the head of br without
// consuming them.
func DetectCompression(br *bufio.Reader) Compression {
	// XZ has the longest magic (6 bytes). A short file simply yields fewer bytes.
	header, _ := br.Peek(len(xzMagic))

	switch {
	case bytes.HasPrefix(header, gzipMagic):
		return CompressionGzip
	case bytes.HasPrefix(header, bzip2Magic):
		return CompressionBzip2
	case bytes.HasPrefix(header, xzMagic):
		return CompressionXZ
	}
	return CompressionNone
}

// CompressionForPath picks the output format from the file extension.
func CompressionForPath(path string) Compression {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz", ".gzip":
		return CompressionGzip
	case ".bz2":
		return CompressionBzip2
	case ".xz":
		return CompressionXZ
	}
	return CompressionNone
}

// decompress returns a reader yielding the plain CSV bytes of r.
func decompress(r io.Reader) (io.Reader, Compression, error) {
	br := bufio.NewReader(r)
	compression := DetectCompression(br)

	switch compression {
	case CompressionGzip:
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, compression, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		return gz, compression, nil
	case CompressionBzip2:
		return bzip2.NewReader(br), compression, nil
	case CompressionXZ:
		xr, err := xz.NewReader(br)
		if err != nil {
			return nil, compression, fmt.Errorf("failed to create xz reader: %w", err)
		}
		return xr, compression, nil
	}
	return br, compression, nil
}

// compress wraps w so bytes written are encoded as c. Closing the returned
// writer flushes the encoder but leaves w open.
func compress(w io.Writer, c Compression) (io.WriteCloser, error) {
	switch c {
	case CompressionNone:
		return nopWriteCloser{w}, nil
	case CompressionGzip:
		return gzip.NewWriter(w), nil
	case CompressionXZ:
		xw, err := xz.NewWriter(w)
		if err != nil {
			return nil, fmt.Errorf("failed to create xz writer: %w", err)
		}
		return xw, nil
	}
	return nil, fmt.Errorf("%w: cannot write %s", ErrUnsupportedCompression, c)
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
