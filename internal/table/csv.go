package table

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

var utf8BOM = []byte{0xef, 0xbb, 0xbf}

// Read parses comma-delimited CSV from r. The first record is the header.
func Read(r io.Reader) (*Table, error) {
	br := bufio.NewReader(r)
	if head, _ := br.Peek(len(utf8BOM)); bytes.Equal(head, utf8BOM) {
		br.Discard(len(utf8BOM))
	}

	reader := csv.NewReader(br)
	// Width is checked against the header below so short rows can be padded.
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: no columns to parse", ErrParse)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	t := &Table{Columns: NormalizeHeaders(header)}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParse, err)
		}

		row, err := align(record, len(t.Columns))
		if err != nil {
			line, _ := reader.FieldPos(0)
			return nil, fmt.Errorf("%w: line %d: %v", ErrParse, line, err)
		}
		t.Rows = append(t.Rows, row)
	}

	return t, nil
}

// Write serializes t as CSV: the header row, then every data row.
func Write(w io.Writer, t *Table) error {
	writer := csv.NewWriter(w)
	if err := writer.WriteAll(t.Records()); err != nil {
		return fmt.Errorf("error writing CSV record: %w", err)
	}
	return nil
}

// Load reads the CSV file at path. Gzip, bzip2 and xz files are decompressed
// transparently.
func Load(path string) (*Table, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFileNotReadable, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrFileNotReadable, path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFileNotReadable, err)
	}
	defer file.Close()

	plain, _, err := decompress(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	t, err := Read(plain)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", filepath.Base(path), err)
	}
	return t, nil
}

// Export writes t to path, compressing by extension (.gz, .xz). The data is
// staged in a temporary file next to path and renamed into place, so a failed
// export leaves no partial file behind. A replaced file keeps its permissions.
func Export(t *Table, path string) (err error) {
	compression := CompressionForPath(path)
	if compression == CompressionBzip2 {
		return fmt.Errorf("%w: cannot write %s", ErrUnsupportedCompression, compression)
	}

	perm := os.FileMode(0o644)
	if info, statErr := os.Stat(path); statErr == nil && info.Mode().IsRegular() {
		perm = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFileNotWritable, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	out, err := compress(tmp, compression)
	if err != nil {
		return err
	}
	if err = Write(out, t); err != nil {
		return fmt.Errorf("%w: %w", ErrFileNotWritable, err)
	}
	if err = out.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrFileNotWritable, err)
	}
	if err = tmp.Chmod(perm); err != nil {
		return fmt.Errorf("%w: %w", ErrFileNotWritable, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrFileNotWritable, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w: %w", ErrFileNotWritable, err)
	}
	return nil
}
