package table

import (
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"
)

const peopleCSV = "name,age\nAlice,30\nBob,25\nCarol,30\n"

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestLoad_WellFormed(t *testing.T) {
	path := writeFile(t, "people.csv", []byte(peopleCSV))

	got, err := Load(path)
	require.NoError(t, err)

	want := &Table{
		Columns: []string{"name", "age"},
		Rows: [][]string{
			{"Alice", "30"},
			{"Bob", "25"},
			{"Carol", "30"},
		},
	}
	assert.Equal(t, want, got)
	assert.Equal(t, 3, got.Len())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFileNotReadable)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_Directory(t *testing.T) {
	_, err := Load(t.TempDir())
	assert.ErrorIs(t, err, ErrFileNotReadable)
}

func TestLoad_Malformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty file", ""},
		{"unterminated quote", "a,b\n\"x,1\n"},
		{"bare quote", "a,b\nx\"y,1\n"},
		{"too many fields", "a,b\n1,2,3\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "bad.csv", []byte(tt.data))
			_, err := Load(path)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrParse)
		})
	}
}

func TestRead_PadsShortRows(t *testing.T) {
	got, err := Read(strings.NewReader("a,b,c\n1\n1,2\n"))
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1", "", ""}, {"1", "2", ""}}, got.Rows)
}

func TestRead_HeaderOnly(t *testing.T) {
	got, err := Read(strings.NewReader("a,b\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got.Columns)
	assert.Zero(t, got.Len())
}

func TestRead_StripsBOM(t *testing.T) {
	got, err := Read(strings.NewReader("\ufeff\"name\",age\nAlice,30\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "age"}, got.Columns)
}

func TestRead_QuotedFields(t *testing.T) {
	got, err := Read(strings.NewReader("name,note\n\"Smith, Jane\",\"said \"\"hi\"\"\"\n"))
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Smith, Jane", `said "hi"`}}, got.Rows)
}

func TestLoad_Compressed(t *testing.T) {
	var gz bytes.Buffer
	gw := gzip.NewWriter(&gz)
	_, err := gw.Write([]byte(peopleCSV))
	require.NoError(t, err)
	require.NoError(t, gw.Close())

	var xzBuf bytes.Buffer
	xw, err := xz.NewWriter(&xzBuf)
	require.NoError(t, err)
	_, err = xw.Write([]byte(peopleCSV))
	require.NoError(t, err)
	require.NoError(t, xw.Close())

	// Detection is by content, so a misleading extension still loads.
	for name, data := range map[string][]byte{
		"people.csv.gz": gz.Bytes(),
		"people.csv.xz": xzBuf.Bytes(),
		"people.csv":    gz.Bytes(),
	} {
		t.Run(name, func(t *testing.T) {
			got, err := Load(writeFile(t, name, data))
			require.NoError(t, err)
			assert.Equal(t, []string{"name", "age"}, got.Columns)
			assert.Equal(t, 3, got.Len())
		})
	}
}

func TestExport_RoundTrip(t *testing.T) {
	src := writeFile(t, "people.csv", []byte(peopleCSV))
	loaded, err := Load(src)
	require.NoError(t, err)

	dst := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, Export(loaded, dst))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, peopleCSV, string(data))
}

func TestExport_Compressed(t *testing.T) {
	loaded, err := Read(strings.NewReader(peopleCSV))
	require.NoError(t, err)

	for _, name := range []string{"out.csv.gz", "out.csv.xz"} {
		t.Run(name, func(t *testing.T) {
			dst := filepath.Join(t.TempDir(), name)
			require.NoError(t, Export(loaded, dst))

			f, err := os.Open(dst)
			require.NoError(t, err)
			defer f.Close()

			plain, compression, err := decompress(f)
			require.NoError(t, err)
			assert.Equal(t, CompressionForPath(name), compression)

			back, err := Read(plain)
			require.NoError(t, err)
			assert.Equal(t, loaded, back)
		})
	}
}

func TestExport_UnsupportedCompression(t *testing.T) {
	loaded, err := Read(strings.NewReader(peopleCSV))
	require.NoError(t, err)

	dst := filepath.Join(t.TempDir(), "out.csv.bz2")
	err = Export(loaded, dst)
	assert.ErrorIs(t, err, ErrUnsupportedCompression)
	assert.NoFileExists(t, dst)
}

func TestExport_NotWritable(t *testing.T) {
	loaded, err := Read(strings.NewReader(peopleCSV))
	require.NoError(t, err)

	dst := filepath.Join(t.TempDir(), "missing", "out.csv")
	err = Export(loaded, dst)
	assert.ErrorIs(t, err, ErrFileNotWritable)
	assert.NoFileExists(t, dst)
}

func TestExport_LeavesNoTempFiles(t *testing.T) {
	loaded, err := Read(strings.NewReader(peopleCSV))
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, Export(loaded, filepath.Join(dir, "out.csv")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "out.csv", entries[0].Name())
}

func TestExport_ReplaceKeepsMode(t *testing.T) {
	loaded, err := Read(strings.NewReader(peopleCSV))
	require.NoError(t, err)

	dst := filepath.Join(t.TempDir(), "precious.csv")
	require.NoError(t, os.WriteFile(dst, []byte("keep,me\n1,2\n"), 0o600))
	require.NoError(t, os.Chmod(dst, 0o600))

	require.NoError(t, Export(loaded, dst))

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, peopleCSV, string(data))
}

func TestExport_NewFileMode(t *testing.T) {
	loaded, err := Read(strings.NewReader(peopleCSV))
	require.NoError(t, err)

	dst := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, Export(loaded, dst))

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}
