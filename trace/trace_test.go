package trace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTrace(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trace.txt")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestReaderParsesValidLines(t *testing.T) {
	path := writeTrace(t, "r 0x00\nw 0x10\nr 20\n")
	r, closer, err := Open(path)
	require.NoError(t, err)
	defer closer.Close()

	a, ok := r.Next()
	require.True(t, ok)
	assert.Equal(t, Access{Op: Read, Address: 0x00}, a)

	a, ok = r.Next()
	require.True(t, ok)
	assert.Equal(t, Access{Op: Write, Address: 0x10}, a)

	a, ok = r.Next()
	require.True(t, ok)
	assert.Equal(t, Access{Op: Read, Address: 0x20}, a)

	_, ok = r.Next()
	assert.False(t, ok)
}

func TestReaderSkipsBlankAndMalformedLines(t *testing.T) {
	path := writeTrace(t, "\n   \nr 0x00\nbogus\nx 0x10\nw 0x20\n")
	r, closer, err := Open(path)
	require.NoError(t, err)
	defer closer.Close()

	a, ok := r.Next()
	require.True(t, ok)
	assert.Equal(t, Access{Op: Read, Address: 0x00}, a)

	a, ok = r.Next()
	require.True(t, ok)
	assert.Equal(t, Access{Op: Write, Address: 0x20}, a)

	_, ok = r.Next()
	assert.False(t, ok)
}

func TestOpenReturnsErrorOnMissingFile(t *testing.T) {
	_, _, err := Open(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestParseLineHexWithAndWithoutPrefix(t *testing.T) {
	a, err := parseLine("r 0xFF")
	require.NoError(t, err)
	assert.Equal(t, uint64(0xFF), a.Address)

	a, err = parseLine("r FF")
	require.NoError(t, err)
	assert.Equal(t, uint64(0xFF), a.Address)
}
