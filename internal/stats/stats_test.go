package stats

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.json")
	s := NewStore(path)

	require.NoError(t, s.RecordCompress(100, 40))
	require.NoError(t, s.RecordCompress(50, 20))
	require.NoError(t, s.RecordDecompress(40, 100))

	got := s.Load()
	assert.Equal(t, 2, got.Compressed)
	assert.Equal(t, 1, got.Decompressed)
	assert.Equal(t, int64(190), got.BytesIn)
	assert.Equal(t, int64(160), got.BytesOut)
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.json")
	s := NewStore(path)
	assert.Equal(t, Counters{}, s.Load())
}

func TestReset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.json")
	s := NewStore(path)
	require.NoError(t, s.RecordCompress(10, 5))
	require.NoError(t, s.Reset())
	assert.Equal(t, Counters{}, s.Load())
}
