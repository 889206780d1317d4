package file

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maidsafe-archive/safe-nfs-go/datamap"
	"github.com/maidsafe-archive/safe-nfs-go/netid"
	"github.com/maidsafe-archive/safe-nfs-go/wire"
)

func TestNewFileIsEmpty(t *testing.T) {
	f, err := New("a.txt", nil)
	require.NoError(t, err)
	assert.True(t, f.DataMap.Empty())
	assert.EqualValues(t, 0, f.Metadata.Size)
}

func TestFileRoundTripWithChunks(t *testing.T) {
	f, err := New("a.txt", []byte("meta"))
	require.NoError(t, err)
	loc, err := netid.NewNetworkName()
	require.NoError(t, err)
	f.DataMap = datamap.DataMap{Chunks: []datamap.Chunk{
		{Location: loc, Offset: 0, Size: 10},
	}}
	f.Metadata.SetSize(10)

	var acc wire.Accumulator
	f.Encode(&acc)
	buf, err := acc.Result()
	require.NoError(t, err)

	c := wire.NewConsumer(buf)
	got := Decode(c)
	require.NoError(t, c.Err())
	assert.True(t, c.Done())

	assert.Equal(t, f.Metadata.ID, got.Metadata.ID)
	assert.Len(t, got.DataMap.Chunks, 1)
	assert.Equal(t, loc, got.DataMap.Chunks[0].Location)
	assert.EqualValues(t, 10, got.DataMap.Chunks[0].Size)
}

func TestEmptyFileRoundTrip(t *testing.T) {
	f, err := New("empty.txt", nil)
	require.NoError(t, err)

	var acc wire.Accumulator
	f.Encode(&acc)
	buf, err := acc.Result()
	require.NoError(t, err)

	c := wire.NewConsumer(buf)
	got := Decode(c)
	require.NoError(t, c.Err())
	assert.True(t, got.DataMap.Empty())
}
