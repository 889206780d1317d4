package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTripMixedFields(t *testing.T) {
	var acc Accumulator
	acc.Byte(7)
	acc.Bool(true)
	acc.Bytes([]byte("hello"))
	acc.String("world")
	acc.Uint64(1 << 40)
	acc.Int64(-12345)

	buf, err := acc.Result()
	require.NoError(t, err)

	c := NewConsumer(buf)
	assert.EqualValues(t, 7, c.Byte())
	assert.True(t, c.Bool())
	assert.Equal(t, []byte("hello"), c.Bytes())
	assert.Equal(t, "world", c.String())
	assert.EqualValues(t, 1<<40, c.Uint64())
	assert.EqualValues(t, -12345, c.Int64())
	require.NoError(t, c.Err())
	assert.True(t, c.Done())
}

func TestConsumerErrorsOnTruncatedInput(t *testing.T) {
	var acc Accumulator
	acc.Bytes([]byte("short"))
	buf, err := acc.Result()
	require.NoError(t, err)

	c := NewConsumer(buf[:len(buf)-3])
	c.Bytes()
	assert.Error(t, c.Err())
}

func TestEmptyBytesRoundTrip(t *testing.T) {
	var acc Accumulator
	acc.Bytes(nil)
	buf, err := acc.Result()
	require.NoError(t, err)

	c := NewConsumer(buf)
	assert.Empty(t, c.Bytes())
	require.NoError(t, c.Err())
}
