package fast

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestWriter_appends verifies that every write helper appends in order and
// that the fixed-width integers are big-endian.
func TestWriter_appends(t *testing.T) {
	require := require.New(t)

	w := NewWriter(make([]byte, 0, 8))
	w.WriteByte(0xAB)
	w.WriteString("node_0001")
	w.Write([]byte{1, 2})
	w.WriteUint32(0x01020304)
	w.WriteUint64(1)

	exp := []byte{0xAB}
	exp = append(exp, "node_0001"...)
	exp = append(exp, 1, 2)
	exp = append(exp, 1, 2, 3, 4)
	exp = append(exp, 0, 0, 0, 0, 0, 0, 0, 1)

	require.Equal(exp, w.Bytes())
	require.Equal(len(exp), w.Len())
}

// TestWriter_resetKeepsCapacity checks that Reset empties the writer and that
// the next writes reuse the same backing array.
func TestWriter_resetKeepsCapacity(t *testing.T) {
	require := require.New(t)

	w := NewWriter(make([]byte, 0, 64))
	w.WriteString("seed")
	first := w.Bytes()

	w.Reset()
	require.Equal(0, w.Len())

	w.WriteString("next")
	require.Equal([]byte("next"), w.Bytes())
	require.Equal(&first[0], &w.Bytes()[0], "backing array should be reused")
}
