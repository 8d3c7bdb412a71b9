package wlp

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeMessage(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, encodeMessage(buf, 7, 3, uint32(42), int32(-1), "abc"))

	id, opcode, size := DecodeHeader(buf.Bytes())
	assert.Equal(t, uint32(7), id)
	assert.Equal(t, uint16(3), opcode)
	assert.Equal(t, 8+4+4+StringSize("abc"), size)
	assert.Equal(t, size, buf.Len())

	d := &decoder{buf: buf.Bytes()[headerSize:]}
	assert.Equal(t, uint32(42), d.uint32())
	assert.Equal(t, int32(-1), d.int32())
	assert.Equal(t, "abc", d.string())
	assert.NoError(t, d.err)
	assert.Empty(t, d.buf)
}

func TestStringSize(t *testing.T) {
	assert.Equal(t, 8, StringSize(""))
	assert.Equal(t, 8, StringSize("abc"))
	assert.Equal(t, 12, StringSize("abcd"))
	assert.Equal(t, 12, StringSize("abcdefg"))
}

func TestEncodeEmptyString(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, encodeMessage(buf, 1, 0, ""))
	assert.Equal(t, 16, buf.Len())
	d := &decoder{buf: buf.Bytes()[headerSize:]}
	assert.Equal(t, "", d.string())
	assert.NoError(t, d.err)
}

func TestEncodeMessageTooLarge(t *testing.T) {
	buf := &bytes.Buffer{}
	buf.WriteString("keep")
	err := encodeMessage(buf, 1, 0, strings.Repeat("x", MaxMessageSize))
	assert.Error(t, err)
	assert.Equal(t, "keep", buf.String())
}

func TestEncodeUnsupportedArgument(t *testing.T) {
	buf := &bytes.Buffer{}
	assert.Error(t, encodeMessage(buf, 1, 0, 1.5))
	assert.Zero(t, buf.Len())
}

func TestDecoderTruncated(t *testing.T) {
	d := &decoder{buf: []byte{1, 0}}
	assert.Zero(t, d.uint32())
	assert.Error(t, d.err)
	assert.Zero(t, d.uint32())

	buf := &bytes.Buffer{}
	require.NoError(t, encodeMessage(buf, 1, 0, "hello"))
	d = &decoder{buf: buf.Bytes()[headerSize : buf.Len()-4]}
	assert.Equal(t, "", d.string())
	assert.Error(t, d.err)
}
