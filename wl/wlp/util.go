package wlp

import (
	"bytes"
	"encoding/binary"
	"unsafe"

	"github.com/pkg/errors"
)

// MaxMessageSize is the largest message libwayland compositors accept.
const MaxMessageSize = 4096

const headerSize = 8

var hostByteOrder binary.ByteOrder

func init() {
	var endianCheck uint32 = 0x1
	b := (*[4]byte)(unsafe.Pointer(&endianCheck))
	if b[0] == 1 {
		hostByteOrder = binary.LittleEndian
	} else {
		hostByteOrder = binary.BigEndian
	}
}

// DecodeHeader splits the 8 byte message header into the target object,
// the opcode and the total message size (header included).
func DecodeHeader(buf []byte) (id uint32, opcode uint16, size int) {
	id = hostByteOrder.Uint32(buf[:4])
	arg2 := hostByteOrder.Uint32(buf[4:8])
	opcode = uint16(arg2 & 0xFFFF)
	size = int(arg2 >> 16)
	return
}

// StringSize is the number of bytes s occupies on the wire, length
// prefix and padding included.
func StringSize(s string) int {
	n := len(s) + 1
	return 4 + (n+3)&^3
}

// encodeMessage appends one request to buf. Arguments may be uint32,
// int32 or string; object and new_id arguments are passed as uint32.
func encodeMessage(buf *bytes.Buffer, sender uint32, opcode uint16, args ...interface{}) error {
	start := buf.Len()
	var word [4]byte
	put := func(v uint32) {
		hostByteOrder.PutUint32(word[:], v)
		buf.Write(word[:])
	}
	put(sender)
	put(0)
	for _, arg := range args {
		switch v := arg.(type) {
		case uint32:
			put(v)
		case int32:
			put(uint32(v))
		case string:
			put(uint32(len(v) + 1))
			buf.WriteString(v)
			buf.WriteByte(0)
			for i := len(v) + 1; i%4 != 0; i++ {
				buf.WriteByte(0)
			}
		default:
			buf.Truncate(start)
			return errors.Errorf("unsupported argument type %T", arg)
		}
	}
	size := buf.Len() - start
	if size > MaxMessageSize {
		buf.Truncate(start)
		return errors.Errorf("message size %d exceeds %d bytes", size, MaxMessageSize)
	}
	hostByteOrder.PutUint32(buf.Bytes()[start+4:start+8], uint32(size)<<16|uint32(opcode))
	return nil
}

// decoder reads event arguments from a payload. The first failure
// sticks; every later read returns a zero value.
type decoder struct {
	buf []byte
	err error
}

func (d *decoder) uint32() uint32 {
	if d.err != nil {
		return 0
	}
	if len(d.buf) < 4 {
		d.err = errors.New("payload truncated")
		return 0
	}
	v := hostByteOrder.Uint32(d.buf[:4])
	d.buf = d.buf[4:]
	return v
}

func (d *decoder) int32() int32 {
	return int32(d.uint32())
}

// string decodes a wayland string. A null string decodes as "".
func (d *decoder) string() string {
	n := int(d.uint32())
	if d.err != nil || n == 0 {
		return ""
	}
	padded := (n + 3) &^ 3
	if len(d.buf) < padded {
		d.err = errors.Errorf("string of length %d overruns payload", n)
		return ""
	}
	s := string(d.buf[:n-1])
	d.buf = d.buf[padded:]
	return s
}
