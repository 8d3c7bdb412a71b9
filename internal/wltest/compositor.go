// Package wltest provides a scripted compositor for tests. It speaks the
// wire format with its own encoder so client code is not checked against
// itself.
package wltest

import (
	"encoding/binary"
	"io"
	"net"
	"os"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

// Request is one message the client sent.
type Request struct {
	ID      uint32
	Opcode  uint16
	Payload []byte
}

// Args decodes the payload.
func (r Request) Args() *Args {
	return &Args{buf: r.Payload}
}

// Args reads request arguments in order.
type Args struct {
	buf []byte
}

// Uint reads a uint, object or new_id argument.
func (a *Args) Uint() uint32 {
	if len(a.buf) < 4 {
		return 0
	}
	v := binary.NativeEndian.Uint32(a.buf)
	a.buf = a.buf[4:]
	return v
}

// Int reads an int argument.
func (a *Args) Int() int32 {
	return int32(a.Uint())
}

// String reads a string argument.
func (a *Args) String() string {
	n := int(a.Uint())
	if n == 0 || len(a.buf) < n {
		return ""
	}
	s := string(a.buf[:n-1])
	a.buf = a.buf[(n+3)&^3:]
	return s
}

// Global is an advertised global.
type Global struct {
	Name      uint32
	Interface string
	Version   uint32
}

// Compositor is the server end of a socketpair.
type Compositor struct {
	t    testing.TB
	conn *net.UnixConn
}

// NewPair returns the client end of a connected socketpair and a
// compositor driving the other end. Both are closed when the test ends.
func NewPair(t testing.TB) (*net.UnixConn, *Compositor) {
	fds, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_STREAM|unix.SOCK_CLOEXEC, 0)
	require.NoError(t, err)
	client := fileConn(t, fds[0], "client")
	server := fileConn(t, fds[1], "server")
	t.Cleanup(func() {
		client.Close()
		server.Close()
	})
	return client, &Compositor{t: t, conn: server}
}

func fileConn(t testing.TB, fd int, name string) *net.UnixConn {
	f := os.NewFile(uintptr(fd), name)
	defer f.Close()
	c, err := net.FileConn(f)
	require.NoError(t, err)
	return c.(*net.UnixConn)
}

// Encode builds one message. Arguments may be uint32, int32 or string.
func Encode(id uint32, opcode uint16, args ...interface{}) []byte {
	buf := make([]byte, 8, 64)
	for _, arg := range args {
		switch v := arg.(type) {
		case uint32:
			buf = binary.NativeEndian.AppendUint32(buf, v)
		case int32:
			buf = binary.NativeEndian.AppendUint32(buf, uint32(v))
		case string:
			buf = binary.NativeEndian.AppendUint32(buf, uint32(len(v)+1))
			buf = append(buf, v...)
			buf = append(buf, 0)
			for len(buf)%4 != 0 {
				buf = append(buf, 0)
			}
		default:
			panic(errors.Errorf("unsupported argument %T", arg))
		}
	}
	binary.NativeEndian.PutUint32(buf[0:4], id)
	binary.NativeEndian.PutUint32(buf[4:8], uint32(len(buf))<<16|uint32(opcode))
	return buf
}

// Send writes one event.
func (c *Compositor) Send(id uint32, opcode uint16, args ...interface{}) {
	c.Write(Encode(id, opcode, args...))
}

// Write writes raw bytes, which may hold several or partial messages.
func (c *Compositor) Write(b []byte) {
	_, err := c.conn.Write(b)
	require.NoError(c.t, err)
}

// SendFD writes one event together with an SCM_RIGHTS descriptor.
func (c *Compositor) SendFD(fd int, id uint32, opcode uint16, args ...interface{}) {
	_, _, err := c.conn.WriteMsgUnix(Encode(id, opcode, args...), unix.UnixRights(fd), nil)
	require.NoError(c.t, err)
}

// Expect reads exactly n requests, failing the test after a second.
func (c *Compositor) Expect(n int) []Request {
	reqs, err := c.read(n, time.Second)
	require.NoError(c.t, err)
	return reqs
}

// ExpectNone asserts the client sent nothing within a short window.
func (c *Compositor) ExpectNone() {
	require.NoError(c.t, c.conn.SetReadDeadline(time.Now().Add(50*time.Millisecond)))
	var b [1]byte
	n, err := c.conn.Read(b[:])
	require.Zero(c.t, n, "unexpected request bytes")
	var nerr net.Error
	require.True(c.t, errors.As(err, &nerr) && nerr.Timeout(), "expected timeout, got %v", err)
}

func (c *Compositor) read(n int, timeout time.Duration) ([]Request, error) {
	if err := c.conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return nil, err
	}
	reqs := make([]Request, 0, n)
	var hdr [8]byte
	for len(reqs) < n {
		if _, err := io.ReadFull(c.conn, hdr[:]); err != nil {
			return reqs, errors.Wrapf(err, "reading header of request %d", len(reqs))
		}
		id := binary.NativeEndian.Uint32(hdr[0:4])
		word := binary.NativeEndian.Uint32(hdr[4:8])
		size := int(word >> 16)
		if size < 8 {
			return reqs, errors.Errorf("invalid request size %d", size)
		}
		payload := make([]byte, size-8)
		if _, err := io.ReadFull(c.conn, payload); err != nil {
			return reqs, errors.Wrap(err, "reading payload")
		}
		reqs = append(reqs, Request{ID: id, Opcode: uint16(word & 0xFFFF), Payload: payload})
	}
	return reqs, nil
}

// ServeRoundtrip answers the client's initial get_registry + sync with
// the given globals, then acknowledges the sync. It runs in the
// background; the returned channel yields the first error.
func (c *Compositor) ServeRoundtrip(globals ...Global) <-chan error {
	errc := make(chan error, 1)
	go func() {
		reqs, err := c.read(2, 5*time.Second)
		if err != nil {
			errc <- err
			return
		}
		var registry, callback uint32
		for _, r := range reqs {
			if r.ID != 1 {
				errc <- errors.Errorf("unexpected request to object %d", r.ID)
				return
			}
			switch r.Opcode {
			case 0:
				callback = r.Args().Uint()
			case 1:
				registry = r.Args().Uint()
			}
		}
		if registry == 0 || callback == 0 {
			errc <- errors.New("expected get_registry and sync")
			return
		}
		var out []byte
		for _, g := range globals {
			out = append(out, Encode(registry, 0, g.Name, g.Interface, g.Version)...)
		}
		out = append(out, Encode(callback, 0, uint32(1))...)
		out = append(out, Encode(1, 1, callback)...)
		_, err = c.conn.Write(out)
		errc <- err
	}()
	return errc
}

// Close closes the compositor's end.
func (c *Compositor) Close() {
	c.conn.Close()
}

// DefaultGlobals is what a wlroots compositor with input method support
// typically advertises.
func DefaultGlobals() []Global {
	return []Global{
		{Name: 1, Interface: "wl_compositor", Version: 4},
		{Name: 2, Interface: "wl_seat", Version: 7},
		{Name: 3, Interface: "zwp_input_method_manager_v2", Version: 1},
		{Name: 4, Interface: "zwp_text_input_manager_v3", Version: 1},
	}
}
