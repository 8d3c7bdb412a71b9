package wl

import (
	"net"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elliotmr/imservice/internal/wltest"
	"github.com/elliotmr/imservice/wl/wlp"
)

func attach(t *testing.T, globals ...wltest.Global) (*Client, *wltest.Compositor) {
	conn, srv := wltest.NewPair(t)
	errc := srv.ServeRoundtrip(globals...)
	c := NewClient(zerolog.Nop())
	require.NoError(t, c.Attach(conn))
	require.NoError(t, <-errc)
	t.Cleanup(func() { c.Close() })
	return c, srv
}

func TestSocketPath(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", "/run/user/1000")
	t.Setenv("WAYLAND_DISPLAY", "")

	p, err := SocketPath("")
	require.NoError(t, err)
	assert.Equal(t, "/run/user/1000/wayland-0", p)

	t.Setenv("WAYLAND_DISPLAY", "wayland-1")
	p, err = SocketPath("")
	require.NoError(t, err)
	assert.Equal(t, "/run/user/1000/wayland-1", p)

	p, err = SocketPath("custom")
	require.NoError(t, err)
	assert.Equal(t, "/run/user/1000/custom", p)

	p, err = SocketPath("/tmp/abs-socket")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/abs-socket", p)

	t.Setenv("XDG_RUNTIME_DIR", "")
	_, err = SocketPath("wayland-1")
	assert.Error(t, err)
}

func TestClient_Connect(t *testing.T) {
	dir := t.TempDir()
	sock := filepath.Join(dir, "wayland-test")
	l, err := net.ListenUnix("unix", &net.UnixAddr{Name: sock, Net: "unix"})
	require.NoError(t, err)
	defer l.Close()

	t.Setenv("WAYLAND_SOCKET", "")
	t.Setenv("XDG_RUNTIME_DIR", dir)
	t.Setenv("WAYLAND_DISPLAY", "wayland-test")

	accepted := make(chan *net.UnixConn, 1)
	go func() {
		conn, err := l.AcceptUnix()
		if err != nil {
			close(accepted)
			return
		}
		accepted <- conn
	}()

	c := NewClient(zerolog.Nop())
	done := make(chan error, 1)
	go func() { done <- c.Connect("") }()

	conn, ok := <-accepted
	require.True(t, ok)
	defer conn.Close()
	// get_registry followed by sync, answered by hand
	var buf [24]byte
	_, err = conn.Read(buf[:])
	require.NoError(t, err)
	_, err = conn.Write(append(
		wltest.Encode(2, 0, uint32(1), "wl_seat", uint32(1)),
		append(wltest.Encode(3, 0, uint32(0)), wltest.Encode(1, 1, uint32(3))...)...,
	))
	require.NoError(t, err)

	require.NoError(t, <-done)
	defer c.Close()
	assert.Equal(t, 1, c.Context().NumGlobals(wlp.SeatInterface))
}

func TestConnectMissingSocket(t *testing.T) {
	t.Setenv("WAYLAND_SOCKET", "")
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())
	c := NewClient(zerolog.Nop())
	assert.Error(t, c.Connect("no-such-display"))
}

func TestConnectInvalidInheritedSocket(t *testing.T) {
	t.Setenv("WAYLAND_SOCKET", "not-a-number")
	c := NewClient(zerolog.Nop())
	assert.Error(t, c.Connect(""))
}

func TestBindGlobals(t *testing.T) {
	c, srv := attach(t, wltest.DefaultGlobals()...)

	seat, err := c.Seat()
	require.NoError(t, err)
	again, err := c.Seat()
	require.NoError(t, err)
	assert.Same(t, seat, again)

	im, err := c.InputMethodManager()
	require.NoError(t, err)
	ti, err := c.TextInputManager()
	require.NoError(t, err)

	_, err = c.Dispatch(nil)
	require.NoError(t, err)
	reqs := srv.Expect(3)
	for i, want := range []struct {
		name  uint32
		iface string
		id    uint32
	}{
		{2, wlp.SeatInterface, seat.ID()},
		{3, wlp.ZwpInputMethodManagerV2Interface, im.ID()},
		{4, wlp.ZwpTextInputManagerV3Interface, ti.ID()},
	} {
		assert.Equal(t, uint32(2), reqs[i].ID, "bind goes to the registry")
		args := reqs[i].Args()
		assert.Equal(t, want.name, args.Uint())
		assert.Equal(t, want.iface, args.String())
		assert.Equal(t, uint32(1), args.Uint(), "bound at version 1")
		assert.Equal(t, want.id, args.Uint())
	}
}

func TestInputMethodUnsupported(t *testing.T) {
	c, srv := attach(t, wltest.Global{Name: 1, Interface: "wl_seat", Version: 7})
	_, err := c.InputMethodManager()
	require.Error(t, err)
	assert.True(t, errors.Is(err, wlp.ErrProtocolUnsupported))
	assert.Zero(t, c.Context().Pending())

	_, err = c.Dispatch(nil)
	require.NoError(t, err)
	srv.ExpectNone()
}

func TestBindBeforeConnect(t *testing.T) {
	c := NewClient(zerolog.Nop())
	_, err := c.Seat()
	assert.True(t, errors.Is(err, wlp.ErrNotBound))
	assert.NoError(t, c.Close())
}

func TestSeatEventsAreLogged(t *testing.T) {
	c, srv := attach(t, wltest.DefaultGlobals()...)
	seat, err := c.Seat()
	require.NoError(t, err)
	srv.Send(seat.ID(), 0, uint32(wlp.SeatCapabilityKeyboard))
	srv.Send(seat.ID(), 1, "seat0")

	n := 0
	for i := 0; i < 1000 && n < 2; i++ {
		got, err := c.Dispatch(nil)
		require.NoError(t, err)
		n += got
	}
	assert.GreaterOrEqual(t, n, 2)
}
