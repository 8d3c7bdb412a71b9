package wl

import (
	"net"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/elliotmr/imservice/wl/wlp"
)

// Client is one connection to a compositor together with the queue its
// input method objects are dispatched on.
type Client struct {
	ctx   *wlp.Context
	queue *wlp.Queue
	log   zerolog.Logger
	seat  *wlp.Seat
}

// NewClient returns an unconnected client.
func NewClient(log zerolog.Logger) *Client {
	return &Client{log: log.With().Str("component", "wl").Logger()}
}

// Capabilities implements wlp.SeatListener.
func (c *Client) Capabilities(capabilities uint32) {
	c.log.Debug().
		Bool("pointer", capabilities&wlp.SeatCapabilityPointer != 0).
		Bool("keyboard", capabilities&wlp.SeatCapabilityKeyboard != 0).
		Bool("touch", capabilities&wlp.SeatCapabilityTouch != 0).
		Msg("seat capabilities")
}

// Name implements wlp.SeatListener.
func (c *Client) Name(name string) {
	c.log.Debug().Str("seat", name).Msg("seat name")
}

// SocketPath resolves the display socket the way libwayland does: an
// explicit name, then $WAYLAND_DISPLAY, then "wayland-0". Relative names
// live in $XDG_RUNTIME_DIR.
func SocketPath(sockName string) (string, error) {
	if sockName == "" {
		sockName = os.Getenv("WAYLAND_DISPLAY")
	}
	if sockName == "" {
		sockName = "wayland-0"
	}
	if filepath.IsAbs(sockName) {
		return sockName, nil
	}
	runtimeDir := os.Getenv("XDG_RUNTIME_DIR")
	if runtimeDir == "" {
		return "", errors.New("XDG_RUNTIME_DIR is not set in environment")
	}
	return filepath.Join(runtimeDir, sockName), nil
}

// Connect dials the compositor and performs the initial roundtrip. With
// an empty sockName an inherited $WAYLAND_SOCKET descriptor is used when
// present.
func (c *Client) Connect(sockName string) error {
	if sockName == "" {
		if fd := os.Getenv("WAYLAND_SOCKET"); fd != "" {
			conn, err := inheritedConn(fd)
			if err != nil {
				return err
			}
			os.Unsetenv("WAYLAND_SOCKET")
			return c.Attach(conn)
		}
	}

	absSockName, err := SocketPath(sockName)
	if err != nil {
		return err
	}
	addr, err := net.ResolveUnixAddr("unix", absSockName)
	if err != nil {
		return errors.Wrapf(err, "unable to resolve unix socket address (%s)", absSockName)
	}
	conn, err := net.DialUnix("unix", nil, addr)
	if err != nil {
		return errors.Wrapf(err, "unable to connect to wayland server at (%s)", absSockName)
	}
	c.log.Debug().Str("socket", absSockName).Msg("connected")
	return c.Attach(conn)
}

func inheritedConn(fdText string) (*net.UnixConn, error) {
	fd, err := strconv.Atoi(fdText)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid WAYLAND_SOCKET (%s)", fdText)
	}
	f := os.NewFile(uintptr(fd), "wayland-socket")
	defer f.Close()
	conn, err := net.FileConn(f)
	if err != nil {
		return nil, errors.Wrap(err, "unable to use WAYLAND_SOCKET")
	}
	uc, ok := conn.(*net.UnixConn)
	if !ok {
		conn.Close()
		return nil, errors.New("WAYLAND_SOCKET is not a unix socket")
	}
	return uc, nil
}

// Attach takes ownership of an established transport and performs the
// initial roundtrip, after which the global registry is complete.
func (c *Client) Attach(t wlp.Transport) error {
	c.ctx = wlp.NewContext(t, c.log)
	c.queue = c.ctx.NewQueue()
	if err := c.ctx.Start(c.queue); err != nil {
		return errors.Wrap(err, "starting context failed")
	}
	if err := c.Roundtrip(); err != nil {
		return errors.Wrap(err, "initial roundtrip failed")
	}
	c.log.Debug().Int("globals", len(c.ctx.Globals())).Msg("registry received")
	return nil
}

// Roundtrip blocks until the compositor has processed all requests sent
// so far. Events without a listener are logged and dropped.
func (c *Client) Roundtrip() error {
	return c.queue.Roundtrip(c.unhandled)
}

// Dispatch runs one non-blocking pass over the client's queue. A nil def
// logs and drops events nobody listens to.
func (c *Client) Dispatch(def wlp.DefaultHandler) (int, error) {
	if def == nil {
		def = c.unhandled
	}
	return c.queue.Dispatch(def)
}

func (c *Client) unhandled(msg wlp.Message, iface string) {
	c.log.Debug().
		Uint32("id", msg.Sender).
		Str("object", iface).
		Uint16("opcode", msg.Opcode).
		Msg("event received that was not handled")
}

// Context returns the underlying protocol context.
func (c *Client) Context() *wlp.Context {
	return c.ctx
}

// Queue returns the queue Dispatch drains.
func (c *Client) Queue() *wlp.Queue {
	return c.queue
}

// Seat binds wl_seat version 1. The seat is bound once and shared.
func (c *Client) Seat() (*wlp.Seat, error) {
	if c.seat != nil {
		return c.seat, nil
	}
	o, err := c.bind(wlp.SeatInterface, 1, c)
	if err != nil {
		return nil, err
	}
	c.seat = o.(*wlp.Seat)
	return c.seat, nil
}

// InputMethodManager binds zwp_input_method_manager_v2 version 1.
func (c *Client) InputMethodManager() (*wlp.ZwpInputMethodManagerV2, error) {
	o, err := c.bind(wlp.ZwpInputMethodManagerV2Interface, 1, nil)
	if err != nil {
		return nil, err
	}
	return o.(*wlp.ZwpInputMethodManagerV2), nil
}

// TextInputManager binds zwp_text_input_manager_v3 version 1.
func (c *Client) TextInputManager() (*wlp.ZwpTextInputManagerV3, error) {
	o, err := c.bind(wlp.ZwpTextInputManagerV3Interface, 1, nil)
	if err != nil {
		return nil, err
	}
	return o.(*wlp.ZwpTextInputManagerV3), nil
}

func (c *Client) bind(iface string, version uint32, listener interface{}) (wlp.Object, error) {
	if c.ctx == nil {
		return nil, errors.Wrapf(wlp.ErrNotBound, "unable to bind %s: not connected", iface)
	}
	o, err := c.ctx.InstantiateExact(iface, version, listener)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to bind %s", iface)
	}
	return o, nil
}

// Close tears the connection down.
func (c *Client) Close() error {
	if c.ctx == nil {
		return nil
	}
	return c.ctx.Close()
}
