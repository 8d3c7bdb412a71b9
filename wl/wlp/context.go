package wlp

import (
	"bytes"
	"net"
	"os"
	"sort"
	"syscall"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sys/unix"
)

// Transport is the raw connection to the compositor. *net.UnixConn
// implements it.
type Transport interface {
	syscall.Conn
	WriteMsgUnix(b, oob []byte, addr *net.UnixAddr) (n, oobn int, err error)
	Close() error
}

type constructor func(*Context) Object

var constructors map[string]constructor

func registerConstructor(iface string, ctor constructor) {
	if constructors == nil {
		constructors = make(map[string]constructor)
	}
	constructors[iface] = ctor
}

// Object is a client side proxy for a protocol object.
type Object interface {
	ID() uint32
	Type() string
	dispatch(opCode uint16, payload []byte) error
	setListener(listener interface{}) error
	hasListener() bool
	queue() *Queue
	setQueue(q *Queue)
}

// Global is one entry of the compositor's global registry.
type Global struct {
	Name      uint32
	Interface string
	Version   uint32
}

// NewContext creates the client side state for one wayland connection.
// Nothing is sent until Start.
func NewContext(t Transport, log zerolog.Logger) *Context {
	c := &Context{
		t:           t,
		log:         log.With().Str("component", "wlp").Logger(),
		buf:         &bytes.Buffer{},
		in:          make([]byte, 65536),
		oob:         make([]byte, unix.CmsgSpace(28*4)),
		obj:         make(map[uint32]Object),
		glb:         make(map[uint32]Global),
		glbByString: make(map[string][]Global),
	}
	c.Display = newDisplay(c).(*Display)
	c.Display.setListener(c)
	return c
}

// Context owns the connection, the object map and the global registry
// snapshot. It is not safe for concurrent use.
type Context struct {
	*Display
	*Registry

	t   Transport
	log zerolog.Logger

	buf *bytes.Buffer
	in  []byte
	inN int
	oob []byte

	obj         map[uint32]Object
	glb         map[uint32]Global
	glbByString map[string][]Global
	sealed      bool
	last        uint32
	closed      bool

	// Err is the first fatal error seen on the connection. Once set every
	// request and dispatch fails with it.
	Err error
}

// Start attaches the display to q and requests the global registry on
// it. The registry arrives with the first roundtrip on q.
func (c *Context) Start(q *Queue) error {
	q.Attach(c.Display)
	reg, err := c.Display.GetRegistry(c)
	if err != nil {
		return errors.Wrap(err, "unable to get registry")
	}
	c.Registry = reg
	return nil
}

// Logger returns the context's logger.
func (c *Context) Logger() zerolog.Logger {
	return c.log
}

// Closed reports whether Close was called.
func (c *Context) Closed() bool {
	return c.closed
}

// Close tears the connection down. Every proxy created on the context
// becomes unbound.
func (c *Context) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	c.buf.Reset()
	return c.t.Close()
}

func (c *Context) next() uint32 {
	c.last++
	return c.last
}

func (c *Context) register(o Object) {
	c.obj[o.ID()] = o
}

// Lookup returns the live object with the given id, or nil.
func (c *Context) Lookup(id uint32) Object {
	return c.obj[id]
}

func (c *Context) usable() error {
	if c.closed {
		return ErrNotBound
	}
	if c.Err != nil {
		return c.Err
	}
	return nil
}

func (c *Context) fail(err error) {
	if c.Err == nil {
		c.Err = err
	}
}

// request encodes a request into the output buffer. It performs no I/O.
func (c *Context) request(o Object, opcode uint16, args ...interface{}) error {
	if err := c.usable(); err != nil {
		return err
	}
	if _, exists := c.obj[o.ID()]; !exists {
		return errors.Wrapf(ErrNotBound, "%s@%d has been deleted", o.Type(), o.ID())
	}
	return c.encode(o, opcode, args...)
}

func (c *Context) encode(o Object, opcode uint16, args ...interface{}) error {
	start := c.buf.Len()
	if err := encodeMessage(c.buf, o.ID(), opcode, args...); err != nil {
		return errors.Wrapf(err, "unable to encode %s@%d opcode %d", o.Type(), o.ID(), opcode)
	}
	c.log.Trace().
		Str("object", o.Type()).
		Uint32("id", o.ID()).
		Uint16("opcode", opcode).
		Hex("data", c.buf.Bytes()[start:]).
		Msg("request")
	return nil
}

// Flush writes every buffered request with a single write.
func (c *Context) Flush() error {
	if err := c.usable(); err != nil {
		return err
	}
	if c.buf.Len() == 0 {
		return nil
	}
	_, _, err := c.t.WriteMsgUnix(c.buf.Bytes(), nil, nil)
	c.buf.Reset()
	if err != nil {
		c.fail(errors.Wrap(ErrTransportClosed, err.Error()))
		return c.Err
	}
	return nil
}

// Batch runs fn and sends everything it encoded as one write. If fn
// fails nothing it encoded is sent.
func (c *Context) Batch(fn func() error) error {
	if err := c.usable(); err != nil {
		return err
	}
	mark := c.buf.Len()
	if err := fn(); err != nil {
		c.buf.Truncate(mark)
		return err
	}
	return c.Flush()
}

// Pending is the number of encoded but unsent bytes.
func (c *Context) Pending() int {
	return c.buf.Len()
}

// pump reads what the connection has available and routes every
// complete message. Unless block is set it never waits.
func (c *Context) pump(q *Queue, block bool) error {
	if err := c.usable(); err != nil {
		return err
	}
	rc, err := c.t.SyscallConn()
	if err != nil {
		c.fail(errors.Wrap(ErrTransportClosed, err.Error()))
		return c.Err
	}
	for {
		var n, oobn int
		var rerr error
		err = rc.Read(func(fd uintptr) bool {
			n, oobn, _, _, rerr = unix.Recvmsg(int(fd), c.in[c.inN:], c.oob, unix.MSG_DONTWAIT|unix.MSG_CMSG_CLOEXEC)
			return !(block && rerr == unix.EAGAIN)
		})
		if err == nil {
			err = rerr
		}
		if err == unix.EAGAIN {
			return nil
		}
		if err == nil && n == 0 {
			err = errors.New("connection closed by compositor")
		}
		if err != nil {
			c.fail(errors.Wrap(ErrTransportClosed, err.Error()))
			return c.Err
		}
		c.closeFDs(oobn)
		c.inN += n
		if err := c.split(q); err != nil {
			c.fail(err)
			return c.Err
		}
		if block {
			return nil
		}
	}
}

// split routes every complete message in the input buffer and keeps the
// remainder for the next read.
func (c *Context) split(q *Queue) error {
	i := 0
	for c.inN-i >= headerSize {
		id, opcode, size := DecodeHeader(c.in[i:])
		if size < headerSize || size > MaxMessageSize {
			return errors.Wrapf(ErrTransportClosed, "invalid message size %d for object %d", size, id)
		}
		if c.inN-i < size {
			break
		}
		payload := make([]byte, size-headerSize)
		copy(payload, c.in[i+headerSize:i+size])
		i += size
		c.log.Trace().
			Uint32("id", id).
			Uint16("opcode", opcode).
			Hex("data", payload).
			Msg("event")
		target := q
		if o := c.obj[id]; o != nil && o.queue() != nil {
			target = o.queue()
		}
		if err := target.add(Message{Sender: id, Opcode: opcode, Payload: payload}); err != nil {
			return errors.Wrapf(err, "dropping event for object %d", id)
		}
	}
	c.inN = copy(c.in, c.in[i:c.inN])
	return nil
}

// closeFDs closes descriptors passed alongside events; none of the
// bound interfaces take one.
func (c *Context) closeFDs(oobn int) {
	if oobn == 0 {
		return
	}
	scms, err := unix.ParseSocketControlMessage(c.oob[:oobn])
	if err != nil {
		c.log.Warn().Err(err).Msg("unable to parse socket control message")
		return
	}
	for i := range scms {
		fds, err := unix.ParseUnixRights(&scms[i])
		if err != nil {
			continue
		}
		for _, fd := range fds {
			c.log.Warn().Int("fd", fd).Msg("closing unexpected file descriptor")
			os.NewFile(uintptr(fd), "wayland-fd").Close()
		}
	}
}

func (c *Context) deliver(msg Message, def DefaultHandler) {
	o := c.obj[msg.Sender]
	if o == nil || !o.hasListener() {
		iface := ""
		if o != nil {
			iface = o.Type()
		}
		if def != nil {
			def(msg, iface)
			return
		}
		c.log.Debug().
			Uint32("id", msg.Sender).
			Str("object", iface).
			Uint16("opcode", msg.Opcode).
			Msg("ignoring event: no listener")
		return
	}
	if err := o.dispatch(msg.Opcode, msg.Payload); err != nil {
		c.log.Warn().
			Err(err).
			Str("object", o.Type()).
			Uint32("id", o.ID()).
			Uint16("opcode", msg.Opcode).
			Msg("dropping malformed event")
	}
}

// Error implements DisplayListener. The compositor disconnects right
// after sending it.
func (c *Context) Error(objectID uint32, code uint32, message string) {
	perr := &ProtocolError{ObjectID: objectID, Code: code, Message: message}
	c.log.Error().Err(perr).Msg("fatal protocol error")
	c.fail(perr)
}

// DeleteID implements DisplayListener.
func (c *Context) DeleteID(id uint32) {
	delete(c.obj, id)
}

// Global implements RegistryListener. Globals announced after the first
// roundtrip are not added to the snapshot.
func (c *Context) Global(name uint32, iface string, version uint32) {
	if c.sealed {
		c.log.Debug().Str("interface", iface).Uint32("name", name).Msg("ignoring late global")
		return
	}
	glb := Global{
		Name:      name,
		Interface: iface,
		Version:   version,
	}
	c.glb[name] = glb
	c.glbByString[iface] = append(c.glbByString[iface], glb)
	c.log.Debug().Str("interface", iface).Uint32("version", version).Msg("added global")
}

// GlobalRemove implements RegistryListener.
func (c *Context) GlobalRemove(name uint32) {
	if c.sealed {
		c.log.Debug().Uint32("name", name).Msg("ignoring global removal")
		return
	}
	glb, exists := c.glb[name]
	if !exists {
		return
	}
	delete(c.glb, name)
	b := c.glbByString[glb.Interface][:0]
	for _, g := range c.glbByString[glb.Interface] {
		if g.Name != name {
			b = append(b, g)
		}
	}
	c.glbByString[glb.Interface] = b
}

func (c *Context) sealGlobals() {
	c.sealed = true
}

// Globals returns the registry snapshot ordered by name.
func (c *Context) Globals() []Global {
	out := make([]Global, 0, len(c.glb))
	for _, g := range c.glb {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// NumGlobals is the number of advertised globals implementing ifname.
func (c *Context) NumGlobals(ifname string) int {
	return len(c.glbByString[ifname])
}

// InstantiateExact binds the first global implementing ifname at exactly
// version. If none is advertised at that version or newer it fails with
// ErrProtocolUnsupported without encoding anything.
func (c *Context) InstantiateExact(ifname string, version uint32, listener interface{}) (Object, error) {
	if err := c.usable(); err != nil {
		return nil, err
	}
	if !c.sealed || c.Registry == nil {
		return nil, errors.Wrapf(ErrNoGlobals, "unable to look up %s", ifname)
	}
	ctor, known := constructors[ifname]
	if !known {
		return nil, errors.Wrapf(ErrProtocolUnsupported, "no client implementation of %s", ifname)
	}
	var glb *Global
	for i := range c.glbByString[ifname] {
		if c.glbByString[ifname][i].Version >= version {
			glb = &c.glbByString[ifname][i]
			break
		}
	}
	if glb == nil {
		return nil, errors.Wrapf(ErrProtocolUnsupported, "%s version %d not advertised", ifname, version)
	}
	o := ctor(c)
	if err := o.setListener(listener); err != nil {
		delete(c.obj, o.ID())
		return nil, errors.Wrap(err, "invalid listener")
	}
	o.setQueue(c.Registry.queue())
	if err := c.Registry.Bind(glb.Name, glb.Interface, version, o.ID()); err != nil {
		delete(c.obj, o.ID())
		return nil, errors.Wrapf(err, "unable to bind object: %s", glb.Interface)
	}
	return o, nil
}
