package wlp

import (
	"github.com/pkg/errors"
)

// Display Events
//
// Error
// The error event is sent out when a fatal (non-recoverable)
// error has occurred.  The object_id argument is the object
// where the error occurred, most often in response to a request
// to that object.  The code identifies the error and is defined
// by the object interface.  As such, each interface defines its
// own set of error codes.  The message is a brief description
// of the error, for (debugging) convenience.
//
// DeleteID
// This event is used internally by the object ID management
// logic.  When a client deletes an object, the server will send
// this event to acknowledge that it has seen the delete request.
// When the client receives this event, it will know that it can
// safely reuse the object ID.
type DisplayListener interface {
	Error(objectID uint32, code uint32, message string)
	DeleteID(id uint32)
}

// The core global object.  This is a special singleton object.  It
// is used for internal Wayland protocol features.
type Display struct {
	proxy
	l DisplayListener
}

func newDisplay(c *Context) Object {
	o := &Display{proxy: newProxy(c)}
	c.register(o)
	return o
}

// Type returns the string wayland type
func (this *Display) Type() string {
	return DisplayInterface
}

func (this *Display) hasListener() bool {
	return this.l != nil
}

func (this *Display) setListener(listener interface{}) error {
	l, ok := listener.(DisplayListener)
	if !ok {
		return errors.Errorf("listener must implement DisplayListener")
	}
	this.l = l
	return nil
}

func (this *Display) dispatch(opCode uint16, payload []byte) error {
	d := &decoder{buf: payload}
	switch opCode {
	case opCodeDisplayError:
		objectID := d.uint32()
		code := d.uint32()
		message := d.string()
		if d.err != nil {
			return d.err
		}
		this.l.Error(objectID, code, message)
	case opCodeDisplayDeleteID:
		id := d.uint32()
		if d.err != nil {
			return d.err
		}
		this.l.DeleteID(id)
	default:
		return errors.Errorf("unknown wl_display event %d", opCode)
	}
	return nil
}

// The sync request asks the server to emit the 'done' event
// on the returned wl_callback object.  Since requests are
// handled in-order and events are delivered in-order, this can
// be used as a barrier to ensure all previous requests and the
// resulting events have been handled.
//
// The callback_data passed in the callback is the event serial.
func (this *Display) Sync(l CallbackListener) (*Callback, error) {
	if this == nil {
		return nil, errors.New("object is nil")
	}
	ret := newCallback(this.c).(*Callback)
	ret.l = l
	this.child(ret)
	if err := this.c.request(this, opCodeDisplaySync, ret.i); err != nil {
		delete(this.c.obj, ret.i)
		return nil, err
	}
	return ret, nil
}

// This request creates a registry object that allows the client
// to list and bind the global objects available from the
// compositor.
func (this *Display) GetRegistry(l RegistryListener) (*Registry, error) {
	if this == nil {
		return nil, errors.New("object is nil")
	}
	ret := newRegistry(this.c).(*Registry)
	ret.l = l
	this.child(ret)
	if err := this.c.request(this, opCodeDisplayGetRegistry, ret.i); err != nil {
		delete(this.c.obj, ret.i)
		return nil, err
	}
	return ret, nil
}

// Registry Events
//
// Global
// Notify the client of global objects.
//
// GlobalRemove
// Notify the client of removed global objects.
type RegistryListener interface {
	Global(name uint32, iface string, version uint32)
	GlobalRemove(name uint32)
}

// The singleton global registry object.  The server has a number of
// global objects that are available to all clients.  These objects
// typically represent an actual object in the server (for example,
// an input device) or they are singleton objects that provide
// extension functionality.
type Registry struct {
	proxy
	l RegistryListener
}

func newRegistry(c *Context) Object {
	o := &Registry{proxy: newProxy(c)}
	c.register(o)
	return o
}

// Type returns the string wayland type
func (this *Registry) Type() string {
	return RegistryInterface
}

func (this *Registry) hasListener() bool {
	return this.l != nil
}

func (this *Registry) setListener(listener interface{}) error {
	l, ok := listener.(RegistryListener)
	if !ok {
		return errors.Errorf("listener must implement RegistryListener")
	}
	this.l = l
	return nil
}

func (this *Registry) dispatch(opCode uint16, payload []byte) error {
	d := &decoder{buf: payload}
	switch opCode {
	case opCodeRegistryGlobal:
		name := d.uint32()
		iface := d.string()
		version := d.uint32()
		if d.err != nil {
			return d.err
		}
		this.l.Global(name, iface, version)
	case opCodeRegistryGlobalRemove:
		name := d.uint32()
		if d.err != nil {
			return d.err
		}
		this.l.GlobalRemove(name)
	default:
		return errors.Errorf("unknown wl_registry event %d", opCode)
	}
	return nil
}

// Binds a new, client-created object to the server using the
// specified name as the identifier.
func (this *Registry) Bind(name uint32, iface string, version uint32, id uint32) error {
	if this == nil {
		return errors.New("object is nil")
	}
	return this.c.request(this, opCodeRegistryBind, name, iface, version, id)
}

// Callback Events
//
// Done
// Notify the client when the related request is done.
type CallbackListener interface {
	Done(callbackData uint32)
}

// CallbackFunc adapts a function to CallbackListener.
type CallbackFunc func(callbackData uint32)

// Done calls f.
func (f CallbackFunc) Done(callbackData uint32) {
	f(callbackData)
}

// Clients can handle the 'done' event to get notified when
// the related request is done.
type Callback struct {
	proxy
	l CallbackListener
}

func newCallback(c *Context) Object {
	o := &Callback{proxy: newProxy(c)}
	c.register(o)
	return o
}

// Type returns the string wayland type
func (this *Callback) Type() string {
	return CallbackInterface
}

func (this *Callback) hasListener() bool {
	return this.l != nil
}

func (this *Callback) setListener(listener interface{}) error {
	l, ok := listener.(CallbackListener)
	if !ok {
		return errors.Errorf("listener must implement CallbackListener")
	}
	this.l = l
	return nil
}

func (this *Callback) dispatch(opCode uint16, payload []byte) error {
	d := &decoder{buf: payload}
	switch opCode {
	case opCodeCallbackDone:
		callbackData := d.uint32()
		if d.err != nil {
			return d.err
		}
		this.l.Done(callbackData)
	default:
		return errors.Errorf("unknown wl_callback event %d", opCode)
	}
	return nil
}

// Seat Events
//
// Capabilities
// This is emitted whenever a seat gains or loses the pointer,
// keyboard or touch capabilities.
//
// Name
// In a multi-seat configuration the seat name can be used by clients to
// help identify which physical devices the seat represents. Since version 2.
type SeatListener interface {
	Capabilities(capabilities uint32)
	Name(name string)
}

// A seat is a group of keyboards, pointer and touch devices. This
// object is published as a global during start up, or when such a
// device is hot plugged.  A seat typically has a pointer and
// maintains a keyboard focus and a pointer focus.
type Seat struct {
	proxy
	l SeatListener
}

func newSeat(c *Context) Object {
	o := &Seat{proxy: newProxy(c)}
	c.register(o)
	return o
}

func init() {
	registerConstructor(SeatInterface, newSeat)
}

// Type returns the string wayland type
func (this *Seat) Type() string {
	return SeatInterface
}

func (this *Seat) hasListener() bool {
	return this.l != nil
}

func (this *Seat) setListener(listener interface{}) error {
	if listener == nil {
		return nil
	}
	l, ok := listener.(SeatListener)
	if !ok {
		return errors.Errorf("listener must implement SeatListener")
	}
	this.l = l
	return nil
}

func (this *Seat) dispatch(opCode uint16, payload []byte) error {
	d := &decoder{buf: payload}
	switch opCode {
	case opCodeSeatCapabilities:
		capabilities := d.uint32()
		if d.err != nil {
			return d.err
		}
		this.l.Capabilities(capabilities)
	case opCodeSeatName:
		name := d.string()
		if d.err != nil {
			return d.err
		}
		this.l.Name(name)
	default:
		return errors.Errorf("unknown wl_seat event %d", opCode)
	}
	return nil
}
