package wlp

import (
	"github.com/pkg/errors"
)

// A factory for text-input objects. This object is a global singleton.
type ZwpTextInputManagerV3 struct {
	proxy
}

func newZwpTextInputManagerV3(c *Context) Object {
	o := &ZwpTextInputManagerV3{proxy: newProxy(c)}
	c.register(o)
	return o
}

func init() {
	registerConstructor(ZwpTextInputManagerV3Interface, newZwpTextInputManagerV3)
}

// Type returns the string wayland type
func (this *ZwpTextInputManagerV3) Type() string {
	return ZwpTextInputManagerV3Interface
}

func (this *ZwpTextInputManagerV3) hasListener() bool {
	return false
}

func (this *ZwpTextInputManagerV3) setListener(listener interface{}) error {
	return nil
}

func (this *ZwpTextInputManagerV3) dispatch(opCode uint16, payload []byte) error {
	return errors.Errorf("zwp_text_input_manager_v3 has no events, got %d", opCode)
}

// Creates a new text-input object for a given seat. A nil listener
// routes the object's events to the queue's default handler.
func (this *ZwpTextInputManagerV3) GetTextInput(l ZwpTextInputV3Listener, seat *Seat) (*ZwpTextInputV3, error) {
	if this == nil {
		return nil, errors.New("object is nil")
	}
	if seat == nil {
		return nil, errors.Wrap(ErrNotBound, "seat is nil")
	}
	ret := newZwpTextInputV3(this.c).(*ZwpTextInputV3)
	ret.l = l
	this.child(ret)
	if err := this.c.request(this, opCodeZwpTextInputManagerV3GetTextInput, ret.i, seat.ID()); err != nil {
		delete(this.c.obj, ret.i)
		return nil, err
	}
	return ret, nil
}

// Destroy the wp_text_input_manager object.
func (this *ZwpTextInputManagerV3) Destroy() error {
	if this == nil {
		return errors.New("object is nil")
	}
	if err := this.c.request(this, opCodeZwpTextInputManagerV3Destroy); err != nil {
		return err
	}
	delete(this.c.obj, this.i)
	return nil
}

// ZwpTextInputV3 Events
//
// Enter / Leave
// Notification that this seat's text-input focus is on (or left) a
// certain surface.
//
// PreeditString, CommitString, DeleteSurroundingText
// Double-buffered text changes from the input method, applied on done.
//
// Done
// Instruct the application to apply changes to state requested by the
// preedit_string, commit_string and delete_surrounding_text events.
type ZwpTextInputV3Listener interface {
	Enter(surface uint32)
	Leave(surface uint32)
	PreeditString(text string, cursorBegin int32, cursorEnd int32)
	CommitString(text string)
	DeleteSurroundingText(beforeLength uint32, afterLength uint32)
	Done(serial uint32)
}

// The zwp_text_input_v3 interface represents text input and input methods
// associated with a seat. It provides enter/leave events to follow the
// text input focus for a seat.
type ZwpTextInputV3 struct {
	proxy
	l ZwpTextInputV3Listener
}

func newZwpTextInputV3(c *Context) Object {
	o := &ZwpTextInputV3{proxy: newProxy(c)}
	c.register(o)
	return o
}

// Type returns the string wayland type
func (this *ZwpTextInputV3) Type() string {
	return ZwpTextInputV3Interface
}

func (this *ZwpTextInputV3) hasListener() bool {
	return this.l != nil
}

func (this *ZwpTextInputV3) setListener(listener interface{}) error {
	if listener == nil {
		return nil
	}
	l, ok := listener.(ZwpTextInputV3Listener)
	if !ok {
		return errors.Errorf("listener must implement ZwpTextInputV3Listener")
	}
	this.l = l
	return nil
}

func (this *ZwpTextInputV3) dispatch(opCode uint16, payload []byte) error {
	d := &decoder{buf: payload}
	switch opCode {
	case opCodeZwpTextInputV3Enter:
		surface := d.uint32()
		if d.err != nil {
			return d.err
		}
		this.l.Enter(surface)
	case opCodeZwpTextInputV3Leave:
		surface := d.uint32()
		if d.err != nil {
			return d.err
		}
		this.l.Leave(surface)
	case opCodeZwpTextInputV3PreeditString:
		text := d.string()
		cursorBegin := d.int32()
		cursorEnd := d.int32()
		if d.err != nil {
			return d.err
		}
		this.l.PreeditString(text, cursorBegin, cursorEnd)
	case opCodeZwpTextInputV3CommitString:
		text := d.string()
		if d.err != nil {
			return d.err
		}
		this.l.CommitString(text)
	case opCodeZwpTextInputV3DeleteSurroundingText:
		beforeLength := d.uint32()
		afterLength := d.uint32()
		if d.err != nil {
			return d.err
		}
		this.l.DeleteSurroundingText(beforeLength, afterLength)
	case opCodeZwpTextInputV3Done:
		serial := d.uint32()
		if d.err != nil {
			return d.err
		}
		this.l.Done(serial)
	default:
		return errors.Errorf("unknown zwp_text_input_v3 event %d", opCode)
	}
	return nil
}

// Set the content purpose and hint.
//
// Values set with this request are double-buffered. They will get applied
// on the next zwp_text_input_v3.commit request.
func (this *ZwpTextInputV3) SetContentType(hint uint32, purpose uint32) error {
	if this == nil {
		return errors.New("object is nil")
	}
	return this.c.request(this, opCodeZwpTextInputV3SetContentType, hint, purpose)
}

// Atomically applies state changes recently sent to the compositor.
func (this *ZwpTextInputV3) Commit() error {
	if this == nil {
		return errors.New("object is nil")
	}
	return this.c.request(this, opCodeZwpTextInputV3Commit)
}

// Destroy the wp_text_input object. Also disables all surfaces enabled
// through this wp_text_input object.
func (this *ZwpTextInputV3) Destroy() error {
	if this == nil {
		return errors.New("object is nil")
	}
	if err := this.c.request(this, opCodeZwpTextInputV3Destroy); err != nil {
		return err
	}
	delete(this.c.obj, this.i)
	return nil
}
