package wlp

import (
	"github.com/pkg/errors"
)

// The input method manager allows the client to become the input method on
// a chosen seat.
//
// No more than one input method must be associated with any seat at any
// given time.
type ZwpInputMethodManagerV2 struct {
	proxy
}

func newZwpInputMethodManagerV2(c *Context) Object {
	o := &ZwpInputMethodManagerV2{proxy: newProxy(c)}
	c.register(o)
	return o
}

func init() {
	registerConstructor(ZwpInputMethodManagerV2Interface, newZwpInputMethodManagerV2)
}

// Type returns the string wayland type
func (this *ZwpInputMethodManagerV2) Type() string {
	return ZwpInputMethodManagerV2Interface
}

func (this *ZwpInputMethodManagerV2) hasListener() bool {
	return false
}

func (this *ZwpInputMethodManagerV2) setListener(listener interface{}) error {
	return nil
}

func (this *ZwpInputMethodManagerV2) dispatch(opCode uint16, payload []byte) error {
	return errors.Errorf("zwp_input_method_manager_v2 has no events, got %d", opCode)
}

// Request a new input zwp_input_method_v2 object associated with a given
// seat.
func (this *ZwpInputMethodManagerV2) GetInputMethod(l ZwpInputMethodV2Listener, seat *Seat) (*ZwpInputMethodV2, error) {
	if this == nil {
		return nil, errors.New("object is nil")
	}
	if seat == nil {
		return nil, errors.Wrap(ErrNotBound, "seat is nil")
	}
	ret := newZwpInputMethodV2(this.c).(*ZwpInputMethodV2)
	ret.l = l
	this.child(ret)
	if err := this.c.request(this, opCodeZwpInputMethodManagerV2GetInputMethod, seat.ID(), ret.i); err != nil {
		delete(this.c.obj, ret.i)
		return nil, err
	}
	return ret, nil
}

// Destroys the zwp_input_method_manager_v2 object.
//
// The zwp_input_method_v2 objects originating from it remain valid.
func (this *ZwpInputMethodManagerV2) Destroy() error {
	if this == nil {
		return errors.New("object is nil")
	}
	if err := this.c.request(this, opCodeZwpInputMethodManagerV2Destroy); err != nil {
		return err
	}
	delete(this.c.obj, this.i)
	return nil
}

// ZwpInputMethodV2 Events
//
// Activate
// Notification that a text input focused on this seat requested the input
// method to be activated. This event serves the purpose of providing the
// compositor with an active input method. The state is double-buffered and
// reset by it; it takes effect on the next done.
//
// Deactivate
// Notification that no focused text input currently needs an active input
// method on this seat. Double-buffered.
//
// SurroundingText
// Updates the surrounding plain text around the cursor, excluding the
// preedit text. Double-buffered.
//
// TextChangeCause
// Tells the input method why the text surrounding the cursor changed.
// Double-buffered.
//
// ContentType
// Indicates the content type and hint for the current
// zwp_input_method_v2 instance. Double-buffered.
//
// Done
// Atomically applies state changes recently sent to the client.
//
// Unavailable
// The input method ceased to be available. The client should destroy the
// object.
type ZwpInputMethodV2Listener interface {
	Activate()
	Deactivate()
	SurroundingText(text string, cursor uint32, anchor uint32)
	TextChangeCause(cause uint32)
	ContentType(hint uint32, purpose uint32)
	Done()
	Unavailable()
}

// An input method object allows for clients to compose text.
//
// The objects connects the client to a text input in an application, and
// lets the client to serve as an input method for a seat.
type ZwpInputMethodV2 struct {
	proxy
	l ZwpInputMethodV2Listener
}

func newZwpInputMethodV2(c *Context) Object {
	o := &ZwpInputMethodV2{proxy: newProxy(c)}
	c.register(o)
	return o
}

// Type returns the string wayland type
func (this *ZwpInputMethodV2) Type() string {
	return ZwpInputMethodV2Interface
}

func (this *ZwpInputMethodV2) hasListener() bool {
	return this.l != nil
}

func (this *ZwpInputMethodV2) setListener(listener interface{}) error {
	l, ok := listener.(ZwpInputMethodV2Listener)
	if !ok {
		return errors.Errorf("listener must implement ZwpInputMethodV2Listener")
	}
	this.l = l
	return nil
}

func (this *ZwpInputMethodV2) dispatch(opCode uint16, payload []byte) error {
	d := &decoder{buf: payload}
	switch opCode {
	case opCodeZwpInputMethodV2Activate:
		this.l.Activate()
	case opCodeZwpInputMethodV2Deactivate:
		this.l.Deactivate()
	case opCodeZwpInputMethodV2SurroundingText:
		text := d.string()
		cursor := d.uint32()
		anchor := d.uint32()
		if d.err != nil {
			return d.err
		}
		this.l.SurroundingText(text, cursor, anchor)
	case opCodeZwpInputMethodV2TextChangeCause:
		cause := d.uint32()
		if d.err != nil {
			return d.err
		}
		this.l.TextChangeCause(cause)
	case opCodeZwpInputMethodV2ContentType:
		hint := d.uint32()
		purpose := d.uint32()
		if d.err != nil {
			return d.err
		}
		this.l.ContentType(hint, purpose)
	case opCodeZwpInputMethodV2Done:
		this.l.Done()
	case opCodeZwpInputMethodV2Unavailable:
		this.l.Unavailable()
	default:
		return errors.Errorf("unknown zwp_input_method_v2 event %d", opCode)
	}
	return nil
}

// Send the commit string text for insertion to the application.
//
// Inserts a string at current cursor position (see commit event
// sequence). The string to commit could be either just a single character
// after a key press or the result of some composing.
//
// The argument text is a buffer containing the string to insert. There is
// a maximum length of wayland messages, so text can not be longer than
// 4000 bytes.
//
// Values set with this event are double-buffered. They must be applied
// and reset to initial on the next zwp_text_input_v3.commit request.
func (this *ZwpInputMethodV2) CommitString(text string) error {
	if this == nil {
		return errors.New("object is nil")
	}
	return this.c.request(this, opCodeZwpInputMethodV2CommitString, text)
}

// Send the pre-edit string text to the application text input.
//
// Place a new composing text (pre-edit) at the current cursor position.
// Any previously set composing text must be removed. Any previously
// existing selected text must be removed. The cursor is moved to a new
// position within the preedit string.
//
// Values set with this event are double-buffered. They must be applied on
// the next zwp_input_method_v2.commit request.
func (this *ZwpInputMethodV2) SetPreeditString(text string, cursorBegin int32, cursorEnd int32) error {
	if this == nil {
		return errors.New("object is nil")
	}
	return this.c.request(this, opCodeZwpInputMethodV2SetPreeditString, text, cursorBegin, cursorEnd)
}

// Remove the surrounding text.
//
// before_length and after_length are the number of bytes before and after
// the current cursor index (excluding the preedit text) to delete.
//
// Values set with this event are double-buffered. They must be applied
// and reset on the next zwp_input_method_v2.commit request.
func (this *ZwpInputMethodV2) DeleteSurroundingText(beforeLength uint32, afterLength uint32) error {
	if this == nil {
		return errors.New("object is nil")
	}
	return this.c.request(this, opCodeZwpInputMethodV2DeleteSurroundingText, beforeLength, afterLength)
}

// Apply state changes from commit_string, set_preedit_string and
// delete_surrounding_text requests.
//
// The serial number reflects the last state of the zwp_input_method_v2
// object known to the client. The value of the serial argument must be
// equal to the number of done events already issued by that object.
func (this *ZwpInputMethodV2) Commit(serial uint32) error {
	if this == nil {
		return errors.New("object is nil")
	}
	return this.c.request(this, opCodeZwpInputMethodV2Commit, serial)
}

// Destroys the zwp_text_input_v2 object and any associated child
// objects, i.e. zwp_input_popup_surface_v2 and
// zwp_input_method_keyboard_grab_v2.
func (this *ZwpInputMethodV2) Destroy() error {
	if this == nil {
		return errors.New("object is nil")
	}
	if err := this.c.request(this, opCodeZwpInputMethodV2Destroy); err != nil {
		return err
	}
	delete(this.c.obj, this.i)
	return nil
}
