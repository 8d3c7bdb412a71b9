// Package imservice is a Wayland input method client. A Session binds the
// zwp_input_method_v2 protocol on one seat, follows the compositor's
// activation state and sends staged text to the focused application.
//
// All calls must happen on the goroutine that dispatches the session's
// queue.
package imservice

import (
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/elliotmr/imservice/wl/wlp"
)

// State is the lifecycle state of a Session.
type State int

const (
	Unbound State = iota
	Bound
	Active
	Inactive
	Destroyed
)

func (s State) String() string {
	switch s {
	case Unbound:
		return "unbound"
	case Bound:
		return "bound"
	case Active:
		return "active"
	case Inactive:
		return "inactive"
	case Destroyed:
		return "destroyed"
	}
	return "unknown"
}

// Preedit is composing text shown at the cursor.
type Preedit struct {
	Text        string
	CursorBegin int32
	CursorEnd   int32
}

// Deletion removes bytes around the cursor.
type Deletion struct {
	Before uint32
	After  uint32
}

// ContentType is a hint/purpose pair.
type ContentType struct {
	Hint    ContentHint
	Purpose ContentPurpose
}

// Batch is the state staged for the next Commit. Nil fields are not sent.
type Batch struct {
	Text        *string
	Preedit     *Preedit
	Delete      *Deletion
	ContentType *ContentType
}

// Empty reports whether nothing is staged.
func (b Batch) Empty() bool {
	return b.Text == nil && b.Preedit == nil && b.Delete == nil && b.ContentType == nil
}

// Surrounding is the text around the cursor as last reported by the
// compositor.
type Surrounding struct {
	Text   string
	Cursor uint32
	Anchor uint32
}

type imState struct {
	active      bool
	surrounding Surrounding
	cause       ChangeCause
	content     ContentType
}

// Session is an input method bound to one seat.
type Session struct {
	ctx *wlp.Context
	im  *wlp.ZwpInputMethodV2
	ti  *wlp.ZwpTextInputV3

	tiManager *wlp.ZwpTextInputManagerV3
	log       zerolog.Logger
	hasLog    bool
	strict    bool

	keyboard KeyboardVisibility
	hints    HintPurpose

	state   State
	serial  uint32
	staged  Batch
	pending imState
	current imState
	shown   bool
}

// NewSession creates the input method for seat. host may implement
// KeyboardVisibility, HintPurpose, both or neither. The request is only
// buffered; it is sent with the next dispatch, roundtrip or commit.
func NewSession(seat *wlp.Seat, manager *wlp.ZwpInputMethodManagerV2, host interface{}, opts ...Option) (*Session, error) {
	if seat == nil || manager == nil {
		return nil, errors.Wrap(ErrNotBound, "seat and input method manager are required")
	}
	s := &Session{
		ctx:   manager.Context(),
		state: Unbound,
	}
	for _, opt := range opts {
		opt(s)
	}
	if !s.hasLog {
		s.log = s.ctx.Logger().With().Str("component", "imservice").Logger()
	}
	s.keyboard, _ = host.(KeyboardVisibility)
	s.hints, _ = host.(HintPurpose)

	im, err := manager.GetInputMethod(imListener{s}, seat)
	if err != nil {
		return nil, errors.Wrap(err, "unable to get input method")
	}
	s.im = im
	if s.tiManager != nil {
		ti, err := s.tiManager.GetTextInput(nil, seat)
		if err != nil {
			return nil, errors.Wrap(err, "unable to get text input")
		}
		s.ti = ti
	}
	s.state = Bound
	s.log.Debug().
		Uint32("id", im.ID()).
		Bool("keyboard", s.keyboard != nil).
		Bool("hints", s.hints != nil).
		Bool("carrier", s.ti != nil).
		Msg("input method bound")
	return s, nil
}

func (s *Session) usable() error {
	if s.state == Destroyed || s.ctx.Closed() {
		return ErrNotBound
	}
	if s.ctx.Err != nil {
		return errors.Wrap(ErrTransportClosed, s.ctx.Err.Error())
	}
	return nil
}

func (s *Session) staging() error {
	if err := s.usable(); err != nil {
		return err
	}
	if s.strict && s.state != Active {
		return ErrNotActive
	}
	return nil
}

func checkText(text string) error {
	if !utf8.ValidString(text) {
		return ErrInvalidText
	}
	if len(text) > MaxTextLength {
		return errors.Wrapf(ErrTextTooLong, "%d bytes, at most %d", len(text), MaxTextLength)
	}
	return nil
}

// CommitString stages text for insertion at the cursor. Text staged by
// several calls before one Commit is inserted in order.
func (s *Session) CommitString(text string) error {
	if err := s.staging(); err != nil {
		return err
	}
	if err := checkText(text); err != nil {
		return err
	}
	if s.staged.Text != nil {
		text = *s.staged.Text + text
		if len(text) > MaxTextLength {
			return errors.Wrapf(ErrTextTooLong, "%d bytes staged, at most %d", len(text), MaxTextLength)
		}
	}
	s.staged.Text = &text
	return nil
}

// SetHintPurpose stages the content type, replacing any unsent one.
func (s *Session) SetHintPurpose(hint ContentHint, purpose ContentPurpose) error {
	if err := s.staging(); err != nil {
		return err
	}
	s.staged.ContentType = &ContentType{Hint: hint, Purpose: purpose}
	return nil
}

// SetPreeditString stages composing text, replacing any unsent one. The
// cursor positions are byte offsets into text; -1 for both hides the
// cursor.
func (s *Session) SetPreeditString(text string, cursorBegin, cursorEnd int32) error {
	if err := s.staging(); err != nil {
		return err
	}
	if err := checkText(text); err != nil {
		return err
	}
	s.staged.Preedit = &Preedit{Text: text, CursorBegin: cursorBegin, CursorEnd: cursorEnd}
	return nil
}

// DeleteSurroundingText stages the removal of before bytes preceding and
// after bytes following the cursor, replacing any unsent deletion.
func (s *Session) DeleteSurroundingText(before, after uint32) error {
	if err := s.staging(); err != nil {
		return err
	}
	s.staged.Delete = &Deletion{Before: before, After: after}
	return nil
}

// Commit sends everything staged, followed by the input method commit,
// as a single write. The staged state is cleared on success. Success
// means the requests were written, not that the compositor applied them.
func (s *Session) Commit() error {
	if err := s.staging(); err != nil {
		return err
	}
	b := s.staged
	err := s.ctx.Batch(func() error {
		if b.ContentType != nil && s.ti != nil {
			if err := s.ti.SetContentType(uint32(b.ContentType.Hint), uint32(b.ContentType.Purpose)); err != nil {
				return err
			}
			if err := s.ti.Commit(); err != nil {
				return err
			}
		}
		if b.Delete != nil {
			if err := s.im.DeleteSurroundingText(b.Delete.Before, b.Delete.After); err != nil {
				return err
			}
		}
		if b.Text != nil {
			if err := s.im.CommitString(*b.Text); err != nil {
				return err
			}
		}
		if b.Preedit != nil {
			if err := s.im.SetPreeditString(b.Preedit.Text, b.Preedit.CursorBegin, b.Preedit.CursorEnd); err != nil {
				return err
			}
		}
		return s.im.Commit(s.serial)
	})
	if err != nil {
		if errors.Is(err, ErrTransportClosed) {
			return errors.Wrap(err, "commit failed")
		}
		if errors.Is(err, ErrNotBound) {
			return err
		}
		return errors.Wrap(err, "unable to encode commit")
	}
	if b.ContentType != nil && s.ti == nil {
		s.log.Debug().
			Stringer("hint", b.ContentType.Hint).
			Stringer("purpose", b.ContentType.Purpose).
			Msg("no text input carrier, content type not sent")
	}
	s.log.Debug().Uint32("serial", s.serial).Bool("empty", b.Empty()).Msg("committed")
	s.staged = Batch{}
	return nil
}

// Destroy releases the input method. Later operations return ErrNotBound.
// Destroying twice is a no-op.
func (s *Session) Destroy() error {
	if s.state == Destroyed {
		return nil
	}
	s.teardown()
	if s.ctx.Closed() || s.ctx.Err != nil {
		return nil
	}
	return s.ctx.Batch(func() error {
		if s.ti != nil {
			if err := s.ti.Destroy(); err != nil {
				return err
			}
		}
		return s.im.Destroy()
	})
}

func (s *Session) teardown() {
	s.state = Destroyed
	s.staged = Batch{}
	if s.shown && s.keyboard != nil {
		s.keyboard.HideKeyboard()
	}
	s.shown = false
	s.log.Debug().Msg("input method destroyed")
}

// IsActive reports whether the compositor last marked this input method
// active. A destroyed session is never active.
func (s *Session) IsActive() bool {
	return s.state == Active
}

// State returns the lifecycle state.
func (s *Session) State() State {
	return s.state
}

// Pending returns the state staged for the next Commit.
func (s *Session) Pending() Batch {
	return s.staged
}

// Serial is the number of done events received.
func (s *Session) Serial() uint32 {
	return s.serial
}

// SurroundingText returns the applied surrounding text.
func (s *Session) SurroundingText() Surrounding {
	return s.current.surrounding
}

// TextChangeCause returns why the surrounding text last changed.
func (s *Session) TextChangeCause() ChangeCause {
	return s.current.cause
}

// ContentType returns the applied hint/purpose of the focused field.
func (s *Session) ContentType() ContentType {
	return s.current.content
}

// apply makes the double-buffered state current and notifies the host.
func (s *Session) apply() {
	s.serial++
	was := s.current
	s.current = s.pending
	if s.state == Destroyed {
		return
	}

	switch {
	case s.current.active && s.state != Active:
		s.state = Active
		s.log.Debug().Uint32("serial", s.serial).Msg("activated")
		if s.keyboard != nil && !s.shown {
			s.shown = true
			s.keyboard.ShowKeyboard()
		}
		if s.hints != nil {
			s.hints.SetHintPurpose(s.current.content.Hint, s.current.content.Purpose)
		}
	case !s.current.active && s.state == Active:
		s.state = Inactive
		s.log.Debug().Uint32("serial", s.serial).Msg("deactivated")
		if s.keyboard != nil && s.shown {
			s.shown = false
			s.keyboard.HideKeyboard()
		}
	case s.current.active && s.current.content != was.content:
		if s.hints != nil {
			s.hints.SetHintPurpose(s.current.content.Hint, s.current.content.Purpose)
		}
	}
}

// imListener receives the input method events for a Session.
type imListener struct {
	s *Session
}

// Activate resets the pending state as the protocol requires.
func (l imListener) Activate() {
	l.s.pending = imState{active: true}
}

func (l imListener) Deactivate() {
	l.s.pending.active = false
}

func (l imListener) SurroundingText(text string, cursor uint32, anchor uint32) {
	l.s.pending.surrounding = Surrounding{Text: text, Cursor: cursor, Anchor: anchor}
}

func (l imListener) TextChangeCause(cause uint32) {
	l.s.pending.cause = ChangeCause(cause)
}

func (l imListener) ContentType(hint uint32, purpose uint32) {
	l.s.pending.content = ContentType{Hint: ContentHint(hint), Purpose: ContentPurpose(purpose)}
}

func (l imListener) Done() {
	l.s.apply()
}

// Unavailable means another input method owns the seat. The object is
// useless afterwards and is destroyed.
func (l imListener) Unavailable() {
	s := l.s
	if s.state == Destroyed {
		return
	}
	s.log.Warn().Msg("input method unavailable, another one is bound to the seat")
	s.teardown()
	if s.ti != nil {
		if err := s.ti.Destroy(); err != nil {
			s.log.Warn().Err(err).Msg("unable to destroy text input")
		}
	}
	if err := s.im.Destroy(); err != nil {
		s.log.Warn().Err(err).Msg("unable to destroy input method")
	}
}
