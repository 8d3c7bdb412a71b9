package wlp

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrTransportClosed is returned once the connection to the compositor
	// can no longer be read or written. It is sticky.
	ErrTransportClosed = errors.New("wayland transport closed")

	// ErrProtocolUnsupported is returned when the compositor does not
	// advertise a global at the requested version.
	ErrProtocolUnsupported = errors.New("protocol not supported by compositor")

	// ErrNotBound is returned by requests on objects that were destroyed or
	// whose context was closed.
	ErrNotBound = errors.New("object is not bound")

	// ErrNoGlobals is returned by global lookups issued before the initial
	// roundtrip completed.
	ErrNoGlobals = errors.New("global registry not yet received")
)

// ProtocolError is a fatal wl_display.error sent by the compositor.
type ProtocolError struct {
	ObjectID uint32
	Code     uint32
	Message  string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("protocol error on object %d, code %d: %s", e.ObjectID, e.Code, e.Message)
}

// Unwrap lets errors.Is match ErrTransportClosed, since the compositor
// disconnects after sending the error.
func (e *ProtocolError) Unwrap() error {
	return ErrTransportClosed
}

// Cause implements the pkg/errors causer interface.
func (e *ProtocolError) Cause() error {
	return ErrTransportClosed
}
