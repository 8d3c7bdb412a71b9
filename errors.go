package imservice

import (
	"github.com/pkg/errors"

	"github.com/elliotmr/imservice/wl/wlp"
)

var (
	// ErrNotBound is returned by every session operation after the session
	// was destroyed or its connection closed.
	ErrNotBound = wlp.ErrNotBound

	// ErrTransportClosed is returned when the connection to the compositor
	// can no longer be written.
	ErrTransportClosed = wlp.ErrTransportClosed

	// ErrProtocolUnsupported means the compositor does not advertise a
	// required global.
	ErrProtocolUnsupported = wlp.ErrProtocolUnsupported

	// ErrNotActive is returned in strict mode when text is staged or
	// committed while the input method is not active.
	ErrNotActive = errors.New("input method is not active")

	// ErrInvalidText is returned for strings that are not valid UTF-8.
	ErrInvalidText = errors.New("text is not valid utf-8")

	// ErrTextTooLong is returned when staged text exceeds MaxTextLength.
	ErrTextTooLong = errors.New("text too long")
)

// MaxTextLength is the largest string, in bytes, the input method protocol
// accepts in a single request.
const MaxTextLength = 4000
