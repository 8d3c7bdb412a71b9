package imservice

import (
	"github.com/rs/zerolog"

	"github.com/elliotmr/imservice/wl/wlp"
)

// Option configures a Session.
type Option func(*Session)

// Strict rejects staging and committing while the input method is not
// active. By default such calls are accepted and the compositor ignores
// them.
func Strict() Option {
	return func(s *Session) {
		s.strict = true
	}
}

// WithTextInput carries the staged hint/purpose pair on a text input
// object created from manager, committed together with the input method
// state. Without it the pair is only recorded.
func WithTextInput(manager *wlp.ZwpTextInputManagerV3) Option {
	return func(s *Session) {
		s.tiManager = manager
	}
}

// WithLogger replaces the logger derived from the connection.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Session) {
		s.log = log.With().Str("component", "imservice").Logger()
		s.hasLog = true
	}
}
