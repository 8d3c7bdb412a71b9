// Command imservice-demo registers as the input method of the default seat
// and types text into the focused application. Text comes from SIGUSR1
// ("HelloWorld"), from lines typed on an interactive stdin, or from the
// Commit method of org.elliotmr.IMService on the session bus.
package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/elliotmr/imservice"
	"github.com/elliotmr/imservice/wl"
)

const tick = 16 * time.Millisecond

// connector is the host side of the session. It only logs.
type connector struct {
	log zerolog.Logger
}

func (c *connector) ShowKeyboard() {
	c.log.Info().Msg("show keyboard")
}

func (c *connector) HideKeyboard() {
	c.log.Info().Msg("hide keyboard")
}

func (c *connector) SetHintPurpose(hint imservice.ContentHint, purpose imservice.ContentPurpose) {
	c.log.Info().Stringer("hint", hint).Stringer("purpose", purpose).Msg("content type changed")
}

func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if s := os.Getenv("IMSERVICE_LOG_LEVEL"); s != "" {
		if l, err := zerolog.ParseLevel(s); err == nil {
			level = l
		}
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().Logger()
}

func main() {
	log := newLogger()
	if err := run(log); err != nil {
		log.Fatal().Err(err).Msg("imservice-demo failed")
	}
}

func run(log zerolog.Logger) error {
	client := wl.NewClient(log)
	if err := client.Connect(""); err != nil {
		return err
	}
	defer client.Close()

	seat, err := client.Seat()
	if err != nil {
		return err
	}
	manager, err := client.InputMethodManager()
	if err != nil {
		if errors.Is(err, imservice.ErrProtocolUnsupported) {
			return errors.Wrap(err, "compositor does not understand the input method protocol")
		}
		return err
	}
	var opts []imservice.Option
	if ti, err := client.TextInputManager(); err == nil {
		opts = append(opts, imservice.WithTextInput(ti))
	} else {
		log.Debug().Err(err).Msg("no text input carrier")
	}

	session, err := imservice.NewSession(seat, manager, &connector{log: log}, opts...)
	if err != nil {
		return err
	}
	defer session.Destroy()

	requests := make(chan request)
	if bus, err := exportControl(requests); err != nil {
		log.Warn().Err(err).Msg("d-bus control unavailable")
	} else {
		defer bus.Close()
		log.Info().Str("name", busName).Msg("d-bus control exported")
	}
	if term.IsTerminal(int(os.Stdin.Fd())) {
		go readLines(os.Stdin, requests, log)
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGUSR1)
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	log.Info().Int("pid", os.Getpid()).Msg("running, send SIGUSR1 to type")
	for {
		select {
		case sig := <-sigs:
			if sig != syscall.SIGUSR1 {
				log.Info().Stringer("signal", sig).Msg("shutting down")
				return nil
			}
			if err := commitText(session, "HelloWorld"); err != nil {
				log.Error().Err(err).Msg("commit failed")
			}
		case req := <-requests:
			req.reply <- commitText(session, req.text)
		case <-ticker.C:
			if _, err := client.Dispatch(nil); err != nil {
				return errors.Wrap(err, "dispatch failed")
			}
			if session.State() == imservice.Destroyed {
				return errors.New("input method is no longer available")
			}
		}
	}
}

func commitText(session *imservice.Session, text string) error {
	if err := session.CommitString(text); err != nil {
		return err
	}
	return session.Commit()
}
