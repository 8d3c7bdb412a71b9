package main

import (
	"bufio"
	"io"

	"github.com/godbus/dbus/v5"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const (
	busName      = "org.elliotmr.IMService"
	busPath      = dbus.ObjectPath("/org/elliotmr/IMService")
	busInterface = "org.elliotmr.IMService"
)

// request is text to commit, handed from a control goroutine to the
// dispatch loop. The loop answers on reply.
type request struct {
	text  string
	reply chan error
}

func newRequest(text string) request {
	return request{text: text, reply: make(chan error, 1)}
}

// control is exported on the session bus. Its methods run on the bus
// goroutine.
type control struct {
	requests chan<- request
}

// Commit types text into the focused application.
func (c *control) Commit(text string) *dbus.Error {
	req := newRequest(text)
	c.requests <- req
	if err := <-req.reply; err != nil {
		return dbus.MakeFailedError(err)
	}
	return nil
}

// exportControl claims busName on the session bus and exports the
// control object.
func exportControl(requests chan<- request) (*dbus.Conn, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, errors.Wrap(err, "unable to connect to session bus")
	}
	reply, err := conn.RequestName(busName, dbus.NameFlagDoNotQueue)
	if err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "unable to request bus name")
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		conn.Close()
		return nil, errors.Errorf("bus name %s already taken", busName)
	}
	if err := conn.Export(&control{requests: requests}, busPath, busInterface); err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "unable to export control object")
	}
	return conn, nil
}

// readLines commits every line read from r, one request at a time.
func readLines(r io.Reader, requests chan<- request, log zerolog.Logger) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		req := newRequest(scanner.Text())
		requests <- req
		if err := <-req.reply; err != nil {
			log.Error().Err(err).Msg("unable to commit line")
		}
	}
	if err := scanner.Err(); err != nil {
		log.Warn().Err(err).Msg("stopped reading input")
	}
}
