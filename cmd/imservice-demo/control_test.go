package main

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// serve answers requests with errs in order and records the texts.
func serve(requests <-chan request, errs ...error) <-chan []string {
	out := make(chan []string, 1)
	go func() {
		var texts []string
		for _, err := range errs {
			req := <-requests
			texts = append(texts, req.text)
			req.reply <- err
		}
		out <- texts
	}()
	return out
}

func TestReadLines(t *testing.T) {
	requests := make(chan request)
	got := serve(requests, nil, errors.New("boom"), nil)
	readLines(strings.NewReader("hello\nwörld\n\n"), requests, zerolog.Nop())
	assert.Equal(t, []string{"hello", "wörld", ""}, <-got)
}

func TestControlCommit(t *testing.T) {
	requests := make(chan request)
	got := serve(requests, nil, errors.New("input method is not active"))
	c := &control{requests: requests}

	assert.Nil(t, c.Commit("42"))
	derr := c.Commit("43")
	require.NotNil(t, derr)
	assert.Equal(t, "org.freedesktop.DBus.Error.Failed", derr.Name)
	assert.Equal(t, []string{"42", "43"}, <-got)
}
