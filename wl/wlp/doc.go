// Package wlp speaks the wayland wire protocol for the handful of
// interfaces an input method client needs: wl_display, wl_registry,
// wl_callback, wl_seat, zwp_input_method_v2 and zwp_text_input_v3.
//
// A Context owns the connection and is driven from a single goroutine.
// Requests are buffered until Flush (or a Queue's Dispatch/Roundtrip),
// and incoming events are only read when a Queue is dispatched.
package wlp

//go:generate go run ../wlgen -xml ../wlgen/protocols/wayland.xml -out wayland_consts.go
//go:generate go run ../wlgen -xml ../wlgen/protocols/input-method-unstable-v2.xml -out input-method_consts.go
//go:generate go run ../wlgen -xml ../wlgen/protocols/text-input-unstable-v3.xml -out text-input_consts.go
