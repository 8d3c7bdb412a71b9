package wlp

import (
	"github.com/pkg/errors"
)

// MaxQueued bounds the number of undispatched messages a queue holds.
const MaxQueued = 65535

// Message is one incoming event as read from the wire.
type Message struct {
	Sender  uint32
	Opcode  uint16
	Payload []byte
}

// DefaultHandler receives messages addressed to objects that are unknown
// or that have no listener attached. iface is "" for unknown objects.
type DefaultHandler func(msg Message, iface string)

type entry struct {
	msg  Message
	prev *entry
	next *entry
}

// Queue is an ordered list of incoming messages for the proxies attached
// to it. Every proxy belongs to exactly one queue, and a queue must only
// be used from one goroutine.
type Queue struct {
	c *Context

	count int
	head  *entry
	tail  *entry
	free  *entry

	maxEventsSeen int
}

// NewQueue creates an empty queue on the connection.
func (c *Context) NewQueue() *Queue {
	return &Queue{c: c}
}

// Attach moves obj to q. Messages already queued for obj elsewhere stay
// where they are.
func (q *Queue) Attach(obj Object) {
	obj.setQueue(q)
}

// Len is the number of messages waiting to be dispatched.
func (q *Queue) Len() int {
	return q.count
}

func (q *Queue) add(msg Message) error {
	if q.count >= MaxQueued {
		return errors.New("event queue is full")
	}

	var e *entry
	if q.free == nil {
		e = &entry{}
	} else {
		e = q.free
		q.free = q.free.next
	}
	e.msg = msg

	if q.tail != nil {
		q.tail.next = e
		e.prev = q.tail
		q.tail = e
		e.next = nil
	} else {
		if q.head != nil {
			panic("invalid queue state, tail exists without head")
		}
		q.head = e
		q.tail = e
		e.prev = nil
		e.next = nil
	}

	q.count++
	if q.count > q.maxEventsSeen {
		q.maxEventsSeen = q.count
	}
	return nil
}

func (q *Queue) cut(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	}
	if e == q.head {
		if e.prev != nil {
			panic("invalid queue state, queue head is not beginning")
		}
		q.head = e.next
	}
	if e == q.tail {
		if e.next != nil {
			panic("invalid queue state, queue tail is not the end")
		}
		q.tail = e.prev
	}
	e.msg = Message{}
	e.prev = nil
	e.next = q.free
	q.free = e
	q.count--
}

// Dispatch makes one non-blocking pass: buffered requests are flushed,
// every message already readable from the connection is routed to its
// queue, then the messages pending on q are delivered in arrival order.
// No pending messages is an empty pass, not an error.
func (q *Queue) Dispatch(def DefaultHandler) (int, error) {
	if err := q.c.Flush(); err != nil {
		return 0, errors.Wrap(err, "unable to flush requests")
	}
	if err := q.c.pump(q, false); err != nil {
		n := q.dispatchPending(def)
		return n, errors.Wrap(err, "unable to read events")
	}
	n := q.dispatchPending(def)
	return n, q.c.Err
}

// Roundtrip blocks until the compositor has processed every request sent
// so far, dispatching q while it waits. There is no timeout.
func (q *Queue) Roundtrip(def DefaultHandler) error {
	done := false
	cb, err := q.c.Display.Sync(CallbackFunc(func(uint32) { done = true }))
	if err != nil {
		return errors.Wrap(err, "unable to create display sync")
	}
	q.Attach(cb)
	if err := q.c.Flush(); err != nil {
		return errors.Wrap(err, "unable to flush requests")
	}
	for {
		q.dispatchPending(def)
		if q.c.Err != nil {
			return q.c.Err
		}
		if done {
			break
		}
		if err := q.c.pump(q, true); err != nil {
			q.dispatchPending(def)
			return errors.Wrap(err, "roundtrip interrupted")
		}
	}
	q.c.sealGlobals()
	return nil
}

func (q *Queue) dispatchPending(def DefaultHandler) int {
	n := 0
	for q.head != nil {
		msg := q.head.msg
		q.cut(q.head)
		q.c.deliver(msg, def)
		n++
	}
	return n
}
