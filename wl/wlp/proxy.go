package wlp

// proxy holds the state every protocol object shares.
type proxy struct {
	i uint32
	c *Context
	q *Queue
}

func newProxy(c *Context) proxy {
	return proxy{i: c.next(), c: c}
}

// ID returns the wayland object identifier
func (p *proxy) ID() uint32 {
	return p.i
}

// Context returns the connection the object lives on.
func (p *proxy) Context() *Context {
	return p.c
}

func (p *proxy) queue() *Queue {
	return p.q
}

func (p *proxy) setQueue(q *Queue) {
	p.q = q
}

// child creates obj on the same queue as p.
func (p *proxy) child(obj Object) {
	obj.setQueue(p.q)
}
