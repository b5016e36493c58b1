// Package app glues the pieces of the framework together: it routes
// messages to the extension handlers and executes each transaction
// against a cache wrap so that a failed delivery leaves no partial
// state behind.
package app

import (
	"regexp"

	"github.com/seedswap/seedswap"
	"github.com/seedswap/seedswap/errors"
)

// isPath validates a message routing path.
var isPath = regexp.MustCompile(`^[a-z0-9_]+(/[a-z0-9_]+)*$`).MatchString

// Router maintains a list of every message path and the handler
// processing messages of that path.
type Router struct {
	handlers map[string]seedswap.Handler
}

var _ seedswap.Registry = (*Router)(nil)
var _ seedswap.Handler = (*Router)(nil)

// NewRouter initializes a router with no routes.
func NewRouter() *Router {
	return &Router{
		handlers: make(map[string]seedswap.Handler),
	}
}

// Handle implements seedswap.Registry interface.
func (r *Router) Handle(m seedswap.Msg, h seedswap.Handler) {
	path := m.Path()
	if !isPath(path) {
		panic("invalid path: " + path)
	}
	if _, ok := r.handlers[path]; ok {
		panic("path already registered: " + path)
	}
	r.handlers[path] = h
}

// handler returns the registered Handler for this message, or a
// notFoundHandler if none was registered for that path.
func (r *Router) handler(m seedswap.Msg) seedswap.Handler {
	if h, ok := r.handlers[m.Path()]; ok {
		return h
	}
	return notFoundHandler(m.Path())
}

// Check dispatches to the proper handler based on the message path.
func (r *Router) Check(ctx seedswap.Context, store seedswap.KVStore, tx seedswap.Tx) (*seedswap.CheckResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	return r.handler(msg).Check(ctx, store, tx)
}

// Deliver dispatches to the proper handler based on the message path.
func (r *Router) Deliver(ctx seedswap.Context, store seedswap.KVStore, tx seedswap.Tx) (*seedswap.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	return r.handler(msg).Deliver(ctx, store, tx)
}

// notFoundHandler always returns ErrNotFound for the given path.
type notFoundHandler string

func (h notFoundHandler) Check(ctx seedswap.Context, store seedswap.KVStore, tx seedswap.Tx) (*seedswap.CheckResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", string(h))
}

func (h notFoundHandler) Deliver(ctx seedswap.Context, store seedswap.KVStore, tx seedswap.Tx) (*seedswap.DeliverResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", string(h))
}
