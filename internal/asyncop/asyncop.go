// Package asyncop provides a generic state wrapper around asynchronous
// operations that return the api success/error envelope. Views poll the
// state (loading/error/success) instead of handling promise-style
// callbacks inline.
package asyncop

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/medxscan/internal/api"
)

// FallbackErrorMessage is reported when an envelope is unsuccessful but
// carries no error text.
const FallbackErrorMessage = "an unexpected error occurred"

// State is a snapshot of one operation's lifecycle. Each Execute replaces
// the previous state entirely.
type State[T any] struct {
	Data      *T
	Err       string
	IsLoading bool
	IsSuccess bool
}

// Operation tracks the lifecycle of repeated invocations of an async call.
//
// Overlapping Execute calls are not serialized, but each Execute bumps an
// internal generation counter and a settling call only publishes its result
// while it is still the newest: a superseded in-flight call can never
// overwrite a fresher one's state, and its callbacks never fire.
type Operation[T any] struct {
	mu        sync.Mutex
	state     State[T]
	gen       uint64
	done      chan struct{}
	onSuccess func(T)
	onError   func(string)
}

// Option configures an Operation.
type Option[T any] func(*Operation[T])

// WithOnSuccess registers a side-effect callback fired exactly once per
// settled, non-superseded successful call.
func WithOnSuccess[T any](fn func(T)) Option[T] {
	return func(o *Operation[T]) { o.onSuccess = fn }
}

// WithOnError registers a side-effect callback fired exactly once per
// settled, non-superseded failed call.
func WithOnError[T any](fn func(string)) Option[T] {
	return func(o *Operation[T]) { o.onError = fn }
}

func New[T any](opts ...Option[T]) *Operation[T] {
	o := &Operation[T]{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// State returns a snapshot of the current state.
func (o *Operation[T]) State() State[T] {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Execute starts fn on its own goroutine and flips the state to loading.
// Transport errors from fn become Err; unsuccessful envelopes become Err
// with the envelope's message; successful envelopes publish Data.
func (o *Operation[T]) Execute(ctx context.Context, fn func(context.Context) (*api.Response[T], error)) {
	o.mu.Lock()
	o.gen++
	gen := o.gen
	done := make(chan struct{})
	o.done = done
	o.state = State[T]{IsLoading: true}
	o.mu.Unlock()

	go func() {
		defer close(done)
		resp, err := fn(ctx)
		o.settle(gen, resp, err)
	}()
}

// Wait blocks until the most recently started call settles. A superseded
// call may still be running afterwards; its result is discarded either way.
func (o *Operation[T]) Wait() {
	o.mu.Lock()
	done := o.done
	o.mu.Unlock()
	if done != nil {
		<-done
	}
}

// Reset clears the state. In-flight calls are not cancelled, but they are
// superseded and will not publish.
func (o *Operation[T]) Reset() {
	o.mu.Lock()
	o.gen++
	o.done = nil
	o.state = State[T]{}
	o.mu.Unlock()
}

func (o *Operation[T]) settle(gen uint64, resp *api.Response[T], err error) {
	o.mu.Lock()
	if gen != o.gen {
		o.mu.Unlock()
		return
	}

	var st State[T]
	switch {
	case err != nil:
		st = State[T]{Err: err.Error()}
	case resp != nil && resp.Success && resp.Data != nil:
		st = State[T]{Data: resp.Data, IsSuccess: true}
	default:
		msg := FallbackErrorMessage
		if resp != nil && resp.Error != "" {
			msg = resp.Error
		}
		st = State[T]{Err: msg}
	}
	o.state = st
	onSuccess, onError := o.onSuccess, o.onError
	o.mu.Unlock()

	if st.IsSuccess {
		if onSuccess != nil {
			onSuccess(*st.Data)
		}
		return
	}
	if onError != nil {
		onError(st.Err)
	}
}
