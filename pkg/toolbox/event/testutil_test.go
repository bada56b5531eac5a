package event_test

import (
	"context"

	"github.com/randalmurphal/toolbox/pkg/toolbox/event"
)

// widget is a minimal dispatch-capable object.
type widget struct {
	event.Base
	name string
}

func newWidget(reg *event.Registry, class *event.Class, name string) *widget {
	return &widget{Base: event.NewBase(reg, class), name: name}
}

// call records one handler invocation.
type call struct {
	handler string
	object  string
	payload any
}

// recorder hands out handlers that log their calls.
type recorder struct {
	calls []call
}

func (r *recorder) handler(name string, res event.Result) event.Handler {
	return func(_ context.Context, obj event.Object, _ event.ID, _ event.IDBlock, payload any) (event.Result, error) {
		c := call{handler: name, payload: payload}
		if w, ok := obj.(*widget); ok {
			c.object = w.name
		}
		r.calls = append(r.calls, c)
		return res, nil
	}
}

func (r *recorder) names() []string {
	out := make([]string, len(r.calls))
	for i, c := range r.calls {
		out[i] = c.handler
	}
	return out
}

func (r *recorder) trail() []string {
	out := make([]string, len(r.calls))
	for i, c := range r.calls {
		out[i] = c.object + ":" + c.handler
	}
	return out
}
