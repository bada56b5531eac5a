package event_test

import (
	"testing"

	"github.com/randalmurphal/toolbox/pkg/toolbox/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entryClasses(entries []event.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Class.Name()
	}
	return out
}

func TestOwnerMergesClassChainMostDerivedFirst(t *testing.T) {
	rec := &recorder{}
	b := event.NewBuilder()
	a := event.NewClass("A", nil)
	bc := event.NewClass("B", a)

	require.NoError(t, b.Class(a).OnToolbox(5, rec.handler("a", event.Handled)))
	require.NoError(t, b.Class(bc).OnToolbox(5, rec.handler("b", event.Handled)))
	reg := b.Freeze()

	assert.Equal(t, []string{"B", "A"}, entryClasses(reg.Owner(bc).Handlers(event.KindToolbox, 5, 0)))
	assert.Equal(t, []string{"A"}, entryClasses(reg.Owner(a).Handlers(event.KindToolbox, 5, 0)))
}

func TestOwnerLayerOutranksComponent(t *testing.T) {
	rec := &recorder{}
	b := event.NewBuilder()
	a := event.NewClass("A", nil)
	bc := event.NewClass("B", a)

	require.NoError(t, b.Class(a).OnToolbox(5, rec.handler("h1", event.Handled), 2))
	require.NoError(t, b.Class(a).OnToolbox(5, rec.handler("a-any", event.Handled)))
	require.NoError(t, b.Class(bc).OnToolbox(5, rec.handler("h2", event.Handled)))
	reg := b.Freeze()

	got := reg.Owner(bc).Handlers(event.KindToolbox, 5, 2)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"B", "A", "A"}, entryClasses(got))

	// other components skip A's component-2 handler
	assert.Len(t, reg.Owner(bc).Handlers(event.KindToolbox, 5, 7), 2)
}

func TestOwnerComponentBeforeWildcardWithinLayer(t *testing.T) {
	rec := &recorder{}
	b := event.NewBuilder()
	a := event.NewClass("A", nil)

	require.NoError(t, b.Class(a).OnToolbox(5, rec.handler("any", event.Continue)))
	require.NoError(t, b.Class(a).OnToolbox(5, rec.handler("two", event.Continue), 2, 3))
	reg := b.Freeze()

	objs := event.NewObjects()
	objs.Add(1, newWidget(reg, a, "w"))
	d := event.NewDispatcher(event.DispatcherConfig{Resolver: objs})

	_, err := d.Dispatch(t.Context(), event.KindToolbox, 5, event.IDBlock{Self: 1, Component: 3}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"two", "any"}, rec.names())
}

func TestOwnerIsolatesKinds(t *testing.T) {
	rec := &recorder{}
	b := event.NewBuilder()
	a := event.NewClass("A", nil)
	require.NoError(t, b.Class(a).OnMessage(5, rec.handler("m", event.Handled)))
	reg := b.Freeze()

	o := reg.Owner(a)
	assert.True(t, o.Has(event.KindMessage, 5))
	assert.False(t, o.Has(event.KindToolbox, 5))
	assert.Empty(t, o.Handlers(event.KindRawPoll, 5, 0))
}

func TestOwnerCachedPerClass(t *testing.T) {
	b := event.NewBuilder()
	a := event.NewClass("A", nil)
	reg := b.Freeze()

	o1 := reg.Owner(a)
	o2 := reg.Owner(a)
	assert.Same(t, o1, o2)
	assert.Same(t, a, o1.Class())

	w1 := newWidget(reg, a, "one")
	w2 := newWidget(reg, a, "two")
	assert.Same(t, w1.Handlers(), w2.Handlers())
}

func TestOwnerRegistrationOrderWithinLayer(t *testing.T) {
	rec := &recorder{}
	b := event.NewBuilder()
	a := event.NewClass("A", nil)
	require.NoError(t, b.Class(a).OnToolbox(1, rec.handler("first", event.Continue)))
	require.NoError(t, b.Class(a).OnToolbox(1, rec.handler("second", event.Continue)))
	reg := b.Freeze()

	objs := event.NewObjects()
	objs.Add(1, newWidget(reg, a, "w"))
	d := event.NewDispatcher(event.DispatcherConfig{Resolver: objs})

	_, err := d.Dispatch(t.Context(), event.KindToolbox, 1, event.IDBlock{Self: 1}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, rec.names())
}

func TestNilOwner(t *testing.T) {
	var o *event.Owner
	assert.False(t, o.Has(event.KindToolbox, 1))
	assert.Nil(t, o.Handlers(event.KindToolbox, 1, 0))
}
