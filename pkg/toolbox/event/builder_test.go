package event_test

import (
	"testing"

	"github.com/randalmurphal/toolbox/pkg/toolbox/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterValidation(t *testing.T) {
	rec := &recorder{}
	b := event.NewBuilder()
	a := event.NewClass("A", nil)

	err := b.Class(a).OnToolbox("Quit", rec.handler("h", event.Handled))
	assert.ErrorIs(t, err, event.ErrInvalidHandlerKey)

	err = b.Class(a).OnToolbox(1, nil)
	assert.ErrorIs(t, err, event.ErrNilHandler)

	err = b.Class(nil).OnMessage(1, rec.handler("h", event.Handled))
	assert.ErrorIs(t, err, event.ErrNilClass)

	reg := b.Freeze()
	assert.Empty(t, reg.IDs(event.KindToolbox))
	assert.Empty(t, reg.IDs(event.KindMessage))
}

func TestRegisterAfterFreeze(t *testing.T) {
	rec := &recorder{}
	b := event.NewBuilder()
	a := event.NewClass("A", nil)

	require.NoError(t, b.Class(a).OnToolbox(1, rec.handler("before", event.Handled)))
	reg := b.Freeze()

	err := b.Class(a).OnToolbox(2, rec.handler("after", event.Handled))
	assert.ErrorIs(t, err, event.ErrRegistryFrozen)
	assert.ErrorIs(t, b.TrackReplies(9), event.ErrRegistryFrozen)

	assert.Equal(t, []event.ID{1}, reg.IDs(event.KindToolbox))
}

func TestFreezeSnapshotsBuilder(t *testing.T) {
	rec := &recorder{}
	b := event.NewBuilder()
	a := event.NewClass("A", nil)
	require.NoError(t, b.Class(a).OnToolbox(1, rec.handler("h", event.Handled)))

	first := b.Freeze()
	second := b.Freeze()

	assert.NotSame(t, first, second)
	assert.Len(t, first.Owner(a).Handlers(event.KindToolbox, 1, 0), 1)
	assert.Len(t, second.Owner(a).Handlers(event.KindToolbox, 1, 0), 1)
}

func TestRegistryIDsByKind(t *testing.T) {
	rec := &recorder{}
	b := event.NewBuilder()
	app := event.NewClass("Application", nil)
	h := rec.handler("h", event.Handled)

	require.NoError(t, b.Class(app).OnRawPoll([]int{17, 2, 6}, h))
	require.NoError(t, b.Class(app).OnMessage(0, h))
	require.NoError(t, b.Class(app).OnToolbox(0x82ac1, h, 4))

	reg := b.Freeze()

	assert.Equal(t, []event.ID{2, 6, 17}, reg.RawPollIDs())
	assert.Equal(t, []event.ID{0}, reg.IDs(event.KindMessage))
	assert.Equal(t, []event.ID{0x82ac1}, reg.IDs(event.KindToolbox))
}

func TestReplyTrackable(t *testing.T) {
	b := event.NewBuilder()
	require.NoError(t, b.TrackReplies(0x4af80, 5))
	reg := b.Freeze()

	assert.True(t, reg.ReplyTrackable(5))
	assert.True(t, reg.ReplyTrackable(0x4af80))
	assert.False(t, reg.ReplyTrackable(6))
	assert.Equal(t, []event.ID{5, 0x4af80}, reg.ReplyCodes())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "toolbox", event.KindToolbox.String())
	assert.Equal(t, "raw_poll", event.KindRawPoll.String())
	assert.Equal(t, "message", event.KindMessage.String())
	assert.Equal(t, "kind(9)", event.Kind(9).String())
	assert.Equal(t, "handled", event.Handled.String())
	assert.Equal(t, "continue", event.Continue.String())
}

func TestClassChain(t *testing.T) {
	a := event.NewClass("A", nil)
	b := event.NewClass("B", a)
	c := event.NewClass("C", b)

	assert.Equal(t, []*event.Class{c, b, a}, c.Chain())
	assert.True(t, c.DerivesFrom(a))
	assert.False(t, a.DerivesFrom(c))
	assert.Same(t, b, c.Parent())
	assert.Equal(t, "C", c.Name())
}
