package event_test

import (
	"errors"
	"testing"

	"github.com/randalmurphal/toolbox/pkg/toolbox/codec"
	"github.com/randalmurphal/toolbox/pkg/toolbox/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKeys(t *testing.T) {
	shown := event.Type{Name: "AboutToBeShown", ID: 0x82ac0, Decoder: codec.AboutToBeShownDecoder}

	tests := []struct {
		name string
		key  any
		want []event.ID
	}{
		{"int", 5, []event.ID{5}},
		{"int8", int8(3), []event.ID{3}},
		{"int16", int16(300), []event.ID{300}},
		{"uint8", uint8(17), []event.ID{17}},
		{"uint16", uint16(0x400), []event.ID{0x400}},
		{"int32", int32(6), []event.ID{6}},
		{"int64", int64(7), []event.ID{7}},
		{"uint", uint(8), []event.ID{8}},
		{"uint32", uint32(0x82ac1), []event.ID{0x82ac1}},
		{"uint64", uint64(9), []event.ID{9}},
		{"ID", event.ID(10), []event.ID{10}},
		{"Type", shown, []event.ID{0x82ac0}},
		{"*Type", &shown, []event.ID{0x82ac0}},
		{"int slice", []int{1, 2, 3}, []event.ID{1, 2, 3}},
		{"uint32 slice", []uint32{4, 5}, []event.ID{4, 5}},
		{"ID slice", []event.ID{6}, []event.ID{6}},
		{"Type slice", []event.Type{shown}, []event.ID{0x82ac0}},
		{"*Type slice", []*event.Type{&shown}, []event.ID{0x82ac0}},
		{"mixed slice", []any{1, shown}, []event.ID{1, 0x82ac0}},
		{"uint16 slice", []uint16{18, 19}, []event.ID{18, 19}},
		{"int64 slice", []int64{7, 8}, []event.ID{7, 8}},
		{"array", [2]int{1, 2}, []event.ID{1, 2}},
		{"named int", event.ComponentID(4), []event.ID{4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bindings, err := event.ParseKeys(tt.key)
			require.NoError(t, err)

			ids := make([]event.ID, len(bindings))
			for i, b := range bindings {
				ids[i] = b.ID
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestParseKeysDecoder(t *testing.T) {
	shown := event.Type{Name: "AboutToBeShown", ID: 0x82ac0, Decoder: codec.AboutToBeShownDecoder}

	bindings, err := event.ParseKeys([]any{shown, 3})
	require.NoError(t, err)
	require.Len(t, bindings, 2)

	assert.NotNil(t, bindings[0].Decoder)
	assert.Nil(t, bindings[1].Decoder)
}

func TestParseKeysInvalid(t *testing.T) {
	var nilType *event.Type

	tests := []struct {
		name string
		key  any
	}{
		{"string", "Quit"},
		{"float", 1.5},
		{"nil", nil},
		{"negative", -1},
		{"negative int8", int8(-1)},
		{"bool", true},
		{"nil in slice", []any{1, nil}},
		{"too large", uint64(1) << 40},
		{"nil *Type", nilType},
		{"empty slice", []int{}},
		{"string slice", []string{"a"}},
		{"bad element", []any{1, "two"}},
		{"struct", struct{ ID int }{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := event.ParseKeys(tt.key)
			require.Error(t, err)
			assert.ErrorIs(t, err, event.ErrInvalidHandlerKey)

			var kErr *event.KeyError
			assert.True(t, errors.As(err, &kErr))
		})
	}
}
