package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmitterOrder(t *testing.T) {
	var e Emitter
	var calls []string

	e.On(EventMatrixUpdated, func(Event) { calls = append(calls, "a") })
	e.On(EventMatrixUpdated, func(Event) { calls = append(calls, "b") })
	e.On(EventQueueUpdated, func(Event) { calls = append(calls, "queue") })
	e.On(EventMatrixUpdated, nil)

	e.Emit(MatrixUpdated{})
	assert.Equal(t, []string{"a", "b"}, calls)

	e.Off(EventMatrixUpdated)
	e.Emit(MatrixUpdated{})
	assert.Equal(t, []string{"a", "b"}, calls)
}

func TestEmitWithoutListeners(t *testing.T) {
	var e Emitter
	assert.NotPanics(t, func() { e.Emit(ToppedOut{}) })
}

func TestPlayfieldEventSequenceOnLock(t *testing.T) {
	p := newTestPlayfield(t, Config{Cols: 4, Rows: 6, FirstVisibleRow: 2}, ShapeI)

	var kinds []EventKind
	for _, k := range []EventKind{
		EventLinesClearing, EventLinesCleared, EventMatrixUpdated,
		EventQueueUpdated, EventHardDrop, EventLevelUpdated,
	} {
		p.On(k, func(ev Event) { kinds = append(kinds, ev.Kind()) })
	}

	p.HardDrop()

	assert.Equal(t, EventHardDrop, kinds[0])
	assert.Contains(t, kinds, EventLinesClearing)
	idx := func(k EventKind) int {
		for i, v := range kinds {
			if v == k {
				return i
			}
		}
		return -1
	}
	assert.Less(t, idx(EventLinesClearing), idx(EventLinesCleared))
	assert.Less(t, idx(EventLinesCleared), idx(EventMatrixUpdated))
	assert.Less(t, idx(EventMatrixUpdated), idx(EventQueueUpdated))
}

func TestEventKindString(t *testing.T) {
	assert.Equal(t, "LinesCleared", EventLinesCleared.String())
	assert.Equal(t, "Unknown", EventKind(99).String())
}
