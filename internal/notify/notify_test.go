package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestFunc_Notify(t *testing.T) {
	var got []Event
	hook := Func(func(e Event) { got = append(got, e) })

	hook.Notify(Event{Kind: KindTournamentCreated, TournamentID: "t1"})

	assert.Len(t, got, 1)
	assert.Equal(t, KindTournamentCreated, got[0].Kind)
}

func TestSafe(t *testing.T) {
	t.Run("returns true for a healthy hook", func(t *testing.T) {
		called := false
		ok := Safe(zap.NewNop().Sugar(), Func(func(Event) { called = true }), Event{})
		assert.True(t, ok)
		assert.True(t, called)
	})

	t.Run("recovers and logs a panicking hook", func(t *testing.T) {
		core, logs := observer.New(zap.ErrorLevel)
		logger := zap.New(core).Sugar()

		var ok bool
		assert.NotPanics(t, func() {
			ok = Safe(logger, Func(func(Event) { panic("boom") }), Event{Kind: KindMatchCompleted, TournamentID: "t1"})
		})
		assert.False(t, ok)
		assert.Equal(t, 1, logs.FilterMessage("notification hook panicked").Len())
	})

	t.Run("nil hook and nil logger", func(t *testing.T) {
		assert.True(t, Safe(nil, nil, Event{}))
		assert.False(t, Safe(nil, Func(func(Event) { panic("boom") }), Event{}))
	})
}

func TestMulti_Notify(t *testing.T) {
	var order []string
	first := Func(func(Event) { order = append(order, "first") })
	broken := Func(func(Event) { panic("broken hook") })
	last := Func(func(Event) { order = append(order, "last") })

	m := NewMulti(zap.NewNop().Sugar(), first, nil, broken, last)
	assert.NotPanics(t, func() {
		m.Notify(Event{Kind: KindUserJoined})
	})

	assert.Equal(t, []string{"first", "last"}, order)
}

func TestLogger_Notify(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	hook := NewLogger(zap.New(core).Sugar())

	hook.Notify(Event{Kind: KindMatchCreated, TournamentID: "t9", Timestamp: time.Now()})

	entries := logs.FilterMessage("registry event").All()
	assert.Len(t, entries, 1)
	assert.Equal(t, "t9", entries[0].ContextMap()["tournament_id"])
	assert.Equal(t, "match_created", entries[0].ContextMap()["kind"])
}

func TestNop_Notify(t *testing.T) {
	assert.NotPanics(t, func() { Nop{}.Notify(Event{}) })
}
