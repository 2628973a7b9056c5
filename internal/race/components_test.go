package race

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	"kartrace/internal/track"
)

func TestEntityComponents(t *testing.T) {
	e := NewEntity("Yoshi", EntityRacer)
	_, ok := e.Transform()
	assert.False(t, ok)
	_, ok = e.Sprite()
	assert.False(t, ok)
	assert.False(t, e.Has(ComponentKind(99)))

	tr := e.AddTransform(r2.Vec{X: 4, Y: 2})
	got, ok := e.Transform()
	require.True(t, ok)
	assert.Same(t, tr, got)

	var b Body = got
	b.SetPosition(r2.Vec{X: 1, Y: 1})
	b.SetRotation(90)
	assert.Equal(t, r2.Vec{X: 1, Y: 1}, tr.Pos)
	assert.Equal(t, 90.0, tr.Rotation)

	e.AddSprite(Sprite{Texture: "kart:Yoshi", Size: 24})
	sp, ok := e.Sprite()
	require.True(t, ok)
	assert.Equal(t, "kart:Yoshi", sp.Texture)

	e.Remove(KindSprite)
	assert.False(t, e.Has(KindSprite))
	assert.True(t, e.Has(KindTransform))

	var nilEntity *Entity
	assert.False(t, nilEntity.Has(KindTransform))
}

func TestTrackEntity(t *testing.T) {
	center := track.Path{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}}
	lanes := []track.Path{center.Clone()}
	e := NewTrackEntity("oval", center, lanes)

	assert.Equal(t, EntityTrack, e.Kind)
	assert.Equal(t, "track", e.Kind.String())
	assert.False(t, e.Has(KindTransform))
	c, ok := e.Circuit()
	require.True(t, ok)
	assert.Equal(t, center, c.Center)
	assert.Equal(t, lanes, c.Lanes)

	r := NewRacer("Toad", DefaultSteeringParams(), 1)
	_, ok = r.Circuit()
	assert.False(t, ok)
	assert.Equal(t, "racer", r.Kind.String())
	assert.Equal(t, "circuit", KindCircuit.String())
}

func TestEventBus(t *testing.T) {
	bus := NewEventBus()
	var got []string
	bus.Subscribe(EventLapCompleted, func(e Event) { got = append(got, "a:"+e.Racer) })
	bus.Subscribe(EventLapCompleted, func(e Event) { got = append(got, "b:"+e.Racer) })

	bus.Emit(Event{Type: EventLapCompleted, Racer: "Peach"})
	bus.Emit(Event{Type: EventRaceReset})
	assert.Equal(t, []string{"a:Peach", "b:Peach"}, got)

	var nilBus *EventBus
	assert.NotPanics(t, func() { nilBus.Emit(Event{}) })
	assert.Equal(t, "racer-finished", EventRacerFinished.String())
}
