package race

import (
	"gonum.org/v1/gonum/spatial/r2"

	"kartrace/internal/track"
)

// ComponentKind names a capability an entity may carry.
type ComponentKind int

const (
	KindTransform ComponentKind = iota
	KindSprite
	KindCircuit
	numComponentKinds
)

func (k ComponentKind) String() string {
	switch k {
	case KindTransform:
		return "transform"
	case KindSprite:
		return "sprite"
	case KindCircuit:
		return "circuit"
	}
	return "unknown"
}

// EntityKind tags what an entity is so hosts can dispatch on it.
type EntityKind int

const (
	EntityRacer EntityKind = iota
	EntityTrack
)

func (k EntityKind) String() string {
	switch k {
	case EntityRacer:
		return "racer"
	case EntityTrack:
		return "track"
	}
	return "unknown"
}

// Body is the position/orientation sink steering writes to.
type Body interface {
	Position() r2.Vec
	SetPosition(r2.Vec)
	// SetRotation takes degrees, atan2 convention.
	SetRotation(deg float64)
}

// Transform places an entity in the world.
type Transform struct {
	Pos      r2.Vec
	Rotation float64 // degrees
}

func (t *Transform) Position() r2.Vec        { return t.Pos }
func (t *Transform) SetPosition(p r2.Vec)    { t.Pos = p }
func (t *Transform) SetRotation(deg float64) { t.Rotation = deg }

// Sprite tells the renderer how to draw an entity. Texture is a resource id
// resolved through the host's texture cache.
type Sprite struct {
	Texture string
	Size    float64
	R, G, B uint8
}

// Circuit is the drivable shape of a track entity: the centerline and the
// lanes racers follow.
type Circuit struct {
	Center track.Path
	Lanes  []track.Path
}

// Entity is a fixed-slot component container. Lookups are by kind and
// report presence instead of failing.
type Entity struct {
	Name string
	Kind EntityKind

	has       [numComponentKinds]bool
	transform Transform
	sprite    Sprite
	circuit   Circuit
}

func NewEntity(name string, kind EntityKind) *Entity {
	return &Entity{Name: name, Kind: kind}
}

// NewTrackEntity builds the track entity for a circuit.
func NewTrackEntity(name string, center track.Path, lanes []track.Path) *Entity {
	e := NewEntity(name, EntityTrack)
	e.AddCircuit(center, lanes)
	return e
}

func (e *Entity) Has(k ComponentKind) bool {
	if e == nil || k < 0 || k >= numComponentKinds {
		return false
	}
	return e.has[k]
}

// AddTransform attaches (or replaces) the transform and returns it.
func (e *Entity) AddTransform(pos r2.Vec) *Transform {
	e.transform = Transform{Pos: pos}
	e.has[KindTransform] = true
	return &e.transform
}

// AddSprite attaches (or replaces) the sprite and returns it.
func (e *Entity) AddSprite(s Sprite) *Sprite {
	e.sprite = s
	e.has[KindSprite] = true
	return &e.sprite
}

// AddCircuit attaches (or replaces) the circuit and returns it.
func (e *Entity) AddCircuit(center track.Path, lanes []track.Path) *Circuit {
	e.circuit = Circuit{Center: center, Lanes: lanes}
	e.has[KindCircuit] = true
	return &e.circuit
}

func (e *Entity) Remove(k ComponentKind) {
	if e.Has(k) {
		e.has[k] = false
	}
}

func (e *Entity) Transform() (*Transform, bool) {
	if !e.Has(KindTransform) {
		return nil, false
	}
	return &e.transform, true
}

func (e *Entity) Sprite() (*Sprite, bool) {
	if !e.Has(KindSprite) {
		return nil, false
	}
	return &e.sprite, true
}

func (e *Entity) Circuit() (*Circuit, bool) {
	if !e.Has(KindCircuit) {
		return nil, false
	}
	return &e.circuit, true
}
