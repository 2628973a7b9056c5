package ui

import "kartrace/internal/geom"

// KartTurnRate is the fraction of the remaining turn a drawn kart makes per
// second.
const KartTurnRate = 14.0

// Headings eases the drawn angle of each kart toward its steering heading
// so a waypoint switch does not snap the sprite around.
type Headings struct {
	drawn map[string]float64
}

func NewHeadings() *Headings {
	return &Headings{drawn: make(map[string]float64)}
}

// Step turns the drawn angle of key toward target (degrees) for a frame of
// dt seconds and returns it. A key seen for the first time starts on target.
// The result stays within 180 degrees of target.
func (h *Headings) Step(key string, target, dt float64) float64 {
	cur, ok := h.drawn[key]
	if !ok {
		h.drawn[key] = target
		return target
	}
	left := geom.AngDiff(cur, target) * (1 - geom.Clamp01(KartTurnRate*dt))
	cur = target - left
	h.drawn[key] = cur
	return cur
}

// Forget drops every drawn angle; the next Step for each key snaps.
func (h *Headings) Forget() {
	clear(h.drawn)
}
