// Package gamemath holds small math types shared between the sync core and
// the presentation layer. It must have zero dependencies on ebiten or any
// graphics library so the protocol and prediction packages stay headless.
package gamemath

import "math"

// Vec2 is a 2D vector. The JSON field names match the wire protocol.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Scale returns v scaled by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Dist returns the euclidean distance between v and o.
func (v Vec2) Dist(o Vec2) float64 {
	dx := v.X - o.X
	dy := v.Y - o.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Lerp interpolates between from and to by t in [0, 1].
func Lerp(from, to Vec2, t float64) Vec2 {
	return Vec2{
		X: from.X + (to.X-from.X)*t,
		Y: from.Y + (to.Y-from.Y)*t,
	}
}
