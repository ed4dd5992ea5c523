package sim

import (
	"fmt"
	"math"
)

// Vector2 is a screen-space point or displacement. Y grows downward.
type Vector2 struct {
	X, Y float64
}

// Add returns the component-wise sum.
func (v Vector2) Add(o Vector2) Vector2 {
	return Vector2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns the component-wise difference.
func (v Vector2) Sub(o Vector2) Vector2 {
	return Vector2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Finite reports whether neither component is NaN or infinite.
func (v Vector2) Finite() bool {
	return finite(v.X) && finite(v.Y)
}

func (v Vector2) String() string {
	return fmt.Sprintf("(%.2f, %.2f)", v.X, v.Y)
}

// Extent is the size of an axis-aligned bounding box.
type Extent struct {
	Width, Height float64
}

// Valid reports whether the extent is finite and non-negative.
func (e Extent) Valid() bool {
	return finite(e.Width) && finite(e.Height) && e.Width >= 0 && e.Height >= 0
}

// Box is an axis-aligned bounding box with a top-left origin.
type Box struct {
	Position Vector2
	Extent   Extent
}

// Translate returns the box moved by d.
func (b Box) Translate(d Vector2) Box {
	return Box{Position: b.Position.Add(d), Extent: b.Extent}
}

// Bounds is an inclusive rectangle of allowed positions.
type Bounds struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// Clamp returns v moved to the closest point inside the bounds.
func (b Bounds) Clamp(v Vector2) Vector2 {
	return Vector2{
		X: clamp(v.X, b.MinX, b.MaxX),
		Y: clamp(v.Y, b.MinY, b.MaxY),
	}
}

// Contains reports whether v lies inside the bounds.
func (b Bounds) Contains(v Vector2) bool {
	return v.X >= b.MinX && v.X <= b.MaxX && v.Y >= b.MinY && v.Y <= b.MaxY
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
