// Package core holds shared types for screen coordinates and resolution errors.
package core

import "fmt"

// Bounds represents element position and size in device pixels.
type Bounds struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Center returns the center point of the bounds.
func (b Bounds) Center() Point {
	return Point{X: b.X + b.Width/2, Y: b.Y + b.Height/2}
}

// Contains checks if a point is within the bounds.
func (b Bounds) Contains(x, y int) bool {
	return x >= b.X && x < b.X+b.Width && y >= b.Y && y < b.Y+b.Height
}

// Area returns the pixel area of the bounds.
func (b Bounds) Area() int {
	return b.Width * b.Height
}

// IsZero reports whether the bounds are empty.
func (b Bounds) IsZero() bool {
	return b.Width == 0 && b.Height == 0
}

// Point is a tap coordinate in device pixels.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}
