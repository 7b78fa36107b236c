package geom

// Rect is an axis-aligned rectangle with origin at (X, Y).
type Rect struct {
	X, Y, W, H float32
}

// NewRect creates a rectangle from origin and size.
func NewRect(x, y, w, h float32) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Min returns the top-left corner.
func (r Rect) Min() Vec2 {
	return Vec2{r.X, r.Y}
}

// Max returns the bottom-right corner.
func (r Rect) Max() Vec2 {
	return Vec2{r.X + r.W, r.Y + r.H}
}

// Intersects reports whether r and other overlap.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.W && other.X < r.X+r.W &&
		r.Y < other.Y+other.H && other.Y < r.Y+r.H
}

// Union returns the smallest rectangle containing both r and other.
func (r Rect) Union(other Rect) Rect {
	mn := r.Min().Min(other.Min())
	mx := r.Max().Max(other.Max())
	return Rect{mn.X, mn.Y, mx.X - mn.X, mx.Y - mn.Y}
}
