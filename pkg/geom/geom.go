package geom

import (
	"math"
	"strings"

	"github.com/google/uuid"
)

const (
	// GridUnit is the pixel quantum for all positions and sizes.
	GridUnit = 8

	// MinSize is the smallest width or height an element may have.
	MinSize = 16

	// GuideTolerance is the maximum center distance, in pixels, at which an
	// alignment guide is shown. It shares a value with GridUnit but is tuned
	// independently.
	GuideTolerance = 8

	// CanvasWidth and CanvasHeight are the fixed design canvas dimensions.
	CanvasWidth  = 1200
	CanvasHeight = 800
)

// maxSnapped is the largest grid-aligned value Snap returns.
const maxSnapped = (math.MaxInt32 / GridUnit) * GridUnit

// Point is a pointer position in canvas coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Sub returns the component-wise difference p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Size is a width/height pair, used for canvas bounds.
type Size struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// IsZero reports whether either dimension is unset.
func (s Size) IsZero() bool {
	return s.W <= 0 || s.H <= 0
}

// Center returns the center point of a box of this size anchored at the origin.
func (s Size) Center() Point {
	return Point{X: s.W / 2, Y: s.H / 2}
}

// CanvasSize is the default canvas bounds.
var CanvasSize = Size{W: CanvasWidth, H: CanvasHeight}

// Rect is an element box in grid-aligned integer pixels.
type Rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// Center returns the center point of r.
func (r Rect) Center() Point {
	return Point{
		X: float64(r.X) + float64(r.W)/2,
		Y: float64(r.Y) + float64(r.H)/2,
	}
}

// Snap rounds v to the nearest multiple of GridUnit. Ties round toward
// positive infinity. NaN snaps to 0 and infinities clamp to the largest
// representable grid value, so Snap is total over float64.
func Snap(v float64) int {
	if math.IsNaN(v) {
		return 0
	}
	s := math.Floor(v/GridUnit+0.5) * GridUnit
	switch {
	case s > maxSnapped:
		return maxSnapped
	case s < -maxSnapped:
		return -maxSnapped
	}
	return int(s)
}

// ClampSize snaps v and floors the result at MinSize.
func ClampSize(v float64) int {
	return max(MinSize, Snap(v))
}

// NewID returns a random identifier of the form "<prefix>_<32 hex chars>".
// The random part is a version 4 UUID, so collisions need not be checked.
func NewID(prefix string) string {
	if prefix == "" {
		prefix = "id"
	}
	return prefix + "_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}
