package render

// Kind identifies a draw command.
type Kind int

const (
	KindBackground Kind = iota
	KindRect
	KindCircle
	KindGlow
	KindPolyline
)

func (k Kind) String() string {
	switch k {
	case KindBackground:
		return "background"
	case KindRect:
		return "rect"
	case KindCircle:
		return "circle"
	case KindGlow:
		return "glow"
	case KindPolyline:
		return "polyline"
	default:
		return "unknown"
	}
}

// Layer tags what a command belongs to. Commands are emitted in layer
// order, back to front.
type Layer int

const (
	LayerBackground Layer = iota
	LayerStars
	LayerGhostOrbits
	LayerOrbits
	LayerCentralBody
	LayerPlanets
)

// Point is a position in surface pixels.
type Point struct {
	X, Y float64
}

// Command is one draw instruction in surface pixel coordinates. Which
// fields are meaningful depends on Kind.
type Command struct {
	Kind  Kind
	Layer Layer

	Center Point   // background, circle, glow
	Radius float64 // background, circle, glow
	Stops  []Stop  // background, glow

	Min, Max Point // rect

	Paint  Paint     // rect, circle, polyline
	Points []Point   // polyline
	Width  float64   // polyline
	Dash   []float64 // polyline; nil for solid
}

// Surface receives draw commands. Implementations rasterize in call order.
type Surface interface {
	// Size returns the drawable area in pixels.
	Size() (width, height int)
	FillBackground(center Point, radius float64, stops []Stop)
	FillRect(min, max Point, p Paint)
	FillCircle(center Point, radius float64, p Paint)
	FillGlow(center Point, radius float64, stops []Stop)
	StrokePolyline(points []Point, width float64, p Paint, dash []float64)
}

// Stats summarizes what a frame culled and drew.
type Stats struct {
	StarsDrawn    int
	StarsCulled   int
	OrbitSamples  int
	SamplesCulled int
	PlanetsDrawn  int
	PlanetsCulled int
	BodyVisible   bool
	GhostDrawn    bool
	Polylines     int
}

// Frame is the ordered output of one render.
type Frame struct {
	Width, Height int
	Commands      []Command
	Stats         Stats
}

// Replay sends every command to s in order.
func (f Frame) Replay(s Surface) {
	for _, c := range f.Commands {
		switch c.Kind {
		case KindBackground:
			s.FillBackground(c.Center, c.Radius, c.Stops)
		case KindRect:
			s.FillRect(c.Min, c.Max, c.Paint)
		case KindCircle:
			s.FillCircle(c.Center, c.Radius, c.Paint)
		case KindGlow:
			s.FillGlow(c.Center, c.Radius, c.Stops)
		case KindPolyline:
			s.StrokePolyline(c.Points, c.Width, c.Paint, c.Dash)
		}
	}
}

// Count returns how many commands of kind k in layer l the frame holds.
func (f Frame) Count(l Layer, k Kind) int {
	n := 0
	for _, c := range f.Commands {
		if c.Layer == l && c.Kind == k {
			n++
		}
	}
	return n
}
