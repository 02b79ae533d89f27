package track

// TrailPoint is one breadcrumb on the walked path.
type TrailPoint struct {
	Lat, Lng float64
}

// Trail is a fixed-capacity ring of recent positions, oldest dropped
// first. Display only; the explored set is the durable record.
type Trail struct {
	points []TrailPoint
	start  int
	count  int
}

func NewTrail(capacity int) *Trail {
	if capacity < 1 {
		capacity = 1
	}
	return &Trail{points: make([]TrailPoint, capacity)}
}

func (t *Trail) Push(lat, lng float64) {
	idx := (t.start + t.count) % len(t.points)
	t.points[idx] = TrailPoint{Lat: lat, Lng: lng}
	if t.count < len(t.points) {
		t.count++
		return
	}
	t.start = (t.start + 1) % len(t.points)
}

func (t *Trail) Len() int { return t.count }

// Points returns the breadcrumbs oldest first.
func (t *Trail) Points() []TrailPoint {
	out := make([]TrailPoint, 0, t.count)
	for i := 0; i < t.count; i++ {
		out = append(out, t.points[(t.start+i)%len(t.points)])
	}
	return out
}
