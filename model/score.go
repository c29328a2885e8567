package model

// Score is the read-only output of the parsing collaborator. Offsets and
// durations are in quarter lengths (1.0 == one quarter note).
type Score struct {
	Title string
	Parts []Part
}

type Part struct {
	ID       string
	Measures []Measure
}

type Measure struct {
	Number int
	Events []Event
}

// Event is anything placed in a measure. The encoder only knows Note and
// Rest; other implementations are skipped.
type Event interface {
	Offset() float64
	QuarterLength() float64
}

type Note struct {
	Start         float64
	Duration      float64
	Midi          uint8
	Articulations []string
}

func (n Note) Offset() float64        { return n.Start }
func (n Note) QuarterLength() float64 { return n.Duration }

type Rest struct {
	Start    float64
	Duration float64
}

func (r Rest) Offset() float64        { return r.Start }
func (r Rest) QuarterLength() float64 { return r.Duration }
