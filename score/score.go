package score

import (
	"fmt"

	"github.com/bareebaree/transmuseTATE/model"
	"github.com/bareebaree/transmuseTATE/mxl"
)

// Parse reads a MusicXML file into the pipeline's score model. Offsets and
// durations come out in quarter lengths, converted from the document's
// divisions. Decoder panics are turned into errors at this boundary.
func Parse(path string) (s model.Score, e error) {
	defer func() {
		if r := recover(); r != nil {
			e = fmt.Errorf("panic parsing score: %v", r)
		}
	}()

	doc, err := mxl.Open(path)
	if err != nil {
		return model.Score{}, fmt.Errorf("error parsing score file... %w", err)
	}
	return fromDocument(doc), nil
}

func fromDocument(doc *mxl.Document) model.Score {
	res := model.Score{Title: doc.Work.Title}
	for _, part := range doc.Parts {
		p := model.Part{ID: part.ID}
		divisions := 1
		for _, measure := range part.Measures {
			if measure.Attrs.Divisions > 0 {
				divisions = measure.Attrs.Divisions
			}
			p.Measures = append(p.Measures, convertMeasure(measure, divisions))
		}
		res.Parts = append(res.Parts, p)
	}
	return res
}

// convertMeasure walks the measure's children with a divisions cursor. A
// non-chord note advances the cursor; a chord note sounds at the previous
// note's offset. Backup and forward move the cursor for multi-voice music.
func convertMeasure(m mxl.Measure, divisions int) model.Measure {
	res := model.Measure{Number: m.Number}
	cursor := 0
	prevOffset := 0
	for _, ev := range m.Events {
		switch e := ev.(type) {
		case mxl.Backup:
			cursor -= e.Duration
		case mxl.Forward:
			cursor += e.Duration
		case mxl.Note:
			offset := cursor
			if e.Chord != nil {
				offset = prevOffset
			} else {
				prevOffset = offset
				cursor += e.Duration
			}
			start := float64(offset) / float64(divisions)
			length := float64(e.Duration) / float64(divisions)
			switch {
			case e.Rest != nil:
				res.Events = append(res.Events, model.Rest{Start: start, Duration: length})
			case e.Pitch != nil:
				res.Events = append(res.Events, model.Note{
					Start:         start,
					Duration:      length,
					Midi:          clampMidi(e.Pitch.Midi()),
					Articulations: e.Notations.Articulations.Classes,
				})
			}
		}
	}
	return res
}

func clampMidi(n int) uint8 {
	if n < 0 {
		return 0
	}
	if n > 127 {
		return 127
	}
	return uint8(n)
}

// FromHeldNotes builds a single preview measure from currently sounding MIDI
// keys, each a quarter note at the start of the bar.
func FromHeldNotes(keys []uint8) model.Measure {
	m := model.Measure{Number: 1}
	for _, k := range keys {
		m.Events = append(m.Events, model.Note{Start: 0, Duration: 1, Midi: k})
	}
	return m
}
