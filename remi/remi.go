// Package remi flattens a score into REMI tokens: one Bar per measure, then
// Position/Pitch/Duration/Rest/Articulation tokens per event in the order the
// parser yielded them.
package remi

import (
	"fmt"

	"github.com/bareebaree/transmuseTATE/model"
	"github.com/bareebaree/transmuseTATE/quantize"
)

// EncodeScore emits the token sequence for a whole score. Events that are
// neither Note nor Rest get a Position token but nothing else; their count is
// returned so the driver can report them. A negative offset fails the score.
func EncodeScore(s model.Score, stepsPerQuarter int) ([]string, int, error) {
	var tokens []string
	var skipped int
	for _, part := range s.Parts {
		for _, measure := range part.Measures {
			ts, sk, err := EncodeMeasure(measure, stepsPerQuarter)
			if err != nil {
				return nil, 0, fmt.Errorf("part %v measure %v: %w", part.ID, measure.Number, err)
			}
			tokens = append(tokens, ts...)
			skipped += sk
		}
	}
	return tokens, skipped, nil
}

// EncodeMeasure emits Bar unconditionally, even for an empty measure.
func EncodeMeasure(m model.Measure, stepsPerQuarter int) ([]string, int, error) {
	tokens := []string{"Bar"}
	var skipped int
	for _, ev := range m.Events {
		pos, err := quantize.PositionIndex(ev.Offset(), 1.0, stepsPerQuarter)
		if err != nil {
			return nil, 0, fmt.Errorf("event at offset %v: %w", ev.Offset(), err)
		}
		tokens = append(tokens, fmt.Sprintf("Position_%d", pos))
		switch e := ev.(type) {
		case model.Note:
			tokens = append(tokens, fmt.Sprintf("Pitch_%d", e.Midi))
			tokens = append(tokens, quantize.NearestDuration(e.Duration))
			for _, art := range e.Articulations {
				tokens = append(tokens, "Articulation_"+art)
			}
		case model.Rest:
			tokens = append(tokens, "Rest", quantize.NearestDuration(e.Duration))
		default:
			skipped++
		}
	}
	return tokens, skipped, nil
}
