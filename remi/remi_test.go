package remi

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bareebaree/transmuseTATE/model"
)

// unknownEvent is an event kind the encoder does not recognize.
type unknownEvent struct {
	At float64
}

func (u unknownEvent) Offset() float64        { return u.At }
func (u unknownEvent) QuarterLength() float64 { return 0 }

func TestEncodeSingleNoteMeasure(t *testing.T) {
	s := model.Score{Parts: []model.Part{{
		ID: "P1",
		Measures: []model.Measure{{
			Number: 1,
			Events: []model.Event{
				model.Note{Start: 0, Duration: 1.0, Midi: 60},
			},
		}},
	}}}

	tokens, skipped, err := EncodeScore(s, 4)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(0, skipped)
	assert.Equal([]string{"Bar", "Position_0", "Pitch_60", "Duration_1/4"}, tokens)
}

func TestEncodeRestAndArticulations(t *testing.T) {
	s := model.Score{Parts: []model.Part{{
		ID: "P1",
		Measures: []model.Measure{{
			Number: 1,
			Events: []model.Event{
				model.Rest{Start: 0, Duration: 0.5},
				model.Note{Start: 0.5, Duration: 0.5, Midi: 64, Articulations: []string{"Staccato", "Accent"}},
			},
		}},
	}}}

	tokens, _, err := EncodeScore(s, 4)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal([]string{
		"Bar",
		"Position_0", "Rest", "Duration_1/8",
		"Position_2", "Pitch_64", "Duration_1/8", "Articulation_Staccato", "Articulation_Accent",
	}, tokens)
}

func TestEmptyMeasureStillEmitsBar(t *testing.T) {
	s := model.Score{Parts: []model.Part{{
		ID: "P1",
		Measures: []model.Measure{
			{Number: 1},
			{Number: 2, Events: []model.Event{model.Note{Start: 0, Duration: 2.0, Midi: 72}}},
		},
	}}}

	tokens, _, err := EncodeScore(s, 4)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal([]string{"Bar", "Bar", "Position_0", "Pitch_72", "Duration_1/2"}, tokens)
}

func TestEncodeWalksPartsInOrder(t *testing.T) {
	s := model.Score{Parts: []model.Part{
		{ID: "P1", Measures: []model.Measure{{Number: 1, Events: []model.Event{
			model.Note{Start: 0, Duration: 1.0, Midi: 60},
		}}}},
		{ID: "P2", Measures: []model.Measure{{Number: 1, Events: []model.Event{
			model.Note{Start: 1.0, Duration: 1.0, Midi: 48},
		}}}},
	}}

	tokens, _, err := EncodeScore(s, 4)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal([]string{
		"Bar", "Position_0", "Pitch_60", "Duration_1/4",
		"Bar", "Position_4", "Pitch_48", "Duration_1/4",
	}, tokens)
}

func TestTokenCountArithmetic(t *testing.T) {
	// 2 measures, 2 notes (one with 2 articulations), 1 rest:
	// 2 Bar + 3 Position + 2 Pitch + 2 note durations + 2 articulations
	// + 1 Rest + 1 rest duration = 13
	s := model.Score{Parts: []model.Part{{
		ID: "P1",
		Measures: []model.Measure{
			{Number: 1, Events: []model.Event{
				model.Note{Start: 0, Duration: 1.0, Midi: 60, Articulations: []string{"Tenuto", "Accent"}},
				model.Rest{Start: 1.0, Duration: 1.0},
			}},
			{Number: 2, Events: []model.Event{
				model.Note{Start: 0, Duration: 4.0, Midi: 67},
			}},
		},
	}}}

	tokens, _, err := EncodeScore(s, 4)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Len(tokens, 13)
}

func TestUnknownEventKindIsSkippedButCounted(t *testing.T) {
	s := model.Score{Parts: []model.Part{{
		ID: "P1",
		Measures: []model.Measure{{
			Number: 1,
			Events: []model.Event{
				unknownEvent{At: 0},
				model.Note{Start: 0.5, Duration: 0.5, Midi: 62},
			},
		}},
	}}}

	tokens, skipped, err := EncodeScore(s, 4)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(1, skipped)
	assert.Equal([]string{"Bar", "Position_0", "Position_2", "Pitch_62", "Duration_1/8"}, tokens)
}

func TestNegativeOffsetFailsTheScore(t *testing.T) {
	s := model.Score{Parts: []model.Part{{
		ID: "P1",
		Measures: []model.Measure{{
			Number: 3,
			Events: []model.Event{model.Note{Start: -0.25, Duration: 1.0, Midi: 60}},
		}},
	}}}

	_, _, err := EncodeScore(s, 4)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "measure 3")
}

func TestTokensContainNoWhitespace(t *testing.T) {
	s := model.Score{Parts: []model.Part{{
		ID: "P1",
		Measures: []model.Measure{{Number: 1, Events: []model.Event{
			model.Rest{Start: 0, Duration: 0.25},
			model.Note{Start: 0.25, Duration: 1.0 / 3.0, Midi: 127, Articulations: []string{"StrongAccent"}},
		}}},
	}}}

	tokens, _, err := EncodeScore(s, 4)
	assert.NoError(t, err)
	for _, tok := range tokens {
		assert.False(t, strings.ContainsAny(tok, " \t\n"), "token %q contains whitespace", tok)
	}
}
