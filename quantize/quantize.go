package quantize

import (
	"errors"
	"math"
)

var ErrInvalidOffset = errors.New("negative offset")

type durationEntry struct {
	quarterLength float64
	label         string
}

// Fixed REMI duration vocabulary, whole note down to a thirty-second-note
// triplet. Declaration order doubles as the tie break: when a duration is
// exactly equidistant from two entries, the earlier one wins.
var durationTable = []durationEntry{
	{4.0, "Duration_1"},
	{3.0, "Duration_d2"},
	{2.0, "Duration_1/2"},
	{1.5, "Duration_d1/4"},
	{1.0, "Duration_1/4"},
	{2.0 / 3.0, "Duration_1/4t"},
	{0.75, "Duration_d1/8"},
	{0.5, "Duration_1/8"},
	{1.0 / 3.0, "Duration_1/8t"},
	{0.375, "Duration_d1/16"},
	{0.25, "Duration_1/16"},
	{1.0 / 6.0, "Duration_1/16t"},
	{0.125, "Duration_1/32"},
	{1.0 / 12.0, "Duration_1/32t"},
}

// PositionIndex maps an event's offset within a measure onto the discrete
// position grid. step = quarterLength / stepsPerQuarter, result is
// floor(offset / step). Offsets are quarter lengths and must be >= 0.
func PositionIndex(offset, quarterLength float64, stepsPerQuarter int) (int, error) {
	if offset < 0 {
		return 0, ErrInvalidOffset
	}
	step := quarterLength / float64(stepsPerQuarter)
	return int(offset / step), nil
}

// NearestDuration returns the duration label whose canonical quarter length
// is closest to d. Total over positive durations, never errors.
func NearestDuration(d float64) string {
	best := durationTable[0]
	bestDiff := math.Abs(best.quarterLength - d)
	for _, entry := range durationTable[1:] {
		diff := math.Abs(entry.quarterLength - d)
		if diff < bestDiff {
			best = entry
			bestDiff = diff
		}
	}
	return best.label
}

// Labels returns every duration label in table order.
func Labels() []string {
	res := make([]string, 0, len(durationTable))
	for _, entry := range durationTable {
		res = append(res, entry.label)
	}
	return res
}
