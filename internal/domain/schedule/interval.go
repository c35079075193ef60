package schedule

import (
	"sort"
	"time"
)

// Interval é um intervalo meio-aberto [Start, End). Extremos que
// apenas se tocam não se sobrepõem.
type Interval struct {
	Start time.Time
	End   time.Time
}

func (iv Interval) Empty() bool {
	return !iv.Start.Before(iv.End)
}

func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && iv.End.After(other.Start)
}

func (iv Interval) Contains(t time.Time) bool {
	return !t.Before(iv.Start) && t.Before(iv.End)
}

// Intersect recorta iv para dentro de bound.
func (iv Interval) Intersect(bound Interval) Interval {
	out := iv
	if out.Start.Before(bound.Start) {
		out.Start = bound.Start
	}
	if out.End.After(bound.End) {
		out.End = bound.End
	}
	return out
}

// Subtract remove block de iv, podendo dividir em dois pedaços.
func (iv Interval) Subtract(block Interval) []Interval {
	if !iv.Overlaps(block) {
		return []Interval{iv}
	}

	var out []Interval
	if iv.Start.Before(block.Start) {
		out = append(out, Interval{Start: iv.Start, End: block.Start})
	}
	if block.End.Before(iv.End) {
		out = append(out, Interval{Start: block.End, End: iv.End})
	}
	return out
}

// SubtractAll aplica cada bloco sobre todas as janelas, descartando
// sobras vazias e devolvendo o resultado ordenado.
func SubtractAll(windows []Interval, blocks []Interval) []Interval {
	out := windows
	for _, b := range blocks {
		if b.Empty() {
			continue
		}

		var next []Interval
		for _, w := range out {
			for _, piece := range w.Subtract(b) {
				if !piece.Empty() {
					next = append(next, piece)
				}
			}
		}
		out = next
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Start.Before(out[j].Start)
	})
	return out
}
