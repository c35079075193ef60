package schedule

import (
	"sort"
	"time"

	"github.com/navalha-app/navalha-api/internal/models"
)

// ResolveWorkWindows devolve as janelas em que o barbeiro atende na
// data, já recortadas pela janela da barbearia. Sem linha de
// expediente para o dia da semana o barbeiro não atende — expediente
// precisa ser explícito para o barbeiro ser reservável.
func ResolveWorkWindows(
	entries []models.WorkSchedule,
	date time.Time,
	shopWindow Interval,
) []Interval {

	if shopWindow.Empty() {
		return nil
	}

	weekday := int(date.Weekday())

	var windows []Interval
	for _, e := range entries {
		if e.Weekday != weekday || !e.Active {
			continue
		}

		start, ok1 := parseHM(date, e.StartTime)
		end, ok2 := parseHM(date, e.EndTime)
		if !ok1 || !ok2 {
			continue
		}

		w := Interval{Start: start, End: end}.Intersect(shopWindow)
		if !w.Empty() {
			windows = append(windows, w)
		}
	}

	sort.Slice(windows, func(i, j int) bool {
		return windows[i].Start.Before(windows[j].Start)
	})

	return mergeWindows(windows)
}

// mergeWindows funde janelas ordenadas que se tocam ou se sobrepõem
// (turnos cadastrados com folga zero entre eles).
func mergeWindows(windows []Interval) []Interval {
	if len(windows) <= 1 {
		return windows
	}

	out := []Interval{windows[0]}
	for _, w := range windows[1:] {
		last := &out[len(out)-1]
		if !w.Start.After(last.End) {
			if w.End.After(last.End) {
				last.End = w.End
			}
			continue
		}
		out = append(out, w)
	}
	return out
}
