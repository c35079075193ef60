package schedule

import "time"

// GenerateSlots discretiza as janelas livres em inícios de slot de
// tamanho fixo. Para o dia de hoje, slots antes de now + lead são
// descartados (antecedência mínima). O gerador não conhece duração de
// serviço nem agendamentos — isso fica com o detector de conflitos.
func GenerateSlots(
	windows []Interval,
	slotSize time.Duration,
	now time.Time,
	lead time.Duration,
) []time.Time {

	var slots []time.Time
	for _, w := range windows {
		sameDay := w.Start.Year() == now.Year() && w.Start.YearDay() == now.YearDay()
		minStart := time.Time{}
		if sameDay {
			minStart = now.Add(lead)
		}

		for cur := w.Start; !cur.Add(slotSize).After(w.End); cur = cur.Add(slotSize) {
			if sameDay && cur.Before(minStart) {
				continue
			}
			slots = append(slots, cur)
		}
	}
	return slots
}

// FilterConflicts remove slots cujo intervalo [slot, slot+serviceDur)
// colide com um agendamento vivo. Teste meio-aberto: um slot que
// termina exatamente quando outro agendamento começa não conflita.
func FilterConflicts(
	slots []time.Time,
	serviceDur time.Duration,
	busy []Interval,
) []time.Time {

	out := make([]time.Time, 0, len(slots))
	for _, s := range slots {
		candidate := Interval{Start: s, End: s.Add(serviceDur)}

		conflict := false
		for _, b := range busy {
			if candidate.Overlaps(b) {
				conflict = true
				break
			}
		}

		if !conflict {
			out = append(out, s)
		}
	}
	return out
}
