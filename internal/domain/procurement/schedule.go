package procurement

import "time"

// DateOnly trunca t a medianoche en su propia zona horaria.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay indica si a y b caen en la misma fecha calendario (zona de a).
func SameDay(a, b time.Time) bool {
	return DateOnly(a).Equal(DateOnly(b.In(a.Location())))
}

// DaysUntilNextDelivery devuelve cuántos días faltan desde today hasta el próximo día de entrega.
// 0 si today es día de entrega; -1 si el acuerdo no tiene días de entrega.
func DaysUntilNextDelivery(today time.Time, deliveryDays []time.Weekday) int {
	if len(deliveryDays) == 0 {
		return -1
	}
	best := -1
	for _, d := range deliveryDays {
		offset := (int(d) - int(today.Weekday()) + 7) % 7
		if best == -1 || offset < best {
			best = offset
		}
	}
	return best
}

// NextOccurrence devuelve la próxima fecha, estrictamente posterior a after, cuyo día de la semana
// está en days. ok=false si days está vacío.
func NextOccurrence(after time.Time, days []time.Weekday) (next time.Time, ok bool) {
	if len(days) == 0 {
		return time.Time{}, false
	}
	base := DateOnly(after)
	for i := 1; i <= 7; i++ {
		candidate := base.AddDate(0, 0, i)
		for _, d := range days {
			if candidate.Weekday() == d {
				return candidate, true
			}
		}
	}
	return time.Time{}, false
}
