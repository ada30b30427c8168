// Package calendar implementa aritmética de días hábiles (lunes a viernes,
// excluyendo sábado y domingo) como servicio de dominio puro.
package calendar

import "time"

// AddBusinessDays devuelve la fecha obtenida al contar n días hábiles desde t
// (n negativo cuenta hacia atrás). n = 0 devuelve t sin cambios, incluso si t
// cae en fin de semana.
//
// Si t cae en fin de semana, el primer día hábil contado es el lunes (hacia
// adelante) o el viernes (hacia atrás). Por eso la operación no es invertible
// desde un fin de semana: AddBusinessDays(AddBusinessDays(sábado, n), -n) no
// vuelve al sábado, porque el fin de semana colapsa hacia el día hábil más
// cercano. Es el comportamiento esperado, no un defecto.
func AddBusinessDays(t time.Time, n int) time.Time {
	if n == 0 {
		return t
	}
	dow := isoWeekday(t)
	if n > 0 {
		if dow >= 6 {
			// Fin de semana: el primer día hábil hacia adelante es el lunes.
			t = t.AddDate(0, 0, 8-dow)
			n--
			if n == 0 {
				return t
			}
			dow = 1
		}
		// Días calendario = n + 2 por cada fin de semana cruzado.
		total := n + ((n+dow-1)/5)*2
		return t.AddDate(0, 0, total)
	}
	m := -n
	if dow >= 6 {
		// Fin de semana: el primer día hábil hacia atrás es el viernes.
		t = t.AddDate(0, 0, 5-dow)
		m--
		if m == 0 {
			return t
		}
		dow = 5
	}
	total := m + ((m+(6-dow)-1)/5)*2
	return t.AddDate(0, 0, -total)
}

// isoWeekday devuelve el día ISO de la semana: 1=lunes .. 7=domingo.
func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}
