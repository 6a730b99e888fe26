// Package clock изолирует зависимость от текущего времени,
// чтобы секционирование напоминаний проверялось детерминированно.
package clock

import "time"

// Clock возвращает текущее время
type Clock interface {
	Now() time.Time
}

// Real - системные часы в локальной зоне процесса
type Real struct{}

// Now возвращает time.Now()
func (Real) Now() time.Time { return time.Now() }

// Fixed - часы с заданным временем, для тестов
type Fixed struct {
	T time.Time
}

// Now возвращает зафиксированное время
func (f *Fixed) Now() time.Time { return f.T }

// Advance сдвигает часы вперед
func (f *Fixed) Advance(d time.Duration) { f.T = f.T.Add(d) }

// StartOfDay возвращает полночь календарного дня t в зоне t
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay сравнивает календарные дни, d приводится к зоне ref
func SameDay(d, ref time.Time) bool {
	d = d.In(ref.Location())
	dy, dm, dd := d.Date()
	ry, rm, rd := ref.Date()
	return dy == ry && dm == rm && dd == rd
}

// IsTomorrow сообщает, приходится ли d на следующий календарный день после ref
func IsTomorrow(d, ref time.Time) bool {
	return SameDay(d, StartOfDay(ref).AddDate(0, 0, 1))
}
