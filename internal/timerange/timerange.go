package timerange

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MinutesPerDay количество минут в сутках
const MinutesPerDay = 24 * 60

var (
	ErrParse      = errors.New("invalid time of day")
	ErrEmptyRange = errors.New("range end must be after start")
)

// ParseError описывает строку, которую не удалось разобрать как HH:MM
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse time %q: %s", e.Input, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return ErrParse
}

// TimeOfDay время суток в минутах от полуночи (0..1439)
type TimeOfDay int

// Parse разбирает строку вида "HH:MM"
func Parse(s string) (TimeOfDay, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, &ParseError{Input: s, Reason: "expected HH:MM"}
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || parts[0] == "" || strings.HasPrefix(parts[0], "+") || strings.HasPrefix(parts[0], "-") {
		return 0, &ParseError{Input: s, Reason: "hour is not a number"}
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || parts[1] == "" || strings.HasPrefix(parts[1], "+") || strings.HasPrefix(parts[1], "-") {
		return 0, &ParseError{Input: s, Reason: "minute is not a number"}
	}

	if hour < 0 || hour > 23 {
		return 0, &ParseError{Input: s, Reason: "hour out of range"}
	}
	if minute < 0 || minute > 59 {
		return 0, &ParseError{Input: s, Reason: "minute out of range"}
	}

	return TimeOfDay(hour*60 + minute), nil
}

// MustParse как Parse, но паникует на неверном вводе. Только для констант и тестов.
func MustParse(s string) TimeOfDay {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

// FromTime берёт время суток из time.Time (секунды отбрасываются)
func FromTime(t time.Time) TimeOfDay {
	return TimeOfDay(t.Hour()*60 + t.Minute())
}

// Valid проверяет инвариант 0 <= m < 1440
func (t TimeOfDay) Valid() bool {
	return t >= 0 && t < MinutesPerDay
}

func (t TimeOfDay) Hour() int   { return int(t) / 60 }
func (t TimeOfDay) Minute() int { return int(t) % 60 }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// At ставит время суток на календарную дату в её часовом поясе
func At(date time.Time, t TimeOfDay) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location())
}

// Range полуоткрытый интервал [Start, End) внутри одних суток
type Range struct {
	Start TimeOfDay `json:"start"`
	End   TimeOfDay `json:"end"`
}

// New собирает Range из двух строк HH:MM
func New(start, end string) (Range, error) {
	s, err := Parse(start)
	if err != nil {
		return Range{}, err
	}
	e, err := Parse(end)
	if err != nil {
		return Range{}, err
	}
	return Range{Start: s, End: e}, nil
}

// MustNew как New, но паникует. Для тестов.
func MustNew(start, end string) Range {
	r, err := New(start, end)
	if err != nil {
		panic(err)
	}
	return r
}

// ParseRange разбирает "HH:MM-HH:MM"
func ParseRange(s string) (Range, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 2 {
		return Range{}, &ParseError{Input: s, Reason: "expected HH:MM-HH:MM"}
	}
	return New(parts[0], parts[1])
}

func (r Range) String() string {
	return r.Start.String() + "-" + r.End.String()
}

// Overlaps true, если интервалы пересекаются. Касание концами пересечением не считается.
func Overlaps(a, b Range) bool {
	return a.Start < b.End && b.Start < a.End
}

// Contains true, если inner целиком лежит внутри outer
func Contains(outer, inner Range) bool {
	return outer.Start <= inner.Start && inner.End <= outer.End
}

// Duration длительность в минутах; пустой или перевёрнутый интервал даёт ErrEmptyRange
func Duration(r Range) (int, error) {
	d := int(r.End - r.Start)
	if d <= 0 {
		return 0, fmt.Errorf("duration of %s: %w", r, ErrEmptyRange)
	}
	return d, nil
}
