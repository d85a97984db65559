package formatting

import (
	"strings"
	"testing"
	"time"

	"github.com/Freeeeeet/tutor_desk/internal/model"
	"github.com/Freeeeeet/tutor_desk/internal/timerange"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)

func TestFormatTimeRange(t *testing.T) {
	assert.Equal(t, "10.03.2025 18:00-19:30", FormatTimeRange(base, base.Add(90*time.Minute)))
	assert.Equal(t, "10.03.2025 18:00", FormatTimeRange(base, time.Time{}))
	assert.Equal(t, "10.03.2025 18:00 - 11.03.2025 01:00", FormatTimeRange(base, base.Add(7*time.Hour)))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "45 мин", FormatDuration(45))
	assert.Equal(t, "2 ч", FormatDuration(120))
	assert.Equal(t, "1 ч 30 мин", FormatDuration(90))
}

func TestParseWeekday(t *testing.T) {
	cases := map[string]time.Weekday{
		"Mon":         time.Monday,
		"monday":      time.Monday,
		"Пн":          time.Monday,
		"воскресенье": time.Sunday,
		"SAT":         time.Saturday,
		"0":           time.Sunday,
		"3":           time.Wednesday,
	}
	for in, want := range cases {
		got, err := ParseWeekday(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "Mo", "7", "someday"} {
		_, err := ParseWeekday(in)
		assert.Error(t, err, in)
	}
}

func TestPluralize(t *testing.T) {
	assert.Equal(t, "запрос", PluralizeRequests(1))
	assert.Equal(t, "запроса", PluralizeRequests(3))
	assert.Equal(t, "запросов", PluralizeRequests(11))
	assert.Equal(t, "запрос", PluralizeRequests(21))
	assert.Equal(t, "занятий", PluralizeSessions(0))
	assert.Equal(t, "класса", PluralizeClasses(22))
}

func TestFormatRequestView(t *testing.T) {
	preferred := base.Add(48 * time.Hour)
	v := &model.RequestView{
		Request: model.SessionRequest{
			ID: "r1", Type: model.RequestTypeReschedule, Status: model.RequestStatusPending,
			Reason: "<doctor>", PreferredStartTime: &preferred, CreatedAt: base.Add(-2 * time.Hour),
		},
		StudentName:   "Ada",
		Subject:       "Math",
		OriginalStart: base,
		OriginalEnd:   base.Add(time.Hour),
		Urgency:       model.UrgencyHigh,
	}

	text := FormatRequestView(v, time.UTC)
	assert.Contains(t, text, "Перенос")
	assert.Contains(t, text, "Ada")
	assert.Contains(t, text, "10.03.2025 18:00-19:00")
	assert.Contains(t, text, "12.03.2025 18:00")
	assert.Contains(t, text, "&lt;doctor&gt;")
	assert.Contains(t, text, "🔴")
	assert.NotContains(t, text, "⚠️")
}

func TestFormatRequestViewAlternativeLoading(t *testing.T) {
	v := &model.RequestView{
		Request: model.SessionRequest{
			Type: model.RequestTypeReschedule, ClassID: "c1", AlternativeSessionID: "alt",
			Status: model.RequestStatusPending,
		},
		StudentName: model.UnknownStudent,
		Subject:     model.UnknownSubject,
		Anomalies:   []string{"alternative_unresolved"},
	}
	text := FormatRequestView(v, nil)
	assert.Contains(t, text, "загружается")
	assert.Contains(t, text, "⚠️")
}

func TestFormatUrgentDigest(t *testing.T) {
	views := []model.RequestView{
		{Request: model.SessionRequest{ID: "a", Type: model.RequestTypeCancel, Status: model.RequestStatusPending},
			Subject: "Math", StudentName: "Ada", Urgency: model.UrgencyHigh, OriginalStart: base},
		{Request: model.SessionRequest{ID: "b", Type: model.RequestTypeReschedule, Status: model.RequestStatusPending},
			Subject: "Art", StudentName: "Bo", Urgency: model.UrgencyHigh, OriginalStart: base},
	}
	text := FormatUrgentDigest(views, time.UTC)
	assert.Contains(t, text, "2 запроса")
	assert.Contains(t, text, "1. 🔴 🛑 Отмена · Math · Ada")
	assert.Contains(t, text, "/requests")
}

func TestFormatAvailabilityOrdersFromMonday(t *testing.T) {
	av := &model.Availability{Slots: []model.AvailabilitySlot{
		{Day: time.Sunday, Range: timerange.MustNew("10:00", "12:00")},
		{Day: time.Monday, Range: timerange.MustNew("14:00", "16:00")},
		{Day: time.Monday, Range: timerange.MustNew("09:00", "11:00")},
	}}
	text := FormatAvailability(av)
	mon := strings.Index(text, "Пн: 09:00-11:00, 14:00-16:00")
	sun := strings.Index(text, "Вс: 10:00-12:00")
	require.GreaterOrEqual(t, mon, 0)
	require.GreaterOrEqual(t, sun, 0)
	assert.Less(t, mon, sun)

	assert.Contains(t, FormatAvailability(nil), "/setavailability")
}

func TestFormatClassInfo(t *testing.T) {
	c := &model.ClassDefinition{
		Code: "C02", Subject: "Physics", Day: time.Wednesday, Range: timerange.MustNew("10:00", "11:30"),
		MaxStudents: 4, CurrentEnrollment: 1, Status: model.ClassStatusActive, Location: "Room 5",
	}
	text := FormatClassInfo(c)
	assert.Contains(t, text, "Класс C02")
	assert.Contains(t, text, "Среда, 10:00-11:30 (1 ч 30 мин)")
	assert.Contains(t, text, "Room 5")
	assert.Contains(t, text, "свободно 3")
	assert.Equal(t, "C02 · Ср 10:00-11:30 · Physics (1/4)", FormatClassShort(c))
}
