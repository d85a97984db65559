package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Freeeeeet/tutor_desk/internal/controller/callbacks/common"
	"github.com/Freeeeeet/tutor_desk/internal/model"
	"github.com/Freeeeeet/tutor_desk/internal/timerange"
)

// Рисует картинку недели на тестовых данных, без бота и бэкенда
func main() {
	out := flag.String("o", "week.png", "output file")
	flag.Parse()

	now := time.Now()
	monday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	for monday.Weekday() != time.Monday {
		monday = monday.AddDate(0, 0, -1)
	}

	data := common.WeekData{
		Availability: &model.Availability{
			TutorID: "demo",
			Slots: []model.AvailabilitySlot{
				{Day: time.Monday, Range: timerange.MustNew("09:00", "17:00")},
				{Day: time.Wednesday, Range: timerange.MustNew("10:00", "14:00")},
				{Day: time.Wednesday, Range: timerange.MustNew("16:00", "20:00")},
				{Day: time.Friday, Range: timerange.MustNew("09:00", "13:00")},
			},
			Exceptions: []model.AvailabilityException{
				{Date: monday.AddDate(0, 0, 4), Reason: "Holiday"},
			},
		},
		Classes: []model.ClassDefinition{
			{
				Code:              "C01",
				Subject:           "Physics",
				Day:               time.Monday,
				Range:             timerange.MustNew("10:00", "11:30"),
				MaxStudents:       4,
				CurrentEnrollment: 3,
				Status:            model.ClassStatusActive,
				SemesterStart:     monday.AddDate(0, -1, 0),
				SemesterEnd:       monday.AddDate(0, 3, 0),
			},
			{
				Code:              "C02",
				Subject:           "Mathematics",
				Day:               time.Wednesday,
				Range:             timerange.MustNew("17:00", "18:00"),
				MaxStudents:       1,
				CurrentEnrollment: 1,
				Status:            model.ClassStatusFull,
				SemesterStart:     monday.AddDate(0, -1, 0),
				SemesterEnd:       monday.AddDate(0, 3, 0),
			},
		},
	}

	imageData, err := common.GenerateWeekImage(monday, now, data)
	if err != nil {
		fmt.Printf("Ошибка генерации изображения: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(*out, imageData, 0644); err != nil {
		fmt.Printf("Ошибка сохранения файла: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Изображение сохранено в %s\n", *out)
	fmt.Printf("📅 Неделя с %s, классов: %d\n", monday.Format("02.01.2006"), len(data.Classes))
}
