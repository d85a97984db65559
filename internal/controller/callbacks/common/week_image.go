package common

import (
	"bytes"
	"fmt"
	"image/color"
	"time"

	"github.com/Freeeeeet/tutor_desk/internal/model"
	"github.com/Freeeeeet/tutor_desk/internal/scheduling"
	"github.com/Freeeeeet/tutor_desk/internal/timerange"
	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
)

// Константы размеров и отступов
const (
	imageWidth       = 1400
	imageHeight      = 900
	headerHeight     = 100
	leftLabelsWidth  = 80
	legendWidth      = 140
	dayPaddingX      = 8
	minBlockHeight   = 8.0
	blockRadius      = 6.0
	shadowOffset     = 3.0
	totalDaysInWeek  = 7
	hourPaddingTop   = 1
	hourPaddingBot   = 1
	defaultMinHour   = 8
	defaultMaxHour   = 20
	maxBlockTextRune = 22
)

// Цветовая схема
var (
	bgColor          = color.RGBA{245, 246, 248, 255}
	textColor        = color.RGBA{80, 85, 90, 220}
	hourLabelColor   = color.RGBA{110, 115, 120, 200}
	hourLineColor    = color.NRGBA{150, 150, 150, 255}
	todayBgColor     = color.NRGBA{255, 99, 71, 90}
	evenDayColor     = color.NRGBA{240, 240, 240, 255}
	oddDayColor      = color.NRGBA{225, 225, 225, 255}
	exceptionColor   = color.NRGBA{120, 120, 120, 90}
	currentTimeColor = color.NRGBA{255, 80, 80, 200}

	availabilityColor = color.RGBA{133, 193, 85, 110}
	classOpenColor    = color.RGBA{100, 149, 237, 230}
	classFullColor    = color.RGBA{255, 182, 193, 255}
	classClosedColor  = color.RGBA{158, 158, 158, 200}
	blockTextColor    = color.RGBA{20, 24, 28, 230}
	blockShadowColor  = color.RGBA{0, 0, 0, 20}
	legendItemColor   = color.RGBA{70, 74, 78, 220}
)

// WeekData то, что рисуется на картинке недели
type WeekData struct {
	Availability *model.Availability
	Classes      []model.ClassDefinition
}

// weekBounds содержит границы недели
type weekBounds struct {
	start time.Time
	end   time.Time
}

// hourRange содержит диапазон часов для отображения
type hourRange struct {
	start int
	end   int
	total int
}

// block прямоугольник на сетке: окно доступности или встреча класса
type block struct {
	day   int // 0 = понедельник
	start timerange.TimeOfDay
	end   timerange.TimeOfDay
	label string
	fill  color.Color
	class bool
}

// GenerateWeekImage рисует неделю, в которую попадает date: окна доступности и встречи классов.
// Подписи латиницей: у встроенного шрифта нет кириллицы.
func GenerateWeekImage(date, now time.Time, data WeekData) ([]byte, error) {
	week := normalizeToWeekBounds(date)
	today := normalizeToDay(now.In(date.Location()))
	shouldHighlightToday := isTodayInWeek(today, week)

	blocks, offDays := collectBlocks(week, data)
	hours := calculateHourRange(blocks)

	dc := createCanvas()
	dayWidth := (imageWidth - leftLabelsWidth - legendWidth) / totalDaysInWeek
	dayHeight := imageHeight - headerHeight
	cellHeight := float64(dayHeight) / float64(hours.total)

	dc.SetFontFace(basicfont.Face7x13)
	drawHeader(dc, week)
	drawHourLabels(dc, hours, cellHeight)
	drawDays(dc, week, today, shouldHighlightToday, offDays, hours, dayWidth, dayHeight, cellHeight)
	for _, b := range blocks {
		drawBlock(dc, b, hours, dayWidth, cellHeight)
	}
	if shouldHighlightToday {
		drawCurrentTimeLine(dc, now.In(date.Location()), hours, cellHeight, dayWidth)
	}
	drawLegend(dc, dayWidth)

	return encodeImage(dc)
}

// normalizeToWeekBounds нормализует дату к границам недели (Пн-Вс)
func normalizeToWeekBounds(date time.Time) weekBounds {
	normalized := normalizeToDay(date)

	daysSinceMonday := int(normalized.Weekday()) - 1
	if normalized.Weekday() == time.Sunday {
		daysSinceMonday = 6
	}

	start := normalized.AddDate(0, 0, -daysSinceMonday)
	end := start.AddDate(0, 0, 6)

	return weekBounds{start: start, end: end}
}

// normalizeToDay нормализует время к началу дня
func normalizeToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// isTodayInWeek проверяет, попадает ли сегодня в отображаемую неделю
func isTodayInWeek(today time.Time, week weekBounds) bool {
	return !today.Before(week.start) && !today.After(week.end)
}

// dayIndex 0 = понедельник ... 6 = воскресенье
func dayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}

// collectBlocks раскладывает окна и встречи классов по дням недели.
// Дни-исключения возвращаются отдельно: окон в них нет.
func collectBlocks(week weekBounds, data WeekData) ([]block, map[int]bool) {
	var (
		blocks     []block
		exceptions []model.AvailabilityException
	)
	offDays := make(map[int]bool)

	if av := data.Availability; av != nil {
		exceptions = av.Exceptions
		for _, e := range av.Exceptions {
			d := normalizeToDay(e.Date.In(week.start.Location()))
			if !d.Before(week.start) && !d.After(week.end) {
				offDays[dayIndex(d.Weekday())] = true
			}
		}
		for _, s := range av.Slots {
			idx := dayIndex(s.Day)
			if offDays[idx] {
				continue
			}
			blocks = append(blocks, block{
				day:   idx,
				start: s.Range.Start,
				end:   s.Range.End,
				fill:  availabilityColor,
			})
		}
	}

	weekEnd := week.end.AddDate(0, 0, 1).Add(-time.Nanosecond)
	for i := range data.Classes {
		c := &data.Classes[i]
		for _, occ := range scheduling.OccurrencesBetween(c, week.start, weekEnd, exceptions) {
			if !c.SemesterStart.IsZero() && occ.Start.Before(normalizeToDay(c.SemesterStart)) {
				continue
			}
			if !c.SemesterEnd.IsZero() && occ.Start.After(normalizeToDay(c.SemesterEnd).AddDate(0, 0, 1)) {
				continue
			}
			blocks = append(blocks, block{
				day:   dayIndex(occ.Start.Weekday()),
				start: c.Range.Start,
				end:   c.Range.End,
				label: fmt.Sprintf("%s %s", c.Code, c.Subject),
				fill:  classColor(c.Status),
				class: true,
			})
		}
	}

	return blocks, offDays
}

func classColor(status model.ClassStatus) color.Color {
	switch status {
	case model.ClassStatusFull:
		return classFullColor
	case model.ClassStatusClosed:
		return classClosedColor
	default:
		return classOpenColor
	}
}

// calculateHourRange определяет диапазон часов для отображения
func calculateHourRange(blocks []block) hourRange {
	minHour := 24
	maxHour := 0

	for _, b := range blocks {
		startH := b.start.Hour()
		endH := b.end.Hour()
		if b.end.Minute() > 0 {
			endH++
		}
		if startH < minHour {
			minHour = startH
		}
		if endH > maxHour {
			maxHour = endH
		}
	}

	if minHour == 24 {
		minHour = defaultMinHour
		maxHour = defaultMaxHour
	}

	startHour := minHour - hourPaddingTop
	endHour := maxHour + hourPaddingBot
	if startHour < 0 {
		startHour = 0
	}
	if endHour > 24 {
		endHour = 24
	}
	if endHour <= startHour {
		endHour = startHour + 1
	}

	return hourRange{
		start: startHour,
		end:   endHour,
		total: endHour - startHour,
	}
}

// createCanvas создает новый контекст рисования с фоном
func createCanvas() *gg.Context {
	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetColor(bgColor)
	dc.Clear()
	return dc
}

// drawHeader рисует заголовок с диапазоном дат
func drawHeader(dc *gg.Context, week weekBounds) {
	title := fmt.Sprintf("Week %s - %s", week.start.Format("02 Jan"), week.end.Format("02 Jan 2006"))
	dc.SetColor(textColor)
	dc.DrawStringAnchored(title, float64(imageWidth)/2, float64(headerHeight)/4, 0.5, 0.5)
}

// drawHourLabels рисует колонку с часами слева
func drawHourLabels(dc *gg.Context, hours hourRange, cellHeight float64) {
	dc.SetColor(hourLabelColor)
	for hIdx := 0; hIdx <= hours.total; hIdx++ {
		y := float64(headerHeight) + float64(hIdx)*cellHeight
		dc.DrawStringAnchored(fmt.Sprintf("%02d:00", hours.start+hIdx), float64(leftLabelsWidth)-10, y, 1, 0.5)
	}
}

// drawDays рисует фон, заголовки и линии часов для всех дней
func drawDays(dc *gg.Context, week weekBounds, today time.Time, shouldHighlightToday bool, offDays map[int]bool,
	hours hourRange, dayWidth, dayHeight int, cellHeight float64) {

	currentDate := week.start
	for idx := 0; idx < totalDaysInWeek; idx++ {
		x := float64(leftLabelsWidth + idx*dayWidth)
		y := float64(headerHeight)

		switch {
		case shouldHighlightToday && currentDate.Equal(today):
			dc.SetColor(todayBgColor)
		case idx%2 == 0:
			dc.SetColor(evenDayColor)
		default:
			dc.SetColor(oddDayColor)
		}
		dc.DrawRectangle(x, y, float64(dayWidth), float64(dayHeight))
		dc.Fill()

		if offDays[idx] {
			dc.SetColor(exceptionColor)
			dc.DrawRectangle(x, y, float64(dayWidth), float64(dayHeight))
			dc.Fill()
		}

		dc.SetColor(textColor)
		header := currentDate.Format("Mon 02.01")
		if offDays[idx] {
			header += " (off)"
		}
		dc.DrawStringAnchored(header, x+float64(dayWidth)/2, y-12, 0.5, 0.5)

		dc.SetLineWidth(0.3)
		dc.SetColor(hourLineColor)
		for hIdx := 0; hIdx <= hours.total; hIdx++ {
			hy := y + float64(hIdx)*cellHeight
			dc.DrawLine(x, hy, x+float64(dayWidth), hy)
			dc.Stroke()
		}

		currentDate = currentDate.AddDate(0, 0, 1)
	}
}

// drawBlock рисует окно доступности (фоном на всю ширину) или встречу класса (карточкой)
func drawBlock(dc *gg.Context, b block, hours hourRange, dayWidth int, cellHeight float64) {
	x := float64(leftLabelsWidth + b.day*dayWidth)
	startHour := float64(b.start) / 60.0
	endHour := float64(b.end) / 60.0

	y := float64(headerHeight) + (startHour-float64(hours.start))*cellHeight
	height := (endHour - startHour) * cellHeight
	if height < minBlockHeight {
		height = minBlockHeight
	}

	if !b.class {
		dc.SetColor(b.fill)
		dc.DrawRectangle(x, y, float64(dayWidth), height)
		dc.Fill()
		return
	}

	width := float64(dayWidth) - float64(dayPaddingX*2)

	// Тень
	dc.SetColor(blockShadowColor)
	dc.DrawRoundedRectangle(x+dayPaddingX+shadowOffset, y+2+shadowOffset, width, height-4, blockRadius)
	dc.Fill()

	dc.SetColor(b.fill)
	dc.DrawRoundedRectangle(x+dayPaddingX, y+2, width, height-4, blockRadius)
	dc.Fill()

	dc.SetColor(blockTextColor)
	txtX := x + dayPaddingX + 6
	dc.DrawStringAnchored(fmt.Sprintf("%s-%s", b.start, b.end), txtX, y+14, 0, 0)
	if height > 30 {
		dc.DrawStringAnchored(truncate(b.label, maxBlockTextRune), txtX, y+30, 0, 0)
	}
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

// drawCurrentTimeLine рисует красную линию текущего времени
func drawCurrentTimeLine(dc *gg.Context, now time.Time, hours hourRange, cellHeight float64, dayWidth int) {
	currentHour := float64(now.Hour()) + float64(now.Minute())/60.0
	if currentHour < float64(hours.start) || currentHour > float64(hours.end) {
		return
	}

	y := float64(headerHeight) + (currentHour-float64(hours.start))*cellHeight
	dc.SetColor(currentTimeColor)
	dc.SetLineWidth(2.0)
	dc.DrawLine(float64(leftLabelsWidth), y, float64(leftLabelsWidth+totalDaysInWeek*dayWidth), y)
	dc.Stroke()
}

// drawLegend рисует легенду справа
func drawLegend(dc *gg.Context, dayWidth int) {
	legendX := float64(leftLabelsWidth + totalDaysInWeek*dayWidth + 10)
	legendY := float64(imageHeight) - 130.0

	items := []struct {
		Label string
		Clr   color.Color
	}{
		{"Available", availabilityColor},
		{"Class", classOpenColor},
		{"Class full", classFullColor},
		{"Closed", classClosedColor},
		{"Day off", exceptionColor},
	}

	const boxW, boxH = 20.0, 14.0
	y := legendY
	for _, item := range items {
		dc.SetColor(item.Clr)
		dc.DrawRoundedRectangle(legendX, y, boxW, boxH, 3)
		dc.Fill()

		dc.SetColor(legendItemColor)
		dc.DrawStringAnchored(item.Label, legendX+boxW+8, y+boxH/2, 0, 0.5)
		y += boxH + 10
	}
}

// encodeImage кодирует изображение в PNG
func encodeImage(dc *gg.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
