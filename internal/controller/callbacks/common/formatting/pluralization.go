package formatting

// pluralize выбирает форму слова для числа: one (1, 21), few (2-4, 22-24), many (остальные)
func pluralize(count int, one, few, many string) string {
	if count < 0 {
		count = -count
	}
	if count%10 == 1 && count%100 != 11 {
		return one
	}
	if count%10 >= 2 && count%10 <= 4 && (count%100 < 10 || count%100 >= 20) {
		return few
	}
	return many
}

// PluralizeSessions возвращает правильное склонение слова "занятие"
func PluralizeSessions(count int) string {
	return pluralize(count, "занятие", "занятия", "занятий")
}

// PluralizeRequests возвращает правильное склонение слова "запрос"
func PluralizeRequests(count int) string {
	return pluralize(count, "запрос", "запроса", "запросов")
}

// PluralizeClasses возвращает правильное склонение слова "класс"
func PluralizeClasses(count int) string {
	return pluralize(count, "класс", "класса", "классов")
}

// PluralizeStudents возвращает правильное склонение слова "студент"
func PluralizeStudents(count int) string {
	return pluralize(count, "студент", "студента", "студентов")
}
