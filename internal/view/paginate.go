// paginate.go — постраничная разбивка отфильтрованных коллекций
// и генерация спецификации кнопок пагинации.
package view

// PageCount возвращает количество страниц: max(1, ceil(n/pageSize)).
func PageCount(n, pageSize int) int {
	if pageSize < 1 {
		pageSize = 1
	}
	count := (n + pageSize - 1) / pageSize
	if count < 1 {
		return 1
	}
	return count
}

// Paginate возвращает срез строк для страницы page (нумерация с 1).
// Страница вне диапазона — пустой срез, не ошибка: вызывающая сторона
// обязана сбрасывать страницу на 1 при смене фильтров.
func Paginate[T any](rows []T, pageSize, page int) []T {
	if pageSize < 1 || page < 1 {
		return nil
	}
	start := (page - 1) * pageSize
	if start >= len(rows) {
		return nil
	}
	end := start + pageSize
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}

// Button — одна кнопка пагинации: номер страницы либо многоточие.
type Button struct {
	// Page — номер страницы (0 для многоточия)
	Page int `json:"page,omitempty"`
	// Ellipsis — кнопка-многоточие, не нажимается
	Ellipsis bool `json:"ellipsis,omitempty"`
	// Current — текущая страница
	Current bool `json:"current,omitempty"`
}

// Pagination — спецификация блока пагинации для рендеринга.
type Pagination struct {
	// Page — текущая страница
	Page int `json:"page"`
	// PageCount — всего страниц
	PageCount int `json:"page_count"`
	// PageSize — размер страницы
	PageSize int `json:"page_size"`
	// Total — всего строк после фильтрации
	Total int `json:"total"`
	// PrevEnabled, NextEnabled — доступность кнопок Previous/Next
	PrevEnabled bool `json:"prev_enabled"`
	NextEnabled bool `json:"next_enabled"`
	// Buttons — последовательность кнопок (первая, окно, многоточия, последняя)
	Buttons []Button `json:"buttons"`
}

// Buttons генерирует последовательность кнопок: всегда страница 1 и последняя,
// скользящее окно current±1 (расширенное до 4 страниц у начала и сжатое
// у конца), многоточие там, где окно не примыкает к краю.
func Buttons(pageCount, current int) []Button {
	if pageCount < 1 {
		pageCount = 1
	}
	if current < 1 {
		current = 1
	}
	if current > pageCount {
		current = pageCount
	}

	if pageCount == 1 {
		return []Button{{Page: 1, Current: true}}
	}

	// Окно внутренних страниц (между первой и последней)
	start := current - 1
	end := current + 1
	if current <= 3 {
		// У начала окно расширяется: страницы 1-4 без многоточия
		start, end = 2, 4
	}
	if current >= pageCount-2 {
		// У конца окно сжимается к последним страницам
		start, end = pageCount-3, pageCount-1
	}
	if start < 2 {
		start = 2
	}
	if end > pageCount-1 {
		end = pageCount - 1
	}

	buttons := []Button{{Page: 1, Current: current == 1}}
	if start > 2 {
		buttons = append(buttons, Button{Ellipsis: true})
	}
	for p := start; p <= end; p++ {
		buttons = append(buttons, Button{Page: p, Current: p == current})
	}
	if end < pageCount-1 {
		buttons = append(buttons, Button{Ellipsis: true})
	}
	buttons = append(buttons, Button{Page: pageCount, Current: current == pageCount})

	return buttons
}

// Paginated возвращает строки страницы и готовую спецификацию пагинации.
func Paginated[T any](rows []T, pageSize, page int) ([]T, Pagination) {
	pageCount := PageCount(len(rows), pageSize)
	pageRows := Paginate(rows, pageSize, page)

	return pageRows, Pagination{
		Page:        page,
		PageCount:   pageCount,
		PageSize:    pageSize,
		Total:       len(rows),
		PrevEnabled: len(rows) > 0 && pageCount > 1 && page > 1,
		NextEnabled: len(rows) > 0 && pageCount > 1 && page < pageCount,
		Buttons:     Buttons(pageCount, page),
	}
}
