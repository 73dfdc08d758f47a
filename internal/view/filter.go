// filter.go — композитная цепочка предикатов для табличных экранов:
// quick-фильтр карточки сводки, фильтр по классификации, полнотекстовый поиск.
package view

import "strings"

// FilterState — состояние фильтров одного экрана: поисковая строка,
// фильтр классификации, quick-фильтр и текущая страница.
// Единственный изменяемый экземпляр на сессию экрана; любое изменение
// фильтра сбрасывает страницу на 1.
type FilterState struct {
	// Query — полнотекстовый поиск
	Query string `json:"query"`
	// TypeFilter — фильтр по полю классификации
	TypeFilter string `json:"type_filter"`
	// QuickFilter — тег карточки сводки
	QuickFilter string `json:"quick_filter"`
	// Page — текущая страница (с 1)
	Page int `json:"page"`
}

// NewFilterState возвращает пустое состояние на первой странице.
func NewFilterState() FilterState {
	return FilterState{Page: 1}
}

// SetQuery задаёт поисковую строку и сбрасывает страницу на 1.
func (s *FilterState) SetQuery(q string) {
	s.Query = q
	s.Page = 1
}

// SetTypeFilter задаёт фильтр классификации и сбрасывает страницу на 1.
func (s *FilterState) SetTypeFilter(v string) {
	s.TypeFilter = v
	s.Page = 1
}

// SetQuickFilter задаёт quick-фильтр и сбрасывает страницу на 1.
func (s *FilterState) SetQuickFilter(tag string) {
	s.QuickFilter = tag
	s.Page = 1
}

// SetPage задаёт страницу, не трогая фильтры.
func (s *FilterState) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	s.Page = page
}

// Filterable — строка view-модели, участвующая в фильтрации.
type Filterable interface {
	// SearchText возвращает конкатенацию всех отображаемых полей строки
	// для полнотекстового поиска.
	SearchText() string
	// Classification возвращает поле классификации для type-фильтра.
	Classification() string
	// MatchesQuick возвращает true, если строка проходит quick-фильтр
	// с данным тегом (предикат категории, без учёта регистра).
	MatchesQuick(tag string) bool
}

// Apply применяет цепочку фильтров к коллекции. Порядок: quick-фильтр,
// фильтр классификации, полнотекстовый поиск. Все три опциональны
// (пустое значение — пропуск) и конъюнктивны. Пустой результат —
// корректный исход, не ошибка.
func Apply[T Filterable](rows []T, st FilterState) []T {
	result := make([]T, 0, len(rows))
	for _, row := range rows {
		if st.QuickFilter != "" && !row.MatchesQuick(st.QuickFilter) {
			continue
		}
		if st.TypeFilter != "" && !containsFold(row.Classification(), st.TypeFilter) {
			continue
		}
		if st.Query != "" && !containsFold(row.SearchText(), st.Query) {
			continue
		}
		result = append(result, row)
	}
	return result
}

// containsFold — поиск подстроки без учёта регистра.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
