package view

import (
	"strings"
	"testing"
)

// fakeRow — минимальная Filterable-строка для тестов фильтрации.
type fakeRow struct {
	text  string
	class string
	tags  []string
}

func (r fakeRow) SearchText() string { return r.text }

func (r fakeRow) Classification() string { return r.class }

func (r fakeRow) MatchesQuick(tag string) bool {
	for _, t := range r.tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

var filterRows = []fakeRow{
	{"Smith John Medal 2023", "Medal", []string{"medal"}},
	{"Jones Anna Ribbon 2024", "Ribbon", []string{"ribbon"}},
	{"Brown Pete Medal 2024", "Medal", []string{"medal"}},
	{"Davis Kim Certificate 2022", "Certificate", []string{"certificate"}},
}

func TestApplyEmptyFiltersPassAll(t *testing.T) {
	st := NewFilterState()
	got := Apply(filterRows, st)
	if len(got) != len(filterRows) {
		t.Errorf("пустые фильтры пропустили %d из %d строк", len(got), len(filterRows))
	}
}

func TestApplyQuery(t *testing.T) {
	st := NewFilterState()
	st.SetQuery("medal")

	got := Apply(filterRows, st)
	if len(got) != 2 {
		t.Fatalf("поиск medal вернул %d строк, ожидается 2", len(got))
	}

	// Регистронезависимость
	st.SetQuery("MEDAL")
	if len(Apply(filterRows, st)) != 2 {
		t.Error("поиск должен быть регистронезависимым")
	}

	// Пустой результат — корректный исход
	st.SetQuery("nothing-matches")
	if len(Apply(filterRows, st)) != 0 {
		t.Error("несовпадающий запрос должен дать пустой результат")
	}
}

func TestApplyConjunctive(t *testing.T) {
	// Все три фильтра применяются одновременно (пересечение)
	st := NewFilterState()
	st.SetQuickFilter("medal")
	st.SetTypeFilter("Medal")
	st.SetQuery("2024")

	got := Apply(filterRows, st)
	if len(got) != 1 || got[0].text != "Brown Pete Medal 2024" {
		t.Errorf("конъюнкция фильтров = %v", got)
	}
}

func TestApplyIdempotent(t *testing.T) {
	st := NewFilterState()
	st.SetQuery("medal")

	once := Apply(filterRows, st)
	twice := Apply(once, st)
	if len(once) != len(twice) {
		t.Errorf("повторное применение изменило результат: %d → %d", len(once), len(twice))
	}
}

func TestFilterStateResetsPage(t *testing.T) {
	st := NewFilterState()
	st.SetPage(7)

	st.SetQuery("x")
	if st.Page != 1 {
		t.Errorf("SetQuery не сбросил страницу: %d", st.Page)
	}

	st.SetPage(5)
	st.SetTypeFilter("Medal")
	if st.Page != 1 {
		t.Errorf("SetTypeFilter не сбросил страницу: %d", st.Page)
	}

	st.SetPage(3)
	st.SetQuickFilter("medal")
	if st.Page != 1 {
		t.Errorf("SetQuickFilter не сбросил страницу: %d", st.Page)
	}

	// SetPage фильтры не трогает
	st.SetPage(2)
	if st.Query != "x" || st.TypeFilter != "Medal" || st.QuickFilter != "medal" {
		t.Error("SetPage изменил фильтры")
	}

	// Страница меньше 1 нормализуется
	st.SetPage(0)
	if st.Page != 1 {
		t.Errorf("SetPage(0) дал страницу %d", st.Page)
	}
}
