// Пакет rules — чистые доменные правила дашборда:
// порядок званий, выслуга в звании, право на повышение,
// маппинг статусов в отображаемые метки.
// Правила: выслуга = floor(дней с отсчёта / 365.25);
// право на повышение — выслуга не менее 2 лет.
package rules

import "time"

// Звания в порядке возрастания. Порядок фиксированный:
// следующее звание — непосредственный преемник, у SFO4 преемника нет.
const (
	RankFO1  = "FO1"
	RankFO2  = "FO2"
	RankFO3  = "FO3"
	RankSFO1 = "SFO1"
	RankSFO2 = "SFO2"
	RankSFO3 = "SFO3"
	RankSFO4 = "SFO4"
)

// RankOrder — полный порядок званий от младшего к старшему.
var RankOrder = []string{RankFO1, RankFO2, RankFO3, RankSFO1, RankSFO2, RankSFO3, RankSFO4}

// rankIndex — позиция звания в порядке (для поиска преемника).
var rankIndex = buildRankIndex()

func buildRankIndex() map[string]int {
	idx := make(map[string]int, len(RankOrder))
	for i, r := range RankOrder {
		idx[r] = i
	}
	return idx
}

// Минимальная выслуга в звании для повышения, лет.
const MinYearsForPromotion = 2.0

// daysPerYear — средняя длина года с учётом високосных.
const daysPerYear = 365.25

// YearsInRank возвращает выслугу в звании: целое число лет,
// прошедших от reference до now (floor по 365.25 дня).
// Если reference в будущем — возвращает 0.
func YearsInRank(reference, now time.Time) float64 {
	days := now.Sub(reference).Hours() / 24
	if days < 0 {
		return 0
	}
	years := days / daysPerYear
	return float64(int(years))
}

// PromotionEligible возвращает true, если выслуга в звании
// от reference до now составляет не менее MinYearsForPromotion лет.
func PromotionEligible(reference, now time.Time) bool {
	return YearsInRank(reference, now) >= MinYearsForPromotion
}

// NextRank возвращает следующее звание и true, либо "" и false,
// если звание неизвестно или является потолком (SFO4).
func NextRank(rank string) (string, bool) {
	i, ok := rankIndex[rank]
	if !ok || i == len(RankOrder)-1 {
		return "", false
	}
	return RankOrder[i+1], true
}

// IsValidRank проверяет, является ли строка допустимым званием.
func IsValidRank(rank string) bool {
	_, ok := rankIndex[rank]
	return ok
}
