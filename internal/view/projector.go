// projector.go — проекция сырых записей в плоские view-модели экранов.
// Денормализация (документ + владелец), вычисляемые поля (форматированные
// имена и даты, классификация наград, выслуга и право на повышение),
// развёртка заявок в записи активности (1 заявка — до 2 записей).
package view

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bigkaa/firestation/admin-module/internal/domain/model"
	"github.com/bigkaa/firestation/admin-module/internal/domain/rules"
)

// ErrProjectionGap — связанная запись отсутствует (например, документ
// без владельца). Не фатально: строка пропускается с записью в лог.
var ErrProjectionGap = errors.New("связанная запись отсутствует")

// Литералы-заглушки для отсутствующих данных.
const (
	// fallbackNA — неизвестное звание / отсутствующее значение.
	fallbackNA = "N/A"
	// awardTypeGeneral — тип награды по умолчанию.
	awardTypeGeneral = "General"
)

// awardKeywords — упорядоченный список ключевых слов для классификации
// документов без явной категории. Побеждает первое совпадение подстроки
// в имени файла (нижний регистр); порядок значим, не менять.
var awardKeywords = []struct {
	keyword string
	label   string
}{
	{"medal", "Medal"},
	{"commendation", "Commendation"},
	{"certificate", "Certificate"},
	{"ribbon", "Ribbon"},
	{"badge", "Badge"},
}

// fixedNameLabels — жёстко заданные отображаемые метки для служебных
// идентификаторов, независимо от регистра исходной строки.
var fixedNameLabels = map[string]string{
	"admin":     "Admin",
	"inspector": "Fire Inspector",
	"n/a":       "N/A",
}

// FormatName приводит сырое имя к отображаемому виду: первая буква
// каждого токена — заглавная, остальные — строчные. Служебные
// идентификаторы (admin, inspector) заменяются фиксированными метками.
func FormatName(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if label, ok := fixedNameLabels[strings.ToLower(trimmed)]; ok {
		return label
	}

	tokens := strings.Fields(trimmed)
	for i, tok := range tokens {
		r := []rune(strings.ToLower(tok))
		r[0] = []rune(strings.ToUpper(string(r[0])))[0]
		tokens[i] = string(r)
	}
	return strings.Join(tokens, " ")
}

// FullName собирает отображаемое имя из частей, пропуская отсутствующие.
func FullName(first string, middle *string, last string) string {
	parts := make([]string, 0, 3)
	if first != "" {
		parts = append(parts, first)
	}
	if middle != nil && *middle != "" {
		parts = append(parts, *middle)
	}
	if last != "" {
		parts = append(parts, last)
	}
	return FormatName(strings.Join(parts, " "))
}

// ClassifyDocument возвращает тип награды: явная категория, если задана,
// иначе — эвристика по ключевым словам в имени файла, иначе General.
// Эвристика лучшая из возможных, не авторитетная.
func ClassifyDocument(category *string, fileName string) string {
	if category != nil && strings.TrimSpace(*category) != "" {
		return strings.TrimSpace(*category)
	}

	lower := strings.ToLower(fileName)
	for _, kw := range awardKeywords {
		if strings.Contains(lower, kw.keyword) {
			return kw.label
		}
	}
	return awardTypeGeneral
}

// FormatDate форматирует дату для таблиц.
func FormatDate(t time.Time) string {
	return t.Format("Jan 02, 2006")
}

// FormatDateTime форматирует дату и время для ленты активности.
func FormatDateTime(t time.Time) string {
	return t.Format("Jan 02, 2006 15:04")
}

// TruncateText обрезает текст до limit рун с многоточием.
func TruncateText(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit]) + "…"
}

// --- Награды ---

// AwardRow — строка таблицы наград: документ + владелец.
type AwardRow struct {
	// DocumentID — ID исходного документа (уникален в пределах коллекции)
	DocumentID string `json:"document_id"`
	// PersonnelID — ID владельца
	PersonnelID string `json:"personnel_id"`
	// RecipientName — отформатированное имя владельца
	RecipientName string `json:"recipient_name"`
	// Rank — звание владельца (N/A, если неизвестно)
	Rank string `json:"rank"`
	// BadgeNumber — номер жетона
	BadgeNumber string `json:"badge_number"`
	// AwardType — классификация награды
	AwardType string `json:"award_type"`
	// FileName — имя файла документа
	FileName string `json:"file_name"`
	// FilePath — путь в bucket документов
	FilePath string `json:"-"`
	// FileURL — публичный URL скачивания (проставляется сервисом)
	FileURL string `json:"file_url,omitempty"`
	// UploadedAt — отформатированная дата загрузки
	UploadedAt string `json:"uploaded_at"`
}

// SearchText возвращает конкатенацию отображаемых полей строки.
func (r AwardRow) SearchText() string {
	return strings.Join([]string{
		r.RecipientName, r.Rank, r.BadgeNumber, r.AwardType, r.FileName, r.UploadedAt,
	}, " ")
}

// Classification возвращает тип награды.
func (r AwardRow) Classification() string { return r.AwardType }

// MatchesQuick — quick-фильтр наград: совпадение тега с типом награды
// (подстрока, без учёта регистра).
func (r AwardRow) MatchesQuick(tag string) bool {
	return containsFold(r.AwardType, tag)
}

// ProjectAward проецирует документ и его владельца в строку таблицы наград.
// owner == nil — ErrProjectionGap (документ-сирота пропускается).
func ProjectAward(doc *model.DocumentRecord, owner *model.PersonRecord) (AwardRow, error) {
	if owner == nil {
		return AwardRow{}, fmt.Errorf("%w: документ %s без владельца %s",
			ErrProjectionGap, doc.ID, doc.PersonnelID)
	}

	rank := owner.Rank
	if !rules.IsValidRank(rank) {
		rank = fallbackNA
	}

	return AwardRow{
		DocumentID:    doc.ID,
		PersonnelID:   owner.ID,
		RecipientName: FullName(owner.FirstName, owner.MiddleName, owner.LastName),
		Rank:          rank,
		BadgeNumber:   owner.BadgeNumber,
		AwardType:     ClassifyDocument(doc.Category, doc.FileName),
		FileName:      doc.FileName,
		FilePath:      doc.FilePath,
		UploadedAt:    FormatDate(doc.UploadedAt),
	}, nil
}

// --- Повышения ---

// PromotionRow — строка таблицы повышений.
type PromotionRow struct {
	// PersonnelID — ID сотрудника
	PersonnelID string `json:"personnel_id"`
	// Name — отформатированное имя
	Name string `json:"name"`
	// Rank — текущее звание
	Rank string `json:"rank"`
	// NextRank — следующее звание (N/A на потолке)
	NextRank string `json:"next_rank"`
	// BadgeNumber — номер жетона
	BadgeNumber string `json:"badge_number"`
	// YearsInRank — выслуга в звании, лет
	YearsInRank float64 `json:"years_in_rank"`
	// Eligible — есть право на повышение
	Eligible bool `json:"eligible"`
	// SinceDate — отформатированная дата отсчёта выслуги
	SinceDate string `json:"since_date"`
	// RankImagePath — путь к изображению звания (bucket rank_images)
	RankImagePath string `json:"-"`
	// RankImageURL — публичный URL изображения (проставляется сервисом)
	RankImageURL string `json:"rank_image_url,omitempty"`
}

// SearchText возвращает конкатенацию отображаемых полей строки.
func (r PromotionRow) SearchText() string {
	return strings.Join([]string{
		r.Name, r.Rank, r.NextRank, r.BadgeNumber, r.SinceDate,
	}, " ")
}

// Classification возвращает текущее звание.
func (r PromotionRow) Classification() string { return r.Rank }

// MatchesQuick — quick-фильтр повышений: тег eligible отбирает сотрудников
// с правом на повышение, любой другой тег сравнивается со званием.
func (r PromotionRow) MatchesQuick(tag string) bool {
	if strings.EqualFold(tag, "eligible") {
		return r.Eligible
	}
	return strings.EqualFold(r.Rank, tag)
}

// ProjectPromotion проецирует запись сотрудника в строку таблицы повышений.
func ProjectPromotion(p *model.PersonRecord, now time.Time) PromotionRow {
	rank := p.Rank
	if !rules.IsValidRank(rank) {
		rank = fallbackNA
	}

	next := fallbackNA
	if nr, ok := rules.NextRank(p.Rank); ok {
		next = nr
	}

	reference := p.PromotionReference()
	rankImagePath := ""
	if p.RankImagePath != nil {
		rankImagePath = *p.RankImagePath
	}

	return PromotionRow{
		PersonnelID:   p.ID,
		Name:          FullName(p.FirstName, p.MiddleName, p.LastName),
		Rank:          rank,
		NextRank:      next,
		BadgeNumber:   p.BadgeNumber,
		YearsInRank:   rules.YearsInRank(reference, now),
		Eligible:      rules.PromotionEligible(reference, now),
		SinceDate:     FormatDate(reference),
		RankImagePath: rankImagePath,
	}
}

// --- Лента активности ---

// Максимальная длина поля деталей в ленте активности.
const activityDetailLimit = 80

// ActivityRow — строка ленты активности.
type ActivityRow struct {
	// ID — уникальный ID записи (ID источника + суффикс фазы)
	ID string `json:"id"`
	// Kind — дискриминатор варианта
	Kind string `json:"kind"`
	// Description — человекочитаемое описание события
	Description string `json:"description"`
	// Actor — отформатированное имя связанного лица
	Actor string `json:"actor"`
	// Status — отображаемая метка статуса
	Status string `json:"status"`
	// StatusIcon — иконка метки статуса
	StatusIcon string `json:"status_icon"`
	// KindIcon — иконка варианта
	KindIcon string `json:"kind_icon"`
	// Detail — усечённые детали
	Detail string `json:"detail,omitempty"`
	// Timestamp — время события (для сортировки)
	Timestamp time.Time `json:"timestamp"`
	// TimeLabel — отформатированное время события
	TimeLabel string `json:"time_label"`
}

// SearchText возвращает конкатенацию отображаемых полей строки.
func (r ActivityRow) SearchText() string {
	return strings.Join([]string{
		r.Description, r.Actor, r.Status, r.Detail, r.TimeLabel,
	}, " ")
}

// Classification возвращает дискриминатор варианта.
func (r ActivityRow) Classification() string { return r.Kind }

// MatchesQuick — quick-фильтр активности: точное совпадение с вариантом.
func (r ActivityRow) MatchesQuick(tag string) bool {
	return strings.EqualFold(r.Kind, tag)
}

// ProjectActivity проецирует запись активности в строку ленты.
// Type switch по вариантам union — полнота проверяется при сборке
// через default с generic-описанием.
func ProjectActivity(a model.Activity) ActivityRow {
	row := ActivityRow{
		ID:        a.ActivityID(),
		Kind:      string(a.Kind()),
		Actor:     FormatName(a.ActorName()),
		KindIcon:  rules.KindIcon(string(a.Kind())),
		Timestamp: a.OccurredAt(),
		TimeLabel: FormatDateTime(a.OccurredAt()),
	}

	var rawStatus, description, detail string
	switch v := a.(type) {
	case model.LeaveActivity:
		rawStatus = v.Status
		description = fmt.Sprintf("%s подал заявку на отпуск (%s)", row.Actor, v.LeaveType)
		detail = fmt.Sprintf("%s — %s: %s", FormatDate(v.DateFrom), FormatDate(v.DateTo), v.Reason)
	case model.ClearanceActivity:
		rawStatus = v.Status
		description = fmt.Sprintf("%s запросил справку", row.Actor)
		detail = v.Purpose
	case model.AdminActivity:
		rawStatus = v.Action
		description = fmt.Sprintf("%s: %s — %s", row.Actor, v.Action, FormatName(v.Subject))
		detail = v.Detail
	case model.InventoryActivity:
		rawStatus = v.Action
		description = fmt.Sprintf("%s: инвентарь %q — %s", row.Actor, v.ItemLabel, v.Action)
		detail = v.Detail
	case model.EquipmentActivity:
		rawStatus = v.Condition
		description = fmt.Sprintf("%s обновил снаряжение %q (%s)", row.Actor, v.Name, v.SerialNumber)
		detail = "состояние: " + v.Condition
	default:
		rawStatus = ""
		description = fmt.Sprintf("%s: событие %s", row.Actor, a.Kind())
	}

	label := rules.StatusLabel(rawStatus)
	row.Status = string(label)
	row.StatusIcon = rules.StatusIcon(label)
	row.Description = description
	row.Detail = TruncateText(detail, activityDetailLimit)

	return row
}

// ExpandLeave разворачивает заявку на отпуск в записи активности.
// Всегда событие подачи (суффикс -s); если решение принято
// (approved_by задан) — дополнительно административное действие
// (суффикс -a) со своим временем и актором. Намеренная развёртка
// 1-к-N: одна заявка даёт до 2 записей.
func ExpandLeave(req *model.LeaveRequest, personName string) []model.Activity {
	activities := []model.Activity{
		model.LeaveActivity{
			SourceID:   req.ID + "-s",
			PersonName: personName,
			LeaveType:  req.LeaveType,
			DateFrom:   req.DateFrom,
			DateTo:     req.DateTo,
			Reason:     req.Reason,
			Status:     req.Status,
			Timestamp:  req.SubmittedAt,
		},
	}

	if req.ApprovedBy != nil && *req.ApprovedBy != "" {
		decidedAt := req.SubmittedAt
		if req.DecidedAt != nil {
			decidedAt = *req.DecidedAt
		}
		activities = append(activities, model.AdminActivity{
			SourceID:  req.ID + "-a",
			Action:    req.Status,
			Subject:   personName,
			Actor:     *req.ApprovedBy,
			Detail:    "заявка на отпуск: " + req.LeaveType,
			Timestamp: decidedAt,
		})
	}

	return activities
}

// ExpandClearance разворачивает заявку на справку аналогично ExpandLeave:
// событие подачи плюс административное действие при наличии рекомендации.
func ExpandClearance(req *model.ClearanceRequest, personName string) []model.Activity {
	activities := []model.Activity{
		model.ClearanceActivity{
			SourceID:   req.ID + "-s",
			PersonName: personName,
			Purpose:    req.Purpose,
			Status:     req.Status,
			Timestamp:  req.SubmittedAt,
		},
	}

	if req.RecommendedBy != nil && *req.RecommendedBy != "" {
		decidedAt := req.SubmittedAt
		if req.DecidedAt != nil {
			decidedAt = *req.DecidedAt
		}
		activities = append(activities, model.AdminActivity{
			SourceID:  req.ID + "-a",
			Action:    req.Status,
			Subject:   personName,
			Actor:     *req.RecommendedBy,
			Detail:    "справка: " + req.Purpose,
			Timestamp: decidedAt,
		})
	}

	return activities
}

// ActivityFromAudit преобразует запись журнала в запись активности
// по виду сущности.
func ActivityFromAudit(e *model.AuditEntry) model.Activity {
	switch e.EntityKind {
	case model.AuditKindAdmin:
		return model.AdminActivity{
			SourceID:  e.ID,
			Action:    e.Action,
			Subject:   e.ItemLabel,
			Actor:     e.Actor,
			Detail:    e.Details,
			Timestamp: e.OccurredAt,
		}
	default:
		return model.InventoryActivity{
			SourceID:  e.ID,
			Action:    e.Action,
			ItemLabel: e.ItemLabel,
			Actor:     e.Actor,
			Detail:    e.Details,
			Timestamp: e.OccurredAt,
		}
	}
}

// ActivityFromEquipment преобразует изменение снаряжения в запись активности.
func ActivityFromEquipment(item *model.EquipmentItem) model.Activity {
	return model.EquipmentActivity{
		SourceID:     item.ID,
		Name:         item.Name,
		SerialNumber: item.SerialNumber,
		Condition:    item.Condition,
		Actor:        item.UpdatedBy,
		Timestamp:    item.UpdatedAt,
	}
}
