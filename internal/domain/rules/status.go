package rules

import "strings"

// Label — отображаемая метка статуса. Закрытое множество:
// произвольные строки статусов из БД сводятся к одной из меток,
// нераспознанные — в LabelDefault.
type Label string

// Отображаемые метки статусов.
const (
	LabelApproved  Label = "Approved"
	LabelPending   Label = "Pending"
	LabelRejected  Label = "Rejected"
	LabelAdded     Label = "Added"
	LabelUpdated   Label = "Updated"
	LabelDeleted   Label = "Deleted"
	LabelCancelled Label = "Cancelled"
	LabelDefault   Label = "Default"
)

// statusLabels — маппинг нормализованного статуса в метку.
// Сравнение точное, без учёта регистра.
var statusLabels = map[string]Label{
	"approved":  LabelApproved,
	"pending":   LabelPending,
	"rejected":  LabelRejected,
	"added":     LabelAdded,
	"updated":   LabelUpdated,
	"deleted":   LabelDeleted,
	"cancelled": LabelCancelled,
}

// StatusLabel сводит статус в свободной форме к отображаемой метке.
// Нераспознанные значения попадают в LabelDefault.
func StatusLabel(raw string) Label {
	if l, ok := statusLabels[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return l
	}
	return LabelDefault
}

// StatusIcon возвращает имя иконки для метки статуса.
func StatusIcon(label Label) string {
	switch label {
	case LabelApproved:
		return "check-circle"
	case LabelPending:
		return "clock"
	case LabelRejected:
		return "x-circle"
	case LabelAdded:
		return "plus-circle"
	case LabelUpdated:
		return "pencil"
	case LabelDeleted:
		return "trash"
	case LabelCancelled:
		return "slash-circle"
	default:
		return "info-circle"
	}
}

// KindIcon возвращает имя иконки для варианта записи активности.
// Дискриминаторы соответствуют model.ActivityKind.
func KindIcon(kind string) string {
	switch kind {
	case "leave":
		return "calendar"
	case "clearance":
		return "file-text"
	case "admin":
		return "shield"
	case "inventory":
		return "box"
	case "equipment":
		return "tool"
	default:
		return "activity"
	}
}
