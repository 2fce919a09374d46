// Package domain defines core business entities
package domain

import (
	"time"
)

// Order represents a diagnostic service order created by a manager
// and worked on by an executor. JSON field names follow the records
// the original tool kept under the `orders` storage key.
type Order struct {
	ID                  string     `json:"id"`
	Date                string     `json:"date"`
	Client              string     `json:"client"`
	Contacts            string     `json:"contacts"`
	Car                 string     `json:"car"`
	VIN                 string     `json:"vin,omitempty"`
	RegNum              string     `json:"regnum,omitempty"`
	Executor            string     `json:"executor"`
	OrderNumber         string     `json:"orderNumber"`
	FrontSuspensionType string     `json:"frontSuspensionType,omitempty"`
	RearSuspensionType  string     `json:"rearSuspensionType,omitempty"`
	Status              string     `json:"status"` // pending, in_progress, completed
	Created             time.Time  `json:"created"`
	CompletedAt         *time.Time `json:"completedAt,omitempty"`
}

// CheckRow holds the inspection result for one suspension parameter:
// a state tag per side plus a free-text comment. Rows are addressed
// by position against FrontParams/RearParams.
type CheckRow struct {
	Left    string `json:"left,omitempty"`
	Right   string `json:"right,omitempty"`
	Comment string `json:"comment,omitempty"`
}

// DiagRecord is a completed diagnostic sheet. It duplicates the
// descriptive fields of the order it was filled in for; records are
// matched back to orders by the (client, car, order) tuple, not by a
// stored key.
type DiagRecord struct {
	Date                string     `json:"date"`
	Client              string     `json:"client"`
	Contacts            string     `json:"contacts"`
	Car                 string     `json:"car"`
	VIN                 string     `json:"vin,omitempty"`
	RegNum              string     `json:"regnum,omitempty"`
	Executor            string     `json:"executor"`
	Order               string     `json:"order"`
	FrontSuspensionType string     `json:"frontSuspensionType,omitempty"`
	RearSuspensionType  string     `json:"rearSuspensionType,omitempty"`
	Front               []CheckRow `json:"front"`
	Rear                []CheckRow `json:"rear"`
	Oil                 bool       `json:"oil"`
	Brake               bool       `json:"brake"`
	GUR                 bool       `json:"gur"`
	Antifreeze          bool       `json:"antifreeze"`
	SpecialNotes        string     `json:"special_notes,omitempty"`
	Signature           string     `json:"signature,omitempty"`
	Created             time.Time  `json:"created"`
	Updated             *time.Time `json:"updated,omitempty"`
}

// Status constants
const (
	// Order statuses
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"

	// Inspection state tags (empty string means not inspected)
	StateOK        = "ok"
	StateRecommend = "recommend"
	StateReplace   = "replace"

	// Viewer roles
	RoleManager  = "manager"
	RoleExecutor = "executor"
)

// FrontParams and RearParams are the two fixed ordered parameter
// lists of the diagnostic sheet. The form, the history view and the
// printable sheet all index CheckRow slices by position against these
// lists, so entries must never be reordered in place.
var FrontParams = []string{
	"Передние амортизаторы",
	"Пыльники / отбойники",
	"Опоры амортизаторов",
	"Подшипники амортизаторов",
	"Пружины амортизаторов",
	"Привод / ШРУС / Пыльник",
	"Рулевой наконечник/пыльник",
	"Рулевая тяга/пыльник",
	"Рулевая рейка",
	"Рычаги подвески нижние/верхние",
	"Сайлентблоки перед/задние",
	"Стойки/втулки стабилизатора",
	"Ступичный подшипник",
	"Тормозные диски",
	"Тормозные колодки",
	"Тормозные шланги/трубки",
	"Рем-комплект суппортов/профилактика",
	"Трос ручного тормоза",
	"Шины/колесный диск (состояние)",
	"Шины/колесный диск (соответствие)",
	"Фактическая толщина диска (мм), минимум (мм)",
	"Фактическая толщина колодки (мм), минимум (мм)",
}

var RearParams = []string{
	"Задние амортизаторы",
	"Пыльники / отбойники",
	"Опоры амортизаторов",
	"Пружины / рессоры",
	"Стойки/втулки стабилизатора",
	"Рычаги подвески вверх/низ",
	"Шаровые опоры нижние/верхние",
	"Ступичный подшипник",
	"Сайлентблоки подрамника",
	"Тяги поперечные/продольные",
	"Кардан-вал / крестовины / ШРУС",
	"Тормозные диски/барабаны",
	"Тормозные колодки",
	"Тормозные шланги/трубки",
	"Рем-комплект суппортов/профилактика",
	"Трос ручного тормоза",
	"Шины/колесный диск (состояние)",
	"Шины/колесный диск (соответствие)",
	"Фактическая толщина диска (мм), минимум (мм)",
	"Фактическая толщина колодки (мм), минимум (мм)",
}

// StatusLabel returns a human-readable label for an order status
func StatusLabel(status string) string {
	labels := map[string]string{
		StatusPending:    "⏳ Ожидает",
		StatusInProgress: "🔧 В работе",
		StatusCompleted:  "✅ Завершен",
	}
	if label, ok := labels[status]; ok {
		return label
	}
	return status
}

// StateLabel returns a human-readable label for an inspection state tag
func StateLabel(state string) string {
	labels := map[string]string{
		StateOK:        "ОК",
		StateRecommend: "Рекомендация",
		StateReplace:   "Замена",
	}
	if label, ok := labels[state]; ok {
		return label
	}
	return "—"
}

// Row pairs a parameter name with its inspection result for rendering.
type Row struct {
	Param string
	Check CheckRow
}

// Rows aligns a CheckRow slice with its parameter list. Missing rows
// (records written before a parameter was added) come back empty.
func Rows(params []string, checks []CheckRow) []Row {
	rows := make([]Row, len(params))
	for i, param := range params {
		rows[i].Param = param
		if i < len(checks) {
			rows[i].Check = checks[i]
		}
	}
	return rows
}
