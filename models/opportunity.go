package models

import "time"

// OpportunityType — тег варианта возможности. Общие операции (листинг, поиск
// по id) переключаются по тегу явно, без иерархии типов.
type OpportunityType string

const (
	OpportunityEvent       OpportunityType = "event"
	OpportunitySponsorship OpportunityType = "sponsorship"
	OpportunityTravel      OpportunityType = "travel"
)

// ParseOpportunityType принимает тег из URL ("event", "sponsorship", "travel").
func ParseOpportunityType(s string) (OpportunityType, bool) {
	switch OpportunityType(s) {
	case OpportunityEvent, OpportunitySponsorship, OpportunityTravel:
		return OpportunityType(s), true
	default:
		return "", false
	}
}

// Label возвращает человекочитаемую метку типа для текстов по умолчанию.
func (t OpportunityType) Label() string {
	return string(t)
}

type Location struct {
	City  string `json:"city"`
	State string `json:"state"`
}

type Event struct {
	ID             int       `json:"id" db:"id"`
	OrganizationID int       `json:"organization_id" db:"organization_id"`
	Title          string    `json:"title" db:"title"`
	Description    string    `json:"description" db:"description"`
	Date           time.Time `json:"date" db:"date"`
	Location       Location  `json:"location"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

type Sponsorship struct {
	ID             int       `json:"id" db:"id"`
	OrganizationID int       `json:"organization_id" db:"organization_id"`
	Title          string    `json:"title" db:"title"`
	Description    string    `json:"description" db:"description"`
	Amount         float64   `json:"amount" db:"amount"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

type AmountRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type TravelSupport struct {
	ID             int         `json:"id" db:"id"`
	OrganizationID int         `json:"organization_id" db:"organization_id"`
	Title          string      `json:"title" db:"title"`
	Details        string      `json:"details" db:"details"`
	CoverageType   string      `json:"coverage_type" db:"coverage_type"`
	AmountRange    AmountRange `json:"amount_range"`
	ValidTill      time.Time   `json:"valid_till" db:"valid_till"`
	CreatedAt      time.Time   `json:"created_at" db:"created_at"`
}

// OpportunitySummary — денормализованное представление возможности для
// обогащения заявок на чтении. Не хранится.
type OpportunitySummary struct {
	Type           OpportunityType `json:"type"`
	ID             int             `json:"id"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	OrganizationID int             `json:"organization_id"`
}
