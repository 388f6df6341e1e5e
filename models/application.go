package models

import "time"

// ApplicationStatus представляет статусы заявки, соответствующие ENUM в БД.
// pending — начальный; accepted и rejected — терминальные.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationAccepted ApplicationStatus = "accepted"
	ApplicationRejected ApplicationStatus = "rejected"
)

// IsTerminal сообщает, что по заявке уже принято решение.
func (s ApplicationStatus) IsTerminal() bool {
	return s == ApplicationAccepted || s == ApplicationRejected
}

// DisplayStatus — проекция статуса для атлета: accepted показывается как
// "approved". Хранимое значение не меняется.
func (s ApplicationStatus) DisplayStatus() string {
	if s == ApplicationAccepted {
		return "approved"
	}
	return string(s)
}

// Application — заявка атлета на возможность, предмет рассмотрения организации.
type Application struct {
	ID              int               `json:"id" db:"id"`
	AthleteID       int               `json:"athlete_id" db:"athlete_id"`
	OpportunityType OpportunityType   `json:"opportunity_type" db:"opportunity_type"`
	OpportunityID   int               `json:"opportunity_id" db:"opportunity_id"`
	OrganizationID  int               `json:"organization_id" db:"organization_id"`
	Message         string            `json:"message" db:"message"`
	Requirements    string            `json:"requirements" db:"requirements"`
	Status          ApplicationStatus `json:"status" db:"status"`
	CreatedAt       time.Time         `json:"created_at" db:"created_at"`

	// Опциональные связанные сущности (заполняются на чтении, не мапятся)
	Opportunity *OpportunitySummary `json:"opportunity,omitempty" db:"-"`
	Athlete     *AthleteSummary     `json:"athlete,omitempty" db:"-"`
}
