package models

import "time"

// AthleteProfile — ровно один профиль на аккаунт атлета, редактируется
// целиком владельцем.
type AthleteProfile struct {
	ID             int       `json:"id" db:"id"`
	UserID         int       `json:"user_id" db:"user_id"`
	FullName       string    `json:"full_name" db:"full_name"`
	Age            int       `json:"age" db:"age"`
	Gender         string    `json:"gender" db:"gender"`
	SportsCategory string    `json:"sports_category" db:"sports_category"`
	CurrentLevel   string    `json:"current_level" db:"current_level"`
	City           string    `json:"city" db:"city"`
	State          string    `json:"state" db:"state"`
	Bio            string    `json:"bio" db:"bio"`
	Achievements   string    `json:"achievements" db:"achievements"`
	ContactNumber  string    `json:"contact_number" db:"contact_number"`
	GuardianName   string    `json:"guardian_name" db:"guardian_name"`
	School         string    `json:"school" db:"school"`
	Coach          string    `json:"coach" db:"coach"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`

	// Галерея подгружается отдельно (не мапится)
	Photos []MediaAsset `json:"photos" db:"-"`
	Videos []MediaAsset `json:"videos" db:"-"`
}

// AthleteSummary — краткая карточка атлета для списков и обогащения заявок.
type AthleteSummary struct {
	UserID         int    `json:"user_id"`
	FullName       string `json:"full_name"`
	Age            int    `json:"age"`
	Gender         string `json:"gender"`
	SportsCategory string `json:"sports_category"`
	CurrentLevel   string `json:"current_level"`
	City           string `json:"city"`
	State          string `json:"state"`
}
