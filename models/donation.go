package models

import "time"

// DonationStatus: pending до подтверждения оплаты, completed после.
type DonationStatus string

const (
	DonationPending   DonationStatus = "pending"
	DonationCompleted DonationStatus = "completed"
)

// Donation — запись перевода донор → атлет. Сумма и ссылки неизменяемы после
// создания; платёжный коллаборатор обновляет только status и payment_id.
type Donation struct {
	ID        int            `json:"id" db:"id"`
	DonorID   int            `json:"donor_id" db:"donor_id"`
	AthleteID int            `json:"athlete_id" db:"athlete_id"`
	Amount    float64        `json:"amount" db:"amount"`
	Status    DonationStatus `json:"status" db:"status"`
	OrderID   string         `json:"order_id" db:"order_id"`
	PaymentID *string        `json:"payment_id,omitempty" db:"payment_id"`
	CreatedAt time.Time      `json:"created_at" db:"created_at"`

	// Имя атлета-получателя, подгружается join-ом для списка донора
	Athlete *AthleteSummary `json:"athlete,omitempty" db:"-"`
}
