// Package filters — stateless предикаты над записями каталога и леджера.
// Независимые поля фильтра компонуются через AND; пустое поле всегда истинно.
package filters

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sportsbridge/platform/models"
)

// DonationFilter — клиентская фильтрация уже загруженного среза истории
// донора: история на донора ограничена и дёшево забирается целиком.
type DonationFilter struct {
	StartDate   *time.Time
	EndDate     *time.Time
	MinAmount   *float64
	MaxAmount   *float64
	AthleteName string
}

// IsZero сообщает, что ни один предикат не активен (фильтр-тождество).
func (f DonationFilter) IsZero() bool {
	return f.StartDate == nil && f.EndDate == nil && f.MinAmount == nil && f.MaxAmount == nil && f.AthleteName == ""
}

// Match проверяет одну запись против всех активных предикатов.
// Границы дат и сумм включительные. Имя атлета сравнивается как подстрока без
// учёта регистра; отсутствующее имя проваливает любой непустой фильтр по
// имени, не вызывая паники.
func (f DonationFilter) Match(d *models.Donation) bool {
	if d == nil {
		return false
	}
	if f.StartDate != nil && d.CreatedAt.Before(*f.StartDate) {
		return false
	}
	if f.EndDate != nil && d.CreatedAt.After(*f.EndDate) {
		return false
	}
	if f.MinAmount != nil && d.Amount < *f.MinAmount {
		return false
	}
	if f.MaxAmount != nil && d.Amount > *f.MaxAmount {
		return false
	}
	if f.AthleteName != "" {
		if d.Athlete == nil {
			return false
		}
		if !strings.Contains(strings.ToLower(d.Athlete.FullName), strings.ToLower(f.AthleteName)) {
			return false
		}
	}
	return true
}

// Apply возвращает подмножество записей, удовлетворяющих всем активным
// предикатам. Пустой фильтр возвращает вход без изменений.
func (f DonationFilter) Apply(donations []*models.Donation) []*models.Donation {
	if f.IsZero() {
		return donations
	}
	filtered := make([]*models.Donation, 0, len(donations))
	for _, d := range donations {
		if f.Match(d) {
			filtered = append(filtered, d)
		}
	}
	return filtered
}

// ParseDonationFilter разбирает предикаты из query-параметров
// (startDate, endDate, minAmount, maxAmount, athleteName).
func ParseDonationFilter(values url.Values) (DonationFilter, error) {
	var f DonationFilter

	if raw := values.Get("startDate"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			return f, fmt.Errorf("invalid startDate: %w", err)
		}
		f.StartDate = &t
	}
	if raw := values.Get("endDate"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			return f, fmt.Errorf("invalid endDate: %w", err)
		}
		// Верхняя граница включительная: берём конец суток.
		t = t.Add(24*time.Hour - time.Nanosecond)
		f.EndDate = &t
	}
	if raw := values.Get("minAmount"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return f, fmt.Errorf("invalid minAmount: %w", err)
		}
		f.MinAmount = &v
	}
	if raw := values.Get("maxAmount"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return f, fmt.Errorf("invalid maxAmount: %w", err)
		}
		f.MaxAmount = &v
	}
	f.AthleteName = strings.TrimSpace(values.Get("athleteName"))

	return f, nil
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}
