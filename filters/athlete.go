package filters

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// AthleteFilter — предикаты поиска атлетов. Вычисляются на стороне БД
// (население атлетов не ограничено), парсятся здесь из query-параметров.
type AthleteFilter struct {
	Name     string
	Location string
	Age      *int
	Sport    string
	Gender   string
}

func (f AthleteFilter) IsZero() bool {
	return f.Name == "" && f.Location == "" && f.Age == nil && f.Sport == "" && f.Gender == ""
}

// ParseAthleteFilter разбирает name, location, age, sport, gender.
func ParseAthleteFilter(values url.Values) (AthleteFilter, error) {
	f := AthleteFilter{
		Name:     strings.TrimSpace(values.Get("name")),
		Location: strings.TrimSpace(values.Get("location")),
		Sport:    strings.TrimSpace(values.Get("sport")),
		Gender:   strings.TrimSpace(values.Get("gender")),
	}

	if raw := values.Get("age"); raw != "" {
		age, err := strconv.Atoi(raw)
		if err != nil {
			return f, fmt.Errorf("invalid age: %w", err)
		}
		if age <= 0 {
			return f, fmt.Errorf("invalid age value: %d", age)
		}
		f.Age = &age
	}

	return f, nil
}
