package models

import "time"

// MediaKind — вид вложения в галерее атлета.
type MediaKind string

const (
	MediaPhoto MediaKind = "photo"
	MediaVideo MediaKind = "video"
)

// ParseMediaKind принимает как "photo"/"video", так и множественные формы
// "photos"/"videos", которыми оперирует клиент.
func ParseMediaKind(s string) (MediaKind, bool) {
	switch s {
	case "photo", "photos":
		return MediaPhoto, true
	case "video", "videos":
		return MediaVideo, true
	default:
		return "", false
	}
}

type MediaAsset struct {
	ID        int       `json:"id" db:"id"`
	AthleteID int       `json:"athlete_id" db:"athlete_id"`
	Kind      MediaKind `json:"kind" db:"kind"`
	ObjectKey string    `json:"-" db:"object_key"`
	URL       string    `json:"url" db:"url"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Gallery — авторитетное состояние галереи, возвращаемое каждой мутацией.
type Gallery struct {
	Photos []MediaAsset `json:"photos"`
	Videos []MediaAsset `json:"videos"`
}
