package services

import "strings"

// extensionFromContentType подбирает расширение для ключа объекта.
// Неизвестный тип оставляет ключ без расширения — хранилищу оно не нужно.
func extensionFromContentType(contentType string) string {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	case "video/mp4":
		return ".mp4"
	case "video/quicktime":
		return ".mov"
	case "video/webm":
		return ".webm"
	}
	parts := strings.Split(contentType, "/")
	if len(parts) == 2 && parts[1] != "" && (strings.HasPrefix(parts[0], "image") || strings.HasPrefix(parts[0], "video")) {
		return "." + strings.Split(parts[1], "+")[0]
	}
	return ""
}
