package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/sportsbridge/platform/middleware"
	"github.com/sportsbridge/platform/models"
	"github.com/sportsbridge/platform/services"
)

// Лимит multipart-формы для партии вложений.
const maxUploadFormSize = 64 << 20 // 64MB

// MediaHandler обслуживает галерею атлета: пакетную загрузку фото и видео
// и удаление по (id, kind).
type MediaHandler struct {
	mediaService services.MediaService
}

func NewMediaHandler(mediaService services.MediaService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

// Upload — POST /api/athletes/media.
// Multipart-форма с полями "photos" и "videos" (по нескольку файлов в каждом).
// Партия применяется целиком: либо все файлы в галерее, либо ни одного.
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	athleteID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	if err := r.ParseMultipartForm(maxUploadFormSize); err != nil {
		badRequestResponse(w, r, fmt.Errorf("failed to parse multipart form: %w", err))
		return
	}

	var files []services.MediaFile
	var toClose []interface{ Close() error }
	defer func() {
		for _, c := range toClose {
			c.Close()
		}
	}()

	for field, kind := range map[string]models.MediaKind{
		"photos": models.MediaPhoto,
		"videos": models.MediaVideo,
	} {
		if r.MultipartForm == nil {
			break
		}
		for _, header := range r.MultipartForm.File[field] {
			file, err := header.Open()
			if err != nil {
				badRequestResponse(w, r, fmt.Errorf("failed to open uploaded file %q: %w", header.Filename, err))
				return
			}
			toClose = append(toClose, file)

			contentType := header.Header.Get("Content-Type")
			if contentType == "" {
				badRequestResponse(w, r, fmt.Errorf("content-type is required for file %q", header.Filename))
				return
			}

			files = append(files, services.MediaFile{
				Kind:        kind,
				Filename:    header.Filename,
				ContentType: contentType,
				Reader:      file,
			})
		}
	}

	gallery, err := h.mediaService.Upload(r.Context(), athleteID, files)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"gallery": gallery}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Delete — DELETE /api/athletes/media/{mediaID}?kind=photo|video.
func (h *MediaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	athleteID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	mediaID, err := getIDFromURL(r, "mediaID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	rawKind := r.URL.Query().Get("kind")
	if rawKind == "" {
		badRequestResponse(w, r, errors.New("kind query parameter is required"))
		return
	}
	kind, ok := models.ParseMediaKind(rawKind)
	if !ok {
		badRequestResponse(w, r, fmt.Errorf("%w: %q", services.ErrInvalidMediaKind, rawKind))
		return
	}

	gallery, err := h.mediaService.Remove(r.Context(), athleteID, mediaID, kind)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"gallery": gallery}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
