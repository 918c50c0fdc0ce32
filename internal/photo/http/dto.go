package http

import (
	"time"

	"github.com/tidyops/dispatch-backend/internal/photo"
)

type PhotoResponse struct {
	ID           string    `json:"id"`
	BookingID    string    `json:"booking_id"`
	UploaderID   string    `json:"uploader_id"`
	Filename     string    `json:"filename"`
	ContentType  string    `json:"content_type"`
	Size         int64     `json:"size"`
	URL          string    `json:"url"`
	ThumbnailURL *string   `json:"thumbnail_url"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewResponse(p *photo.Photo) PhotoResponse {
	var thumbURL *string
	if p.ThumbnailPath != nil {
		t := photo.ThumbnailURL(p.ID)
		thumbURL = &t
	}

	return PhotoResponse{
		ID:           p.ID,
		BookingID:    p.BookingID,
		UploaderID:   p.UploaderID,
		Filename:     p.Filename,
		ContentType:  p.ContentType,
		Size:         p.Size,
		URL:          photo.PhotoURL(p.ID),
		ThumbnailURL: thumbURL,
		CreatedAt:    p.CreatedAt,
	}
}
