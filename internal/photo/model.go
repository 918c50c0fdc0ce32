package photo

import (
	"errors"
	"time"
)

var (
	ErrNotFound        = errors.New("photo not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrNotAnImage      = errors.New("uploaded file is not an image")
	ErrTooLarge        = errors.New("uploaded file exceeds the size limit")
	ErrNoThumbnail     = errors.New("thumbnail not available for this photo")
)

// Photo is an image a crew attaches to a visit: before/after shots,
// damage documentation, proof of completion.
type Photo struct {
	ID            string    `json:"id"`
	BookingID     string    `json:"booking_id"`
	UploaderID    string    `json:"uploader_id"`
	Filename      string    `json:"filename"`
	StoragePath   string    `json:"-"` // Internal path
	ThumbnailPath *string   `json:"-"` // Internal path
	ContentType   string    `json:"content_type"`
	Size          int64     `json:"size"`
	CreatedAt     time.Time `json:"created_at"`
}

// PhotoURL returns the public URL for fetching a photo by its ID.
func PhotoURL(id string) string {
	return "/photos/" + id
}

// ThumbnailURL returns the public URL for fetching a photo's thumbnail.
func ThumbnailURL(id string) string {
	return "/photos/" + id + "/thumbnail"
}
