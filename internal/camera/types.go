package camera

import (
	"errors"
	"strings"
	"time"
)

const (
	maxNameLength     = 128
	maxLocationLength = 128
	maxURLLength      = 2048
)

// Camera represents an owned monitoring stream. OwnerID is stamped
// server-side on create and never taken from client input.
type Camera struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Name      string    `json:"name"`
	RTSPURL   string    `json:"rtsp_url"`
	Location  string    `json:"location,omitempty"`
	IsEnabled bool      `json:"is_enabled"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Input carries the client-settable camera fields for create and update.
type Input struct {
	Name      string `json:"name"`
	RTSPURL   string `json:"rtsp_url"`
	Location  string `json:"location"`
	IsEnabled *bool  `json:"is_enabled,omitempty"`
}

// Validate checks the input fields, returning a descriptive error for
// the first violation found.
func (in *Input) Validate() error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return errors.New("name is required")
	}
	if len(name) > maxNameLength {
		return errors.New("name exceeds 128 characters")
	}

	url := strings.TrimSpace(in.RTSPURL)
	if url == "" {
		return errors.New("rtsp_url is required")
	}
	if len(url) > maxURLLength {
		return errors.New("rtsp_url exceeds 2048 characters")
	}
	if !strings.HasPrefix(url, "rtsp://") && !strings.HasPrefix(url, "rtsps://") {
		return errors.New("rtsp_url must use the rtsp:// or rtsps:// scheme")
	}

	if len(in.Location) > maxLocationLength {
		return errors.New("location exceeds 128 characters")
	}

	return nil
}
