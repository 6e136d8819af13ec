package camera

import "errors"

// ErrCameraNotFound covers both a genuinely absent camera and one
// owned by someone else. The two cases are deliberately merged so the
// API cannot leak whether a camera ID exists.
var ErrCameraNotFound = errors.New("camera not found")
