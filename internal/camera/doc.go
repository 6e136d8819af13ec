// Package camera manages owner-scoped camera resources.
//
// The ownership gate is centralised in the repository: every query
// filters on owner_id, so a handler physically cannot fetch or mutate
// another user's camera. Missing and not-owned collapse into one
// ErrCameraNotFound, keeping camera IDs unenumerable.
package camera
