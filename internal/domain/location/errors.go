package location

import "errors"

// Location domain errors
var (
	ErrLocationNotFound   = errors.New("location not found")
	ErrLocationNameExists = errors.New("a location with this name already exists")
	ErrNotAuthorized      = errors.New("not authorized to manage locations")
)
