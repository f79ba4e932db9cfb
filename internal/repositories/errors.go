package repositories

import "errors"

// Sentinel errors returned by repositories. Handlers map these to HTTP
// statuses; everything else is treated as a server fault.
var (
	ErrNotFound      = errors.New("not found")
	ErrDuplicateSlug = errors.New("slug already exists")
)
