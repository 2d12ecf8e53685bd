package shares

// ValidationError means the input shape was malformed: unknown item type,
// an item the caller does not own, or a bad access level.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NotFoundError means no share link exists for the given share id
type NotFoundError struct {
	ShareID string
}

func (e *NotFoundError) Error() string {
	return "share link not found: " + e.ShareID
}

// ForbiddenError means the caller is not the owner of the share link
type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string {
	return e.Message
}

// ConflictError means the operation is not valid in the link's current
// state, e.g. updating a revoked link.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}
