package domain

// Identity is the caller recovered from a verified token.
type Identity struct {
	UserID int64
	Role   Role
}
