package domain

// SessionID identifies one live transport connection.
type SessionID string
