package models

// SessionState is the client's view of the server session
type SessionState struct {
	Authenticated bool   `json:"authenticated"`
	Token         string `json:"-"`
}
