package auth

// UserInfo is the profile the backend returns alongside the session
// token. Immutable for the lifetime of the session.
type UserInfo struct {
	ID       int64  `json:"id"`
	GoogleID string `json:"google_id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
}

// Session holds the bearer credential issued by the backend after a
// successful code exchange. The zero value is an unauthenticated
// session. Sessions are not persisted across reloads; signing in again
// rides the provider's own session.
type Session struct {
	Token string
	User  *UserInfo
}

func (s Session) IsAuthenticated() bool {
	return s.Token != ""
}
