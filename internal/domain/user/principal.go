package user

// Principal is the authenticated caller resolved from a bearer token.
type Principal struct {
	UserID   string
	Username string
	Email    string
	IsAdmin  bool
}

// DisplayName prefers the username and falls back to the email.
func (p Principal) DisplayName() string {
	if p.Username != "" {
		return p.Username
	}
	if p.Email != "" {
		return p.Email
	}
	return p.UserID
}
