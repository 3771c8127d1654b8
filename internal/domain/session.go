package domain

// Session holds the credentials and profile of the signed-in user
type Session struct {
	AccessToken  string
	RefreshToken string
	Username     string
	Email        string
	AvatarURL    string
}

// Valid reports whether the session can authenticate requests
func (s Session) Valid() bool {
	return s.AccessToken != "" && s.Username != ""
}
