package oauth

// GoogleConfig holds the client credentials registered with Google.
type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}
