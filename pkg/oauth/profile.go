package oauth

import "encoding/json"

// Profile is the identity record returned by Google.
// It is handed to the verify callback without modification.
type Profile struct {
	Provider      string
	ID            string
	Email         string
	Name          string
	GivenName     string
	FamilyName    string
	Picture       string
	Locale        string
	HostedDomain  string          // Workspace domain ("hd"), empty for consumer accounts
	Raw           json.RawMessage // Provider JSON as received
	VerifiedEmail bool
}
