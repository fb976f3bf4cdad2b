// Package auth provides the session credential consumed by the batch
// client and the OAuth2 flow that obtains it.
package auth

// Session is the authenticated state handed to the batch submission call.
// The core treats AccessToken as an opaque credential.
type Session struct {
	AccessToken   string
	Authenticated bool
}

// NewSession wraps a raw access token in a session.
func NewSession(token string) Session {
	return Session{AccessToken: token, Authenticated: token != ""}
}

// Valid reports whether the session can be used for a submission.
func (s Session) Valid() bool {
	return s.Authenticated && s.AccessToken != ""
}
