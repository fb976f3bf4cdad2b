package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"golang.org/x/oauth2"
)

// Config drives the authorization-code flow against the storage provider.
// PKCE (S256) is always used; the provider requires it for browser-
// initiated flows and it costs nothing elsewhere.
type Config struct {
	oauth oauth2.Config
}

// NewConfig builds an OAuth2 config for the given client registration.
func NewConfig(clientID, clientSecret, redirectURL, authURL, tokenURL string) *Config {
	return &Config{
		oauth: oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint: oauth2.Endpoint{
				AuthURL:  authURL,
				TokenURL: tokenURL,
			},
		},
	}
}

// AuthorizeURL returns the URL to send the user to, plus the state and
// PKCE verifier the caller must keep for the matching Exchange call.
func (c *Config) AuthorizeURL() (url, state, verifier string, err error) {
	state, err = randomState()
	if err != nil {
		return "", "", "", err
	}
	verifier = oauth2.GenerateVerifier()
	url = c.oauth.AuthCodeURL(state, oauth2.S256ChallengeOption(verifier))
	return url, state, verifier, nil
}

// Exchange trades an authorization code for a session.
func (c *Config) Exchange(ctx context.Context, code, verifier string) (Session, error) {
	tok, err := c.oauth.Exchange(ctx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		return Session{}, fmt.Errorf("exchange authorization code: %w", err)
	}
	return NewSession(tok.AccessToken), nil
}

func randomState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate state: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
