package auth

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

// NewOAuthConfigFromEnv builds the authorization code flow against the
// Cognito hosted UI from COGNITO_DOMAIN, COGNITO_CLIENT_ID,
// COGNITO_CLIENT_SECRET and COGNITO_REDIRECT_URL.
func NewOAuthConfigFromEnv() (*oauth2.Config, error) {
	domain := strings.TrimSuffix(os.Getenv("COGNITO_DOMAIN"), "/")
	clientID := os.Getenv("COGNITO_CLIENT_ID")
	if domain == "" || clientID == "" {
		return nil, errors.New("COGNITO_DOMAIN and COGNITO_CLIENT_ID must be set")
	}
	return NewOAuthConfig(domain, clientID, os.Getenv("COGNITO_CLIENT_SECRET"), os.Getenv("COGNITO_REDIRECT_URL")), nil
}

func NewOAuthConfig(domain string, clientID string, clientSecret string, redirectURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Scopes:       []string{"openid", "email", "profile"},
		Endpoint: oauth2.Endpoint{
			AuthURL:  domain + "/oauth2/authorize",
			TokenURL: domain + "/oauth2/token",
		},
	}
}
