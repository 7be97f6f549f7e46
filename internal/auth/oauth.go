package auth

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
)

// Endpoint is ClickUp's OAuth2 endpoint pair. ClickUp access tokens do
// not expire and no refresh token is issued, so the exchange result is
// stored as a plain string.
var Endpoint = oauth2.Endpoint{
	AuthURL:  "https://app.clickup.com/api",
	TokenURL: "https://api.clickup.com/api/v2/oauth/token",
}

func oauthConfig(clientID, clientSecret, redirectURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     Endpoint,
		RedirectURL:  redirectURL,
	}
}

// AuthCodeURL returns the browser URL where the user approves access
// for the given OAuth app.
func AuthCodeURL(clientID, redirectURL string) string {
	return oauthConfig(clientID, "", redirectURL).AuthCodeURL("state")
}

// Exchange trades an authorization code for an access token.
func Exchange(ctx context.Context, clientID, clientSecret, code string) (string, error) {
	conf := oauthConfig(clientID, clientSecret, "")

	t, err := conf.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("failed to exchange auth code: %w", err)
	}
	if t.AccessToken == "" {
		return "", fmt.Errorf("token endpoint returned an empty access token")
	}
	return t.AccessToken, nil
}

// ExchangeAndSave exchanges the code and caches the resulting token.
func ExchangeAndSave(ctx context.Context, clientID, clientSecret, code string) error {
	token, err := Exchange(ctx, clientID, clientSecret, code)
	if err != nil {
		return err
	}
	return SaveToken(token)
}
