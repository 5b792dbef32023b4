package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	config "github.com/smbsocial/postpilot/configs"
	"github.com/smbsocial/postpilot/internal/models"
	"golang.org/x/oauth2"
)

// GoogleBusinessAdapter creates a Local Post on a Business Profile location.
// The stored credential holds a long-lived refresh token, not a usable access
// token: each publish exchanges it for a short-lived access token, uses that
// once, and discards it. The stored record is never rewritten here.
type GoogleBusinessAdapter struct {
	baseURL string
	oauth   *oauth2.Config
	client  *http.Client
}

func NewGoogleBusinessAdapter(cfg config.Config, client *http.Client) *GoogleBusinessAdapter {
	return &GoogleBusinessAdapter{
		baseURL: cfg.GoogleBusinessURL,
		oauth: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			Endpoint:     oauth2.Endpoint{TokenURL: cfg.GoogleTokenURL},
		},
		client: client,
	}
}

func (a *GoogleBusinessAdapter) Publish(ctx context.Context, post *models.Post, cred Credential) (string, error) {
	accessToken, err := a.exchangeRefreshToken(ctx, cred.RefreshToken)
	if err != nil {
		return "", newError(models.PlatformGoogleBusiness, "token exchange: %v", err)
	}

	localPost := map[string]any{
		"languageCode": "en-US",
		"summary":      post.PostText,
		"topicType":    "STANDARD",
	}
	if post.ImageURL != "" {
		localPost["media"] = []map[string]string{
			{"mediaFormat": "PHOTO", "sourceUrl": post.ImageURL},
		}
	}

	payload, err := json.Marshal(localPost)
	if err != nil {
		return "", newError(models.PlatformGoogleBusiness, "error marshalling payload: %v", err)
	}

	// AccountID is the full location name, e.g. "accounts/123/locations/456".
	endpoint := a.baseURL + "/" + cred.AccountID + "/localPosts"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", newError(models.PlatformGoogleBusiness, "error creating request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := a.client.Do(req)
	if err != nil {
		return "", newError(models.PlatformGoogleBusiness, "%v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", newError(models.PlatformGoogleBusiness, "error reading response body: %v", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", newError(models.PlatformGoogleBusiness, "unexpected status %d: %s", resp.StatusCode, truncate(string(body), 500))
	}

	var result struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", newError(models.PlatformGoogleBusiness, "error parsing response: %v", err)
	}
	if result.Name == "" {
		return "", newError(models.PlatformGoogleBusiness, "response missing local post name")
	}
	return result.Name, nil
}

func (a *GoogleBusinessAdapter) exchangeRefreshToken(ctx context.Context, refreshToken string) (string, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, a.client)
	source := a.oauth.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})

	token, err := source.Token()
	if err != nil {
		return "", err
	}
	return token.AccessToken, nil
}
