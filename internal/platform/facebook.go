package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	config "github.com/smbsocial/postpilot/configs"
	"github.com/smbsocial/postpilot/internal/models"
)

// FacebookAdapter posts to a page feed, or to the page's photos edge when the
// post carries an image.
type FacebookAdapter struct {
	baseURL string
	client  *http.Client
}

func NewFacebookAdapter(cfg config.Config, client *http.Client) *FacebookAdapter {
	return &FacebookAdapter{
		baseURL: cfg.GraphBaseURL,
		client:  client,
	}
}

func (a *FacebookAdapter) Publish(ctx context.Context, post *models.Post, cred Credential) (string, error) {
	var endpoint string
	data := url.Values{}
	data.Set("access_token", cred.AccessToken)

	if post.ImageURL != "" {
		endpoint = a.baseURL + "/" + cred.AccountID + "/photos"
		data.Set("url", post.ImageURL)
		data.Set("caption", post.PostText)
	} else {
		endpoint = a.baseURL + "/" + cred.AccountID + "/feed"
		data.Set("message", post.PostText)
	}

	body, err := postForm(ctx, a.client, endpoint, data)
	if err != nil {
		return "", newError(models.PlatformFacebook, "%v", err)
	}

	var result struct {
		PostID string `json:"post_id"`
		ID     string `json:"id"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", newError(models.PlatformFacebook, "error parsing response: %v", err)
	}

	// Photo posts return post_id alongside the photo's own id; prefer it.
	// A 2xx response carrying neither is a protocol error, not a success.
	if result.PostID != "" {
		return result.PostID, nil
	}
	if result.ID != "" {
		return result.ID, nil
	}
	return "", newError(models.PlatformFacebook, "response missing post id")
}

// postForm issues a form-encoded POST and returns the body of a 2xx response.
// Non-2xx responses surface the (truncated) upstream body text.
func postForm(ctx context.Context, client *http.Client, endpoint string, data url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &statusError{Code: resp.StatusCode, Body: truncate(string(body), 500)}
	}
	return body, nil
}

type statusError struct {
	Code int
	Body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Body)
}

func truncate(s string, limit int) string {
	if len(s) > limit {
		return s[:limit]
	}
	return s
}
