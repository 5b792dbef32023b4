package platform

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	config "github.com/smbsocial/postpilot/configs"
	"github.com/smbsocial/postpilot/internal/models"
)

// InstagramAdapter publishes through the Content Publishing API's mandatory
// two-step protocol: create a media container, then publish it by creation id.
// The API has no text-only post, so a post without an image fails before any
// network call is made.
type InstagramAdapter struct {
	baseURL string
	client  *http.Client
}

func NewInstagramAdapter(cfg config.Config, client *http.Client) *InstagramAdapter {
	return &InstagramAdapter{
		baseURL: cfg.GraphBaseURL,
		client:  client,
	}
}

func (a *InstagramAdapter) Publish(ctx context.Context, post *models.Post, cred Credential) (string, error) {
	if post.ImageURL == "" {
		return "", newError(models.PlatformInstagram, "missing image: instagram posts require an image_url")
	}

	creationID, err := a.createContainer(ctx, post, cred)
	if err != nil {
		return "", err
	}

	return a.publishContainer(ctx, creationID, cred)
}

func (a *InstagramAdapter) createContainer(ctx context.Context, post *models.Post, cred Credential) (string, error) {
	data := url.Values{}
	data.Set("image_url", post.ImageURL)
	data.Set("caption", post.PostText)
	data.Set("access_token", cred.AccessToken)

	body, err := postForm(ctx, a.client, a.baseURL+"/"+cred.AccountID+"/media", data)
	if err != nil {
		return "", newError(models.PlatformInstagram, "media container: %v", err)
	}

	var result struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", newError(models.PlatformInstagram, "media container: error parsing response: %v", err)
	}
	if result.ID == "" {
		return "", newError(models.PlatformInstagram, "media container: response missing creation id")
	}
	return result.ID, nil
}

func (a *InstagramAdapter) publishContainer(ctx context.Context, creationID string, cred Credential) (string, error) {
	data := url.Values{}
	data.Set("creation_id", creationID)
	data.Set("access_token", cred.AccessToken)

	body, err := postForm(ctx, a.client, a.baseURL+"/"+cred.AccountID+"/media_publish", data)
	if err != nil {
		return "", newError(models.PlatformInstagram, "media publish: %v", err)
	}

	var result struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", newError(models.PlatformInstagram, "media publish: error parsing response: %v", err)
	}

	// Some publish responses omit the id; the creation id still identifies
	// the published media.
	if result.ID == "" {
		return creationID, nil
	}
	return result.ID, nil
}
