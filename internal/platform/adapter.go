// Package platform implements the publish contract for each supported social
// platform. The set of adapters is closed: facebook, instagram and
// google_business. Adding a platform means adding an adapter type here and
// registering it, not adding a string key somewhere else.
package platform

import (
	"context"
	"fmt"
	"net/http"
	"time"

	config "github.com/smbsocial/postpilot/configs"
	"github.com/smbsocial/postpilot/internal/models"
)

// Credential is the decrypted, read-only view of a stored connection handed
// to an adapter for the duration of one publish call. Nothing an adapter does
// with it is written back to the store.
type Credential struct {
	AccountID    string
	AccessToken  string
	RefreshToken string
}

// Adapter publishes one post and returns the platform-assigned external id.
// Any non-success outcome is reported as *Error.
type Adapter interface {
	Publish(ctx context.Context, post *models.Post, cred Credential) (string, error)
}

// Error carries the upstream error text for a failed publish attempt.
type Error struct {
	Platform string
	Message  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Platform, e.Message)
}

func newError(platform, format string, args ...any) *Error {
	return &Error{Platform: platform, Message: fmt.Sprintf(format, args...)}
}

// Registry maps platform names to their adapters.
type Registry struct {
	adapters map[string]Adapter
}

// NewRegistry wires the three supported adapters against the configured
// endpoint base URLs.
func NewRegistry(cfg config.Config) *Registry {
	client := &http.Client{Timeout: 30 * time.Second}
	return &Registry{
		adapters: map[string]Adapter{
			models.PlatformFacebook:       NewFacebookAdapter(cfg, client),
			models.PlatformInstagram:      NewInstagramAdapter(cfg, client),
			models.PlatformGoogleBusiness: NewGoogleBusinessAdapter(cfg, client),
		},
	}
}

func (r *Registry) ForPlatform(name string) (Adapter, bool) {
	adapter, ok := r.adapters[name]
	return adapter, ok
}
