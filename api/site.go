package api

import (
	"context"
	"net/http"

	"github.com/lseungyeop/portfolio-admin/models"
)

// GetConfig fetches the site-wide presentation settings. Public route;
// called at every page load.
func (c *Client) GetConfig(ctx context.Context) (models.SiteConfig, error) {
	var cfg models.SiteConfig
	err := c.do(ctx, http.MethodGet, "/config", nil, &cfg)
	return cfg, err
}

// PutConfig replaces the site settings wholesale. Admin route.
func (c *Client) PutConfig(ctx context.Context, cfg models.SiteConfig) error {
	return c.do(ctx, http.MethodPut, "/admin/config", cfg, nil)
}

// Verify proves the stored credential against the server. Any 401/403 here
// flows through the same deauth path as every other request.
func (c *Client) Verify(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/admin/verify", nil, nil)
}

// SendContact submits a visitor contact message. Public route.
func (c *Client) SendContact(ctx context.Context, contact models.ContactRequest) error {
	return c.do(ctx, http.MethodPost, "/contacts", contact, nil)
}
