package api

import (
	"context"
	"fmt"
)

// applicationName identifies this client to the identity endpoint.
const applicationName = "jrss-console"

// loggedInOptions carries the extra headers the identity endpoints expect.
func (c *Client) loggedInOptions() requestOptions {
	return requestOptions{
		skipLoader: true,
		extraHeaders: map[string]string{
			"application-name": applicationName,
		},
	}
}

// GetAuthorities fetches the fine-grained action permissions of the
// logged-in user (identified by the email header).
func (c *Client) GetAuthorities(ctx context.Context) ([]string, error) {
	var out []string
	if err := c.get(ctx, "/users/logged-in/authorities", nil, &out, c.loggedInOptions()); err != nil {
		return nil, fmt.Errorf("failed to fetch authorities: %w", err)
	}
	return out, nil
}

// GetRoles fetches the coarse roles of the logged-in user.
func (c *Client) GetRoles(ctx context.Context) ([]string, error) {
	var out []string
	if err := c.get(ctx, "/users/logged-in/roles", nil, &out, c.loggedInOptions()); err != nil {
		return nil, fmt.Errorf("failed to fetch roles: %w", err)
	}
	return out, nil
}
