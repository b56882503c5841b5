package bangumi

import (
	"context"
	"net/http"
	"strconv"

	"github.com/anisan-cli/bgmsync/source"
)

// Me returns the account owning the access token.
func (c *Client) Me(ctx context.Context) (*source.User, error) {
	var u user
	if err := c.do(ctx, http.MethodGet, "/v0/me", nil, &u); err != nil {
		return nil, err
	}

	return &source.User{ID: u.ID, Username: u.Username, Nickname: u.Nickname}, nil
}

// owner resolves the collection owner, asking /v0/me once when none was configured.
func (c *Client) owner(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.username != "" {
		return c.username, nil
	}

	me, err := c.Me(ctx)
	if err != nil {
		return "", err
	}

	c.username = me.Username
	if c.username == "" {
		c.username = strconv.Itoa(me.ID)
	}
	return c.username, nil
}
