package appwrite

import (
	"context"
	"fmt"
)

// Session mirrors the record returned when an email session is created.
type Session struct {
	ID     string `json:"$id"`
	UserID string `json:"userId"`
	Expire string `json:"expire"`
}

// User mirrors the account record for the signed-in user.
type User struct {
	ID    string `json:"$id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// CreateEmailSession signs in with email and password. The session cookie is
// retained by the client's cookie jar, so subsequent calls run as this user.
func (c *Client) CreateEmailSession(ctx context.Context, email, password string) (Session, error) {
	if email == "" || password == "" {
		return Session{}, fmt.Errorf("email and password are required")
	}
	rel := c.endpointURL("/account/sessions/email", nil)

	payload := map[string]any{"email": email, "password": password}
	var session Session
	if err := c.doJSON(ctx, "POST", rel, payload, &session); err != nil {
		return Session{}, err
	}
	return session, nil
}

// CurrentUser returns the account behind the current session.
func (c *Client) CurrentUser(ctx context.Context) (User, error) {
	rel := c.endpointURL("/account", nil)

	var user User
	if err := c.do(ctx, "GET", rel, nil, "", &user); err != nil {
		return User{}, err
	}
	return user, nil
}

// DeleteSession signs out by destroying the current session.
func (c *Client) DeleteSession(ctx context.Context) error {
	rel := c.endpointURL("/account/sessions/current", nil)
	return c.do(ctx, "DELETE", rel, nil, "", nil)
}
