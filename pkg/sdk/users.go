package sdk

import (
	"context"
	"errors"
	"net/url"
)

func (c *Client) ListUsers(ctx context.Context) (*Users, error) {
	var users Users
	if err := c.get(ctx, "/api/users", &users); err != nil {
		return nil, err
	}
	return &users, nil
}

func (c *Client) AddUser(ctx context.Context, username, password string) (*Result, error) {
	return c.postResult(ctx, "/api/users/add", AddUserRequest{Username: username, Password: password})
}

func (c *Client) DeleteUser(ctx context.Context, username string) (*Result, error) {
	return c.postResult(ctx, "/api/users/delete", DeleteUserRequest{Username: username})
}

func (c *Client) ChangePassword(ctx context.Context, current, next string) (*Result, error) {
	return c.postResult(ctx, "/api/change-password", ChangePasswordRequest{
		CurrentPassword: current,
		NewPassword:     next,
	})
}

// Login submits the login form and checks that the session cookie it set is
// accepted by the API.
func (c *Client) Login(ctx context.Context, username, password string) error {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	if err := c.postForm(ctx, "/login", form); err != nil {
		if errors.Is(err, ErrUnauthorized) {
			return ErrInvalidCredentials
		}
		return err
	}

	if _, err := c.Status(ctx); err != nil {
		if errors.Is(err, ErrUnauthorized) {
			return ErrInvalidCredentials
		}
		return err
	}
	return nil
}

// Logout ends the session. Any non-error reply counts as logged out.
func (c *Client) Logout(ctx context.Context) error {
	err := c.postForm(ctx, "/logout", nil)
	if errors.Is(err, ErrUnauthorized) {
		return nil
	}
	return err
}
