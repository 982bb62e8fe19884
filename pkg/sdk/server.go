package sdk

import "context"

func (c *Client) Status(ctx context.Context) (*Status, error) {
	var status Status
	err := c.get(ctx, "/api/status", &status)
	if err != nil {
		return nil, err
	}
	return &status, nil
}

func (c *Client) Health(ctx context.Context) (*Health, error) {
	var payload struct {
		Health Health `json:"health"`
	}
	if err := c.get(ctx, "/api/health", &payload); err != nil {
		return nil, err
	}
	return &payload.Health, nil
}

func (c *Client) Console(ctx context.Context) ([]string, error) {
	var console Console
	if err := c.get(ctx, "/api/console", &console); err != nil {
		return nil, err
	}
	return console.Output, nil
}

func (c *Client) SendCommand(ctx context.Context, command string) (*Result, error) {
	return c.postResult(ctx, "/api/command", CommandRequest{Command: command})
}

func (c *Client) StartServer(ctx context.Context) (*Result, error) {
	return c.postResult(ctx, "/api/start", nil)
}

func (c *Client) StopServer(ctx context.Context) (*Result, error) {
	return c.postResult(ctx, "/api/stop", nil)
}

func (c *Client) RestartServer(ctx context.Context) (*Result, error) {
	return c.postResult(ctx, "/api/restart", nil)
}

func (c *Client) Properties(ctx context.Context) (*Properties, error) {
	var props Properties
	if err := c.get(ctx, "/api/properties", &props); err != nil {
		return nil, err
	}
	return &props, nil
}

func (c *Client) SaveProperties(ctx context.Context, content string) (*Result, error) {
	return c.postResult(ctx, "/api/properties", PropertiesRequest{Content: content})
}
