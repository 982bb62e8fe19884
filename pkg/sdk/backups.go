package sdk

import "context"

func (c *Client) ListBackups(ctx context.Context) ([]Backup, error) {
	var payload struct {
		Backups []Backup `json:"backups"`
	}
	if err := c.get(ctx, "/api/backups", &payload); err != nil {
		return nil, err
	}
	return payload.Backups, nil
}

func (c *Client) CreateBackup(ctx context.Context) (*Result, error) {
	return c.postResult(ctx, "/api/backup", nil)
}
