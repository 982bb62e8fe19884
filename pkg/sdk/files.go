package sdk

import (
	"context"
	"io"
)

// UploadJar replaces the server jar. The server stops a running process
// before swapping the file.
func (c *Client) UploadJar(ctx context.Context, filename string, file io.Reader) (*Result, error) {
	return c.upload(ctx, "/api/upload-jar", filename, file)
}

// UploadWorld uploads a zipped world directory.
func (c *Client) UploadWorld(ctx context.Context, filename string, file io.Reader) (*Result, error) {
	return c.upload(ctx, "/api/upload-world", filename, file)
}

func (c *Client) SetWorld(ctx context.Context, world string) (*Result, error) {
	return c.postResult(ctx, "/api/set-world", SetWorldRequest{World: world})
}
