package ui

import (
	"context"
	"io"

	"mcdash/pkg/sdk"
)

// Client is the part of *sdk.Client the dashboard uses.
type Client interface {
	BaseURL() string

	Status(ctx context.Context) (*sdk.Status, error)
	Health(ctx context.Context) (*sdk.Health, error)
	Console(ctx context.Context) ([]string, error)
	Properties(ctx context.Context) (*sdk.Properties, error)
	ListBackups(ctx context.Context) ([]sdk.Backup, error)
	ListUsers(ctx context.Context) (*sdk.Users, error)

	SendCommand(ctx context.Context, command string) (*sdk.Result, error)
	StartServer(ctx context.Context) (*sdk.Result, error)
	StopServer(ctx context.Context) (*sdk.Result, error)
	RestartServer(ctx context.Context) (*sdk.Result, error)
	SaveProperties(ctx context.Context, content string) (*sdk.Result, error)
	UploadJar(ctx context.Context, filename string, file io.Reader) (*sdk.Result, error)
	UploadWorld(ctx context.Context, filename string, file io.Reader) (*sdk.Result, error)
	SetWorld(ctx context.Context, world string) (*sdk.Result, error)
	CreateBackup(ctx context.Context) (*sdk.Result, error)
	AddUser(ctx context.Context, username, password string) (*sdk.Result, error)
	DeleteUser(ctx context.Context, username string) (*sdk.Result, error)
	ChangePassword(ctx context.Context, current, next string) (*sdk.Result, error)

	Login(ctx context.Context, username, password string) error
	Logout(ctx context.Context) error
}

var _ Client = (*sdk.Client)(nil)
