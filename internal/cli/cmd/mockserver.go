package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"mcdash/internal/logging"
	"mcdash/internal/mockapi"
)

var (
	mockListen   string
	mockUser     string
	mockPassword string
	mockJar      bool
	mockWorlds   []string
	mockLogLevel string
)

var mockServerCmd = &cobra.Command{
	Use:   "mock-server",
	Short: "Serve an in-memory server manager API for trying the dashboard",
	Args:  cobra.NoArgs,
	// No config or session is needed to serve.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		if mockPassword == "" {
			mockPassword = os.Getenv(passwordEnv)
		}
		if mockUser == "" || mockPassword == "" {
			usageError("--user and --password (or %s) are required", passwordEnv)
		}

		log, err := logging.New(os.Stderr, mockLogLevel)
		if err != nil {
			usageError("%v", err)
		}

		opts := []mockapi.Option{
			mockapi.WithUser(mockUser, mockPassword),
			mockapi.WithLogger(log),
			mockapi.WithWorlds(mockWorlds...),
		}
		if mockJar {
			opts = append(opts, mockapi.WithJar())
		}

		srv, err := mockapi.New(opts...)
		if err != nil {
			log.Fatalf("Error creating mock server: %v", err)
		}
		if err := srv.ListenAndServe(mockListen); err != nil {
			log.Fatalf("API Error: %v", err)
		}
	},
}

func init() {
	mockServerCmd.Flags().StringVar(&mockListen, "listen", "127.0.0.1:5000", "address to listen on")
	mockServerCmd.Flags().StringVarP(&mockUser, "user", "u", "admin", "username that can log in")
	mockServerCmd.Flags().StringVarP(&mockPassword, "password", "p", "", "password for --user")
	mockServerCmd.Flags().BoolVar(&mockJar, "jar", false, "start with a server jar already uploaded")
	mockServerCmd.Flags().StringSliceVar(&mockWorlds, "world", nil, "preload an uploaded world (repeatable)")
	mockServerCmd.Flags().StringVar(&mockLogLevel, "log-level", "info", "log level")
	RootCmd.AddCommand(mockServerCmd)
}
