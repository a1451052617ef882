package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"carelink/internal/app/server"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("could not load .env file", "err", err)
	}

	root := &cobra.Command{
		Use:   "carelink",
		Short: "Home-care agency scheduling service",
	}

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Run: func(cmd *cobra.Command, args []string) {
			server.Run()
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		Run: func(cmd *cobra.Command, args []string) {
			server.MigrateOnly()
		},
	})

	// Plain `carelink` serves, matching how the container entrypoint
	// invokes the binary.
	if len(os.Args) == 1 {
		server.Run()
		return
	}

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
