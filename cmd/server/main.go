package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/omikunle/config"
	"github.com/shashiranjanraj/omikunle/database/seeders"
	"github.com/shashiranjanraj/omikunle/internal/server"
	"github.com/shashiranjanraj/omikunle/pkg/database"
)

func main() {
	root := &cobra.Command{
		Use:          "omikunle",
		Short:        "E-commerce API server",
		SilenceUsage: true,
	}

	root.AddCommand(serveCmd(), seedCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if port != "" {
				cfg.AppPort = port
			}
			return server.Run(cfg)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "override the listen port")
	return cmd
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed the database with development fixtures",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			db, err := database.Connect(cfg)
			if err != nil {
				return err
			}
			defer db.Close(context.Background())

			return seeders.Run(cmd.Context(), db)
		},
	}
}
