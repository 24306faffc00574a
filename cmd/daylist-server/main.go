// Package main is the entry point for the daylist server.
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"daylist/internal/server"
	"daylist/internal/store"
)

var Version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:     "daylist-server",
		Short:   "Task list server for the daylist CLI",
		Version: Version,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(tokenCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Config holds server configuration loaded from environment.
type Config struct {
	Addr      string
	DBPath    string
	JWTSecret string
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() *Config {
	return &Config{
		Addr:      getEnv("DAYLIST_ADDR", ":8080"),
		DBPath:    getEnv("DAYLIST_DB", "daylist.db"),
		JWTSecret: os.Getenv("DAYLIST_JWT_SECRET"),
	}
}

func serveCmd() *cobra.Command {
	var addr, dbPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := LoadConfig()
			if addr != "" {
				cfg.Addr = addr
			}
			if dbPath != "" {
				cfg.DBPath = dbPath
			}
			if cfg.JWTSecret == "" {
				return fmt.Errorf("DAYLIST_JWT_SECRET must be set")
			}

			st, err := store.Open(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("failed to open store: %w", err)
			}
			defer st.Close()

			srv := server.NewServer(st, []byte(cfg.JWTSecret))
			log.Printf("listening on %s (db: %s)", cfg.Addr, cfg.DBPath)
			return srv.Run(cfg.Addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides DAYLIST_ADDR)")
	cmd.Flags().StringVar(&dbPath, "db", "", "database path (overrides DAYLIST_DB)")

	return cmd
}

func tokenCmd() *cobra.Command {
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token <user-id>",
		Short: "Mint an access token for a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := LoadConfig()
			if cfg.JWTSecret == "" {
				return fmt.Errorf("DAYLIST_JWT_SECRET must be set")
			}

			token, err := server.MintToken(args[0], []byte(cfg.JWTSecret), ttl)
			if err != nil {
				return fmt.Errorf("failed to mint token: %w", err)
			}
			fmt.Println(token)
			return nil
		},
	}

	cmd.Flags().DurationVar(&ttl, "ttl", 90*24*time.Hour, "token lifetime")

	return cmd
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
