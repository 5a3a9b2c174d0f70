package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/curzel-it/nokemon-sub001/internal/engine"
	"github.com/curzel-it/nokemon-sub001/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own game with a world picker. Progress of
remote players lives in memory and ends with the session.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.nokemon/host_key

Examples:
  nokemon serve                           # Listen on :23235 with auto-generated key
  nokemon serve --ssh :2222               # Listen on port 2222
  nokemon serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23235`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23235", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, closer, err := newLogger(cfg, false)
	if err != nil {
		return err
	}
	defer closer.Close()

	c, err := loadContent(cfg)
	if err != nil {
		return err
	}
	list, err := c.loader.LoadAll()
	if err != nil {
		return err
	}

	newSessionEngine := func(s tui.Session) (*engine.Engine, error) {
		return newEngine(cfg, c, nil, logger.With("session", s.ID, "user", s.User))
	}

	serverCfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		TickRate:    cfg.Simulation.TickRate,
	}
	server, err := tui.NewSSHServer(serverCfg, newSessionEngine, list, logger.WithPrefix("nokemon-ssh"))
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Starting nokemon SSH server on %s\n", serverCfg.Address)
	fmt.Fprintln(out, "Press Ctrl+C to stop")

	return server.ListenAndServe()
}
