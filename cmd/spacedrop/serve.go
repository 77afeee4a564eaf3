package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/space-drop/internal/platform/feed"
	"github.com/vovakirdan/space-drop/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagHTTPAddr    string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Space Drop SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with the preset menu.
Runs are stored per-server (all users share the same scoreboard).

With --http, an HTTP server is started alongside it:
  GET /ws?run=<id>       - live run events over a websocket (all runs without ?run)
  GET /api/runs?mode=&limit=
  GET /api/runs/{id}
  GET /api/stats, /api/stats/{mode}
  GET /healthz

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.spacedrop/host_key

Examples:
  spacedrop serve                           # Listen on :23234
  spacedrop serve --ssh :2222               # Listen on port 2222
  spacedrop serve --http :8080              # Also serve the event feed
  spacedrop serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh -t localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", "", "Event feed and API address (disabled if empty)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) error {
	logger, err := newLogger(os.Stderr, "spacedrop")
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var publisher tui.FeedPublisher
	httpErr := make(chan error, 1)
	if flagHTTPAddr != "" {
		hub := feed.NewHub(logger.WithPrefix("feed"))
		go hub.Run(ctx)
		publisher = hub

		var runs feed.RunStore
		if store != nil {
			runs = store
		}
		httpSrv := &http.Server{
			Addr:              flagHTTPAddr,
			Handler:           feed.NewServer(hub, runs, logger.WithPrefix("http")),
			ReadHeaderTimeout: 10 * time.Second,
		}
		go serveHTTP(ctx, httpSrv, logger, httpErr)
	}

	sshCfg := tui.DefaultSSHServerConfig()
	sshCfg.Address = flagSSHAddr
	sshCfg.HostKeyPath = flagHostKey
	sshCfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	sshCfg.TickRate = flagFPS
	sshCfg.Seed = flagSeed

	server, err := tui.NewSSHServer(sshCfg, cfg, store, publisher, logger)
	if err != nil {
		return err
	}

	fmt.Printf("Starting Space Drop SSH server on %s\n", sshCfg.Address)
	fmt.Println("Connect with: ssh -t localhost -p" + portOf(sshCfg.Address))
	fmt.Println("Press Ctrl+C to stop")

	sshErr := make(chan error, 1)
	go func() { sshErr <- server.Serve(ctx) }()

	select {
	case err := <-httpErr:
		stop()
		<-sshErr
		return err
	case err := <-sshErr:
		return err
	}
}

// serveHTTP runs srv until ctx is cancelled. Startup failures are sent to errc.
func serveHTTP(ctx context.Context, srv *http.Server, logger *log.Logger, errc chan<- error) {
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("http shutdown", "error", err)
		}
	}()

	logger.Info("starting HTTP feed", "address", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		errc <- fmt.Errorf("http server: %w", err)
	}
}

// portOf returns " <port>" for an address like ":23234", or "" if there is none.
func portOf(addr string) string {
	_, port, err := net.SplitHostPort(addr)
	if err != nil || port == "" {
		return ""
	}
	return " " + port
}
