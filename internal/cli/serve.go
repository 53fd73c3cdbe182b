package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sprite-ai/webcompat/internal/analysis"
	"github.com/sprite-ai/webcompat/internal/browser"
	"github.com/sprite-ai/webcompat/internal/logging"
	"github.com/sprite-ai/webcompat/internal/server"
)

var (
	serveFlags       analysisFlags
	flagAddr         string
	flagPort         int
	flagOpenBrowsers bool
	flagChromePath   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local test server",
	Long: `Serve the base directory over HTTP for manual testing in real browsers,
together with an analysis API.

Endpoints:
  GET  /             - Files of the base directory
  GET  /health       - Health check
  POST /api/analyze  - Analyze submitted markup, style and script texts
  GET  /api/report   - Latest report
  GET  /api/ws       - WebSocket pushing every new report`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveFlags.register(serveCmd)
	addServerFlags(serveCmd)
}

func addServerFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&flagAddr, "addr", "a", "", "address to listen on (default: all interfaces)")
	cmd.Flags().IntVarP(&flagPort, "port", "p", server.DefaultPort, "port to listen on")
	cmd.Flags().BoolVar(&flagOpenBrowsers, "open-browsers", false, "open the entry page in Chrome under each desktop browser profile")
	cmd.Flags().StringVar(&flagChromePath, "chrome-path", "", "Chrome executable (default: discovered)")
}

// startServer runs an initial analysis, starts the test server with it
// published, and optionally opens browsers. The returned stop function
// shuts everything down.
func startServer(cmd *cobra.Command, flags *analysisFlags) (*server.Server, func(), error) {
	ctx := cmd.Context()
	logger := logging.New("cli")

	opts, err := flags.engineOptions()
	if err != nil {
		return nil, nil, err
	}
	srv := newServer(fmt.Sprintf("%s:%d", flagAddr, servePort(cmd, flagPort)), opts)

	r, _, err := flags.analyze(ctx, cmd.InOrStdin())
	if err != nil {
		return nil, nil, err
	}
	srv.Publish(r)

	addr, err := srv.Start()
	if err != nil {
		return nil, nil, err
	}
	url := localURL(addr, entryPage())
	fmt.Fprintf(cmd.OutOrStdout(), "Serving %s at %s\n", flagDir, url)

	closeBrowser := func() {}
	if flagOpenBrowsers {
		closeFn, err := browser.Open(ctx, url, browser.Options{ExecPath: flagChromePath, Logger: logging.New("browser")})
		if err != nil {
			logger.Warn("could not open browsers", "error", err)
		} else {
			closeBrowser = closeFn
		}
	}

	stop := func() {
		closeBrowser()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("server shutdown", "error", err)
		}
	}
	return srv, stop, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	_, stop, err := startServer(cmd, &serveFlags)
	if err != nil {
		return err
	}
	defer stop()

	fmt.Fprintln(cmd.OutOrStdout(), "Server running. Press Ctrl+C to stop.")
	<-cmd.Context().Done()
	fmt.Fprintln(cmd.OutOrStdout(), "Stopping server...")
	return nil
}

// publishAnalysis reruns the analysis and pushes the result to clients.
func publishAnalysis(ctx context.Context, srv *server.Server, flags *analysisFlags) (*analysis.Report, error) {
	r, _, err := flags.analyze(ctx, nil)
	if err != nil {
		return nil, err
	}
	srv.Publish(r)
	return r, nil
}
