package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sprite-ai/webcompat/internal/browser"
	"github.com/sprite-ai/webcompat/internal/logging"
	"github.com/sprite-ai/webcompat/internal/server"
)

var (
	flagShotURL      string
	flagShotDir      string
	flagShotProfiles []string
	flagShotTimeout  time.Duration
)

var screenshotCmd = &cobra.Command{
	Use:   "screenshot",
	Short: "Capture the entry page at each responsive breakpoint",
	Long: `Load a page in headless Chrome at the mobile (375x667), tablet (768x1024)
and desktop (1366x768) breakpoints under each requested browser profile and
save PNG screenshots. Without --url the base directory is served on a
temporary port and its entry page is captured.`,
	Args: cobra.NoArgs,
	RunE: runScreenshot,
}

func init() {
	screenshotCmd.Flags().StringVar(&flagShotURL, "url", "", "page to capture (default: entry page of the base directory)")
	screenshotCmd.Flags().StringVarP(&flagShotDir, "out", "o", "screenshots", "directory to write screenshots to")
	screenshotCmd.Flags().StringSliceVar(&flagShotProfiles, "browsers", []string{"chrome", "ipad"}, "browser profiles: chrome, firefox, safari, edge, ipad")
	screenshotCmd.Flags().StringVar(&flagChromePath, "chrome-path", "", "Chrome executable (default: discovered)")
	screenshotCmd.Flags().DurationVar(&flagShotTimeout, "timeout", 2*time.Minute, "overall capture timeout")
}

func runScreenshot(cmd *cobra.Command, args []string) error {
	var profiles []browser.Profile
	for _, name := range flagShotProfiles {
		p, err := browser.ProfileByName(name)
		if err != nil {
			return err
		}
		profiles = append(profiles, p)
	}

	url := flagShotURL
	if url == "" {
		srv := server.New(server.Options{
			Addr:   "127.0.0.1:0",
			Root:   flagDir,
			Logger: logging.New("server"),
		})
		addr, err := srv.Start()
		if err != nil {
			return err
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			srv.Shutdown(ctx)
		}()
		url = localURL(addr, entryPage())
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), flagShotTimeout)
	defer cancel()

	shots, err := browser.Capture(ctx, url, flagShotDir,
		browser.Options{ExecPath: flagChromePath, Logger: logging.New("browser")},
		profiles...)
	for _, s := range shots {
		fmt.Fprintf(cmd.OutOrStdout(), "%-8s %-8s %s\n", s.Profile, s.Breakpoint.Name, s.Path)
	}
	return err
}
