package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/screenhold/screenhold/internal/inhibit"
	"github.com/screenhold/screenhold/internal/siggate"
	"github.com/screenhold/screenhold/internal/suspend"
	"github.com/screenhold/screenhold/internal/xwatch"
)

var suspendCmd = &cobra.Command{
	Use:   "suspend <window-id>",
	Short: "Inhibit the screensaver until the window disappears",
	Long: `Inhibit the screensaver and block in the background until the given X
window is destroyed, or until the process receives SIGTERM (a clean stop,
as sent by 'screenhold resume').

The window id accepts decimal, hex (0x1a2b) and octal (032) notation.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		window, err := parseWindowID(args[0])
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if !suspend.Foreground() {
			return suspend.Detach(ctx, args[0])
		}

		// Arm the gate before anything can be acquired, so no gated
		// signal can kill the session while it holds a cookie.
		gate := siggate.Arm()
		defer gate.Close()

		controller := &suspend.Controller{
			Program: os.Args[0],
			Window:  window,
			Signals: gate.C(),
			OpenInhibitor: func() (suspend.Inhibitor, error) {
				return inhibit.Connect(cfg.Screensaver)
			},
			OpenWatcher: func(window uint32) (suspend.Watcher, error) {
				return xwatch.Open(window)
			},
			Ready: suspend.NotifyReady,
		}
		return controller.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(suspendCmd)
}
