// Package cmd provides Cobra CLI commands for screenhold.
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/screenhold/screenhold/internal/config"
	"github.com/screenhold/screenhold/internal/logging"
)

// BuildInfo carries the build-time identity injected from main.go.
type BuildInfo struct {
	Version   string
	Commit    string
	BuildDate string
}

var (
	cfg       *config.Config
	buildInfo BuildInfo

	rootCmd = &cobra.Command{
		Use:   "screenhold",
		Short: "Suspend the screensaver for as long as an X window exists",
		Long: `Screenhold keeps the desktop's idle/screen-lock behavior suspended for
exactly as long as one X window exists.

'screenhold suspend' inhibits the screensaver, detaches into the
background and blocks until the window is destroyed or the suspension is
cancelled. 'screenhold resume' finds that blocked process for the same
window and terminates it, which releases the inhibition.

The tool exists for applications (embedded browser plugins, for example)
that cannot hold an inhibition across process boundaries themselves.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip initialization for commands that don't touch a session
			switch cmd.Name() {
			case "help", "completion", "version":
				return nil
			}

			var err error
			cfg, err = config.Load()
			if err != nil {
				return err
			}
			logger := logging.New(logging.Config{
				Level:  cfg.Logging.Level,
				Format: cfg.Logging.Format,
			})
			cmd.SetContext(logging.WithContext(cmd.Context(), logger))
			return nil
		},
	}
)

// SetBuildInfo stores build information from main.go and enables the
// --version flag.
func SetBuildInfo(info BuildInfo) {
	buildInfo = info
	rootCmd.Version = info.Version
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
