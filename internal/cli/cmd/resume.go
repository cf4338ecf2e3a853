package cmd

import (
	"github.com/spf13/cobra"

	"github.com/screenhold/screenhold/internal/procscan"
)

var resumeCmd = &cobra.Command{
	Use:   "resume <window-id>",
	Short: "Cancel the suspension held for a window",
	Long: `Find the background suspend process for the given X window and send it
SIGTERM, which releases the screensaver inhibition.

No matching process is not an error; the suspension may already have ended
with the window.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		window, err := parseWindowID(args[0])
		if err != nil {
			return err
		}
		selfExe, err := procscan.SelfExe()
		if err != nil {
			return err
		}
		resumer := &procscan.Resumer{
			Matcher: &procscan.Matcher{
				ProcRoot: cfg.Proc.Root,
				SelfExe:  selfExe,
				Window:   window,
			},
		}
		return resumer.Run(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(resumeCmd)
}
