package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"speech2text/cmd/s2t/cmd/cli"
	"speech2text/cmd/s2t/cmd/export"
	"speech2text/cmd/s2t/cmd/history"
	"speech2text/cmd/s2t/cmd/plan"
	"speech2text/cmd/s2t/cmd/serve"
	"speech2text/cmd/s2t/cmd/transcribe"
	"speech2text/cmd/s2t/cmd/version"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "s2t",
	Short: "Transcribe long recordings into a speaker-labelled transcript",
	Long: `Transcribe long audio or video recordings into one speaker-labelled transcript.

- Recordings longer than the model's request limit are split into overlapping windows
- Each window is transcribed with retry, then stitched back onto the original timeline
- The transcript is appended to <output_dir>/<name>.txt and the run is saved to the history store`,
	SilenceUsage:     true,
	TraverseChildren: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(transcribe.Cmd)
	rootCmd.AddCommand(plan.Cmd)
	rootCmd.AddCommand(history.Cmd)
	rootCmd.AddCommand(export.Cmd)
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(version.Cmd)

	rootCmd.PersistentFlags().StringVarP(&cli.ConfigFile, "config", "c", "", "settings file (default is ./"+cli.DefaultConfigName()+" when present)")
	rootCmd.PersistentFlags().BoolVarP(&cli.Verbose, "verbose", "V", false, "verbose output")
}
