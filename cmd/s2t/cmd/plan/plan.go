package plan

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"speech2text/cmd/s2t/cmd/cli"
	"speech2text/internal/app"
	"speech2text/internal/app/model"
	"speech2text/internal/app/util/timestamp"
	"speech2text/internal/config"
)

var (
	duration     float64
	maxRequest   float64
	windowLength float64
	overlap      float64
)

func init() {
	Cmd.Flags().Float64VarP(&duration, "duration", "d", 0, "plan for a recording of this many seconds instead of probing a file")
	Cmd.Flags().Float64Var(&maxRequest, "max-request", 0, "longest audio in seconds sent in one request")
	Cmd.Flags().Float64Var(&windowLength, "window", 0, "window length in seconds")
	Cmd.Flags().Float64Var(&overlap, "overlap", 0, "window overlap in seconds")
}

// Cmd represents the plan command
var Cmd = &cobra.Command{
	Use:   "plan [file]",
	Short: "Show how a recording would be split without transcribing it",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 && duration <= 0 {
			return fmt.Errorf("give a file or a positive --duration")
		}

		settings, err := cli.LoadSettings(func(s *config.Settings) {
			if cmd.Flags().Changed("max-request") {
				s.MaxRequestDurationSec = maxRequest
			}
			if cmd.Flags().Changed("window") {
				s.WindowLengthSec = windowLength
			}
			if cmd.Flags().Changed("overlap") {
				s.WindowOverlapSec = overlap
			}
		})
		if err != nil {
			return err
		}

		logger, err := cli.NewLogger()
		if err != nil {
			return err
		}
		defer logger.Sync()

		planner, err := app.InitializePlanner(settings, logger)
		if err != nil {
			return err
		}

		source := model.AudioSource{Path: "(duration)", DurationSeconds: duration}
		var windows []model.Window
		if len(args) == 1 {
			source, windows, err = planner.Plan(cmd.Context(), args[0])
		} else {
			windows, err = planner.PlanDuration(duration)
		}
		if err != nil {
			return err
		}

		printPlan(cmd.OutOrStdout(), source, windows, settings.MaxRequestDurationSec)
		return nil
	},
}

func printPlan(out io.Writer, source model.AudioSource, windows []model.Window, maxRequest float64) {
	fmt.Fprintf(out, "Source: %s (%s)\n", source.Path, timestamp.Format(source.DurationSeconds))
	if source.DurationSeconds <= maxRequest {
		fmt.Fprintf(out, "Within the %.0fs request limit, sent as a single request\n", maxRequest)
		return
	}

	fmt.Fprintf(out, "Split into %d windows:\n", len(windows))
	for _, w := range windows {
		fmt.Fprintf(out, "  #%-3d %s - %s  (%.3fs)\n",
			w.Index, timestamp.Format(w.StartOffsetSeconds), timestamp.Format(w.EndSeconds()), w.LengthSeconds)
	}
}
