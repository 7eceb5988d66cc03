package history

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"speech2text/cmd/s2t/cmd/cli"
	"speech2text/internal/app"
	"speech2text/internal/app/model"
	"speech2text/internal/app/output"
	"speech2text/internal/app/util/timestamp"
)

var limit int

func init() {
	Cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of runs to list")
}

// Cmd represents the history command
var Cmd = &cobra.Command{
	Use:   "history [run id]",
	Short: "List recorded transcription runs, or show one run",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := cli.LoadSettings(nil)
		if err != nil {
			return err
		}

		dao, err := app.InitializeTranscriptionDAO(settings)
		if err != nil {
			return err
		}
		if dao == nil {
			return fmt.Errorf("run history is disabled (history.driver is none)")
		}
		defer dao.Close()

		if len(args) == 1 {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid run id %q: %w", args[0], err)
			}
			run, err := dao.GetRun(id)
			if err != nil {
				return err
			}
			printRun(cmd.OutOrStdout(), *run)
			return nil
		}

		runs, err := dao.ListRuns(limit)
		if err != nil {
			return err
		}
		return printRuns(cmd.OutOrStdout(), runs)
	},
}

func status(run model.TranscriptionRun) string {
	if run.HasError {
		return "failed"
	}
	return "ok"
}

func printRuns(out io.Writer, runs []model.TranscriptionRun) error {
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCREATED\tFILE\tDURATION\tWINDOWS\tSTATUS")
	for _, r := range runs {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%s\n",
			r.ID, r.CreatedAt.Local().Format("2006-01-02 15:04:05"), r.FileName(),
			timestamp.Format(r.AudioDuration), r.WindowCount, status(r))
	}
	return w.Flush()
}

func printRun(out io.Writer, run model.TranscriptionRun) {
	fmt.Fprintf(out, "Run %d (%s)\n", run.ID, run.RunID)
	fmt.Fprintf(out, "Source file: %s\n", run.SourcePath)
	if run.AudioPath != "" && run.AudioPath != run.SourcePath {
		fmt.Fprintf(out, "Processed file: %s\n", run.AudioPath)
	}
	fmt.Fprintf(out, "Model: %s\nLanguage: %s\nDuration: %s\nWindows: %d\nStatus: %s\n",
		run.Model, run.Language, timestamp.Format(run.AudioDuration), run.WindowCount, status(run))
	if run.HasError {
		fmt.Fprintf(out, "Error: %s\n", run.ErrorMessage)
		return
	}
	if len(run.Segments) > 0 {
		fmt.Fprintln(out, "\nSegments:")
		for _, line := range output.SegmentLines(run.Segments) {
			fmt.Fprintln(out, line)
		}
	}
	fmt.Fprintf(out, "\nFull transcript:\n%s\n", run.FullText)
}
