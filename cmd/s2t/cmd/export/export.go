package export

import (
	"fmt"

	"github.com/spf13/cobra"

	"speech2text/cmd/s2t/cmd/cli"
	"speech2text/internal/app"
	"speech2text/internal/app/converter/export"
	"speech2text/internal/app/model"
)

var (
	outputFilePath string
	runID          int64
	limit          int
)

func init() {
	Cmd.Flags().StringVarP(&outputFilePath, "outputFilePath", "o", "", "set outputFilePath, e.g. runs.xlsx")
	Cmd.Flags().Int64Var(&runID, "run", 0, "export only this run, with its segments")
	Cmd.Flags().IntVarP(&limit, "limit", "n", 1000, "number of most recent runs to export")

	Cmd.MarkFlagRequired("outputFilePath")
}

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export recorded runs to excel",
	Long: `Export recorded runs to excel

- One row per run in the "Runs" sheet
- With --run, the run's segments are written to a "Segments" sheet`,
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

		var runs []model.TranscriptionRun
		if runID > 0 {
			run, err := dao.GetRun(runID)
			if err != nil {
				return err
			}
			runs = []model.TranscriptionRun{*run}
		} else {
			runs, err = dao.ListRuns(limit)
			if err != nil {
				return err
			}
		}

		if err := export.ToExcel(runs, outputFilePath); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "export finished, exported file path: %v\n", outputFilePath)
		return nil
	},
}
