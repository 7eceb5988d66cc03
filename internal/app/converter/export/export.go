package export

import (
	"fmt"
	"time"

	"github.com/samber/lo"
	"github.com/tealeg/xlsx"

	"speech2text/internal/app/model"
	"speech2text/internal/app/util/timestamp"
)

// ToExcel writes runs to a workbook at outputFilePath. Runs that carry
// segments also get their segments listed on a second sheet.
func ToExcel(runs []model.TranscriptionRun, outputFilePath string) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Runs")
	if err != nil {
		return err
	}

	headerRow := sheet.AddRow()
	for _, title := range []string{"ID", "Run ID", "Created At", "Source File", "Processed File", "Model",
		"Language", "Audio Duration", "Windows", "Transcript", "Error Message"} {
		headerRow.AddCell().Value = title
	}

	for _, r := range runs {
		row := sheet.AddRow()
		row.AddCell().Value = fmt.Sprint(r.ID)
		row.AddCell().Value = r.RunID
		row.AddCell().Value = r.CreatedAt.Format(time.RFC3339)
		row.AddCell().Value = r.SourcePath
		row.AddCell().Value = r.AudioPath
		row.AddCell().Value = r.Model
		row.AddCell().Value = r.Language
		row.AddCell().Value = fmt.Sprintf("%.2f", r.AudioDuration)
		row.AddCell().Value = fmt.Sprint(r.WindowCount)
		row.AddCell().Value = r.FullText
		row.AddCell().Value = r.ErrorMessage
	}

	withSegments := lo.Filter(runs, func(r model.TranscriptionRun, _ int) bool {
		return len(r.Segments) > 0
	})
	if len(withSegments) > 0 {
		segSheet, err := file.AddSheet("Segments")
		if err != nil {
			return err
		}
		headerRow := segSheet.AddRow()
		for _, title := range []string{"Run", "Start", "End", "Speaker", "Text"} {
			headerRow.AddCell().Value = title
		}
		for _, r := range withSegments {
			for _, s := range r.Segments {
				row := segSheet.AddRow()
				row.AddCell().Value = fmt.Sprint(r.ID)
				row.AddCell().Value = timestamp.Format(s.StartSeconds)
				row.AddCell().Value = timestamp.Format(s.EndSeconds)
				row.AddCell().Value = s.Speaker
				row.AddCell().Value = s.Text
			}
		}
	}

	return file.Save(outputFilePath)
}
