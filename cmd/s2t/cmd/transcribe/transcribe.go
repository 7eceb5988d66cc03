package transcribe

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"speech2text/cmd/s2t/cmd/cli"
	"speech2text/internal/app"
	"speech2text/internal/app/converter"
	"speech2text/internal/app/model"
	"speech2text/internal/app/output"
	"speech2text/internal/app/util/files"
	"speech2text/internal/config"
)

var (
	language        string
	modelName       string
	sourceDir       string
	outputDir       string
	maxRequest      float64
	windowLength    float64
	overlap         float64
	timeout         time.Duration
	attempts        int
	backoff         time.Duration
	historyDriver   string
	metricsTextfile string
	showProgress    bool
	quiet           bool
)

func init() {
	Cmd.Flags().StringVarP(&language, "language", "l", "", "spoken language hint, empty lets the service detect it")
	Cmd.Flags().StringVarP(&modelName, "model", "m", "", "transcription model")
	Cmd.Flags().StringVarP(&sourceDir, "source-dir", "s", "", "directory listed when no file is given")
	Cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "directory receiving <name>.txt")
	Cmd.Flags().Float64Var(&maxRequest, "max-request", 0, "longest audio in seconds sent in one request")
	Cmd.Flags().Float64Var(&windowLength, "window", 0, "window length in seconds")
	Cmd.Flags().Float64Var(&overlap, "overlap", 0, "window overlap in seconds")
	Cmd.Flags().DurationVar(&timeout, "timeout", 0, "request timeout, e.g. 10m")
	Cmd.Flags().IntVar(&attempts, "attempts", 0, "attempts per window")
	Cmd.Flags().DurationVar(&backoff, "backoff", 0, "retry backoff base, e.g. 5s")
	Cmd.Flags().StringVar(&historyDriver, "history", "", "run history store: sqlite, postgres or none")
	Cmd.Flags().StringVar(&metricsTextfile, "metrics-textfile", "", "write Prometheus metrics of the run to this file")
	Cmd.Flags().BoolVarP(&showProgress, "progress", "p", false, "force the progress bar even without a terminal")
	Cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "do not echo the transcript")
}

// Cmd represents the transcribe command
var Cmd = &cobra.Command{
	Use:   "transcribe [file]",
	Short: "Transcribe an audio or video file",
	Long: `Transcribe an audio or video file into a speaker-labelled transcript

- Without a file argument, the media files of the source directory are listed and one is chosen
- Video files (.mp4) are converted to a sibling .mp3 first
- Recordings longer than --max-request are split into --window second windows overlapping by --overlap`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := cli.LoadSettings(func(s *config.Settings) {
			applyFlags(cmd, s)
		})
		if err != nil {
			return err
		}

		keys, err := config.GetAPIKeys(settings.BaseURL)
		if err != nil {
			return err
		}
		if err := config.RequireAPIKeys(keys); err != nil {
			return err
		}

		logger, err := cli.NewLogger()
		if err != nil {
			return err
		}
		defer logger.Sync()

		source, err := selectSource(args, settings.SourceDir, cmd.InOrStdin(), cmd.OutOrStdout())
		if err != nil {
			return err
		}

		progress := converter.ProgressConfig{Enabled: converter.ShouldShowProgress(showProgress), Writer: cmd.ErrOrStderr()}
		conv, err := app.InitializeConverter(settings, keys, progress, logger)
		if err != nil {
			return err
		}
		defer conv.Close()

		if id, err := conv.PreviouslyTranscribed(source); err == nil && id > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "Note: '%s' was already transcribed (run %d), appending a new run\n", source, id)
		}

		res, runErr := conv.Convert(cmd.Context(), source)
		if err := conv.Metrics().WriteTextfile(settings.MetricsTextfile); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "failed to write metrics: %v\n", err)
		}
		if runErr != nil {
			return runErr
		}

		if !quiet {
			echo(cmd.OutOrStdout(), res.Transcript)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\nTranscript written to %s\n", res.OutputPath)
		return nil
	},
}

func applyFlags(cmd *cobra.Command, s *config.Settings) {
	flags := cmd.Flags()
	if flags.Changed("language") {
		s.Language = language
	}
	if flags.Changed("model") {
		s.Model = modelName
	}
	if flags.Changed("source-dir") {
		s.SourceDir = sourceDir
	}
	if flags.Changed("output-dir") {
		s.OutputDir = outputDir
	}
	if flags.Changed("max-request") {
		s.MaxRequestDurationSec = maxRequest
	}
	if flags.Changed("window") {
		s.WindowLengthSec = windowLength
	}
	if flags.Changed("overlap") {
		s.WindowOverlapSec = overlap
	}
	if flags.Changed("timeout") {
		s.RequestTimeout = timeout
	}
	if flags.Changed("attempts") {
		s.MaxAttempts = attempts
	}
	if flags.Changed("backoff") {
		s.RetryBackoff = backoff
	}
	if flags.Changed("history") {
		s.History.Driver = historyDriver
	}
	if flags.Changed("metrics-textfile") {
		s.MetricsTextfile = metricsTextfile
	}
}

func selectSource(args []string, sourceDir string, in io.Reader, out io.Writer) (string, error) {
	if len(args) == 1 {
		if _, err := os.Stat(args[0]); err != nil {
			return "", err
		}
		return args[0], nil
	}

	fileInfos, err := files.ListMediaFiles(sourceDir)
	if err != nil {
		return "", err
	}
	chosen, err := files.ChooseFile(fileInfos, in, out)
	if err != nil {
		return "", err
	}
	return chosen.FullPath, nil
}

func echo(out io.Writer, transcript model.Transcript) {
	if transcript.HasSegments() {
		fmt.Fprintln(out, "\nDiarized segments:")
		for _, line := range output.SegmentLines(transcript.Segments) {
			fmt.Fprintln(out, line)
		}
		return
	}
	fmt.Fprintln(out, "\nTranscript:")
	fmt.Fprintln(out, transcript.FullText)
}
