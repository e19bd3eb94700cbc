package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"formfiller/models"
)

type runOptions struct {
	url             string
	count           int
	intervalMinutes int
	intervalSeconds int
	tone            string
	formContext     string
}

func (o runOptions) request() models.GenerateRequest {
	return models.GenerateRequest{
		FormURL:         o.url,
		NumResponses:    &o.count,
		IntervalMinutes: &o.intervalMinutes,
		IntervalSeconds: &o.intervalSeconds,
		FormContext:     o.formContext,
		ResponseTone:    o.tone,
	}
}

func newRunCmd(a *app) *cobra.Command {
	var opts runOptions

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Submits a form the given number of times and exits",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := opts.request()
			if _, err := req.Plan(); err != nil {
				return err
			}

			driver, err := newDriver(cmd.Context(), a.cfg, a.logger)
			if err != nil {
				return err
			}

			result, err := driver.Run(cmd.Context(), req)
			if err != nil {
				a.logger.Error("Run failed", zap.String("run_id", result.RunID), zap.Int("completed", result.Completed))
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), result.SuccessMessage())
			for _, url := range result.Screenshot {
				fmt.Fprintln(cmd.OutOrStdout(), "screenshot:", url)
			}
			return nil
		},
	}

	f := runCmd.Flags()
	f.StringVar(&opts.url, "url", "", "form URL (required)")
	f.IntVarP(&opts.count, "count", "n", 1, "number of responses (1-50)")
	f.IntVar(&opts.intervalMinutes, "interval-minutes", 0, "minutes between responses")
	f.IntVar(&opts.intervalSeconds, "interval-seconds", 5, "seconds between responses")
	f.StringVar(&opts.tone, "tone", string(models.ToneNeutral), "answer tone: positive, negative, neutral or mixed")
	f.StringVar(&opts.formContext, "context", "", "what the form is about, used for generated answers")
	_ = runCmd.MarkFlagRequired("url")
	return runCmd
}
