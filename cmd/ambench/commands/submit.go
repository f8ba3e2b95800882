package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"ambench/pkg/bench"
)

func newSubmitCommand() *cobra.Command {
	var jobsDir string

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit every generated job script to the batch queue",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := bench.New("", "", resolveString(jobsDir, appConfig.JobsDir), appConfig.ConfigFile, logger)
			if err != nil {
				return err
			}
			if appConfig.QueueCommand != "" {
				b.QueueCommand = appConfig.QueueCommand
			}

			progress := newProgressBar(progressWriter(cmd), 0)
			failed, err := b.SubmitJobsProgress(cmd.Context(), func(submitted, total int) {
				progress.total = total
				progress.Update(submitted)
			})
			if err != nil {
				return err
			}
			if failed > 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "%d submissions failed\n", failed)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&jobsDir, "jobs-dir", "", "directory with generated job scripts")

	return cmd
}
