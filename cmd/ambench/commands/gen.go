package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ambench/pkg/automl"
	"ambench/pkg/bench"
	"ambench/pkg/openml"
)

func newGenCommand() *cobra.Command {
	var (
		studyID      int64
		classifiers  []string
		jobsDir      string
		headersFile  string
		program      string
		configFile   string
		writeConfig  bool
		preprocessor string
		logFile      string
		submit       bool
	)

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate job scripts for every task in a study",
		RunE: func(cmd *cobra.Command, args []string) error {
			if studyID == 0 {
				return errors.New("please specify a study id")
			}

			headers := ""
			headersResolved := resolveString(headersFile, appConfig.HeadersFile)
			if headersResolved != "" {
				data, err := os.ReadFile(headersResolved)
				if err != nil {
					return fmt.Errorf("read headers file: %w", err)
				}
				headers = string(data)
			}

			programResolved := resolveString(program, appConfig.Program)
			if programResolved == "" {
				exe, err := os.Executable()
				if err != nil {
					return err
				}
				programResolved = exe + " run"
			}

			configResolved := resolveString(configFile, appConfig.ConfigFile)
			if configResolved == "" {
				configResolved = "config.json"
			}
			if writeConfig {
				if _, err := automl.WriteConfigFile(configResolved, automl.DefaultConfig()); err != nil {
					return err
				}
				logger.Info("wrote classifier config", zap.String("path", configResolved))
			}

			client := openml.NewFromEnv(appConfig.APIKey)
			if appConfig.Server != "" {
				client.BaseURL = appConfig.Server
			}

			tasks, err := bench.TasksForStudy(cmd.Context(), client, studyID)
			if err != nil {
				return err
			}

			b, err := bench.New(headers, programResolved, resolveString(jobsDir, appConfig.JobsDir), configResolved, logger)
			if err != nil {
				return err
			}
			if appConfig.QueueCommand != "" {
				b.QueueCommand = appConfig.QueueCommand
			}

			var clfNames []string
			if len(classifiers) > 0 {
				clfNames = classifiers
			}
			if _, err := b.CreateJobs(tasks, clfNames, bench.JobOptions{
				Preprocessor: preprocessor,
				Log:          logFile,
			}); err != nil {
				return err
			}

			count := len(tasks) * len(clfNames)
			if clfNames == nil {
				count = len(tasks) * len(automl.Classifiers())
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d job scripts to %s\n", count, b.JobsDir)

			if submit {
				failed, err := b.SubmitJobs(cmd.Context())
				if err != nil {
					return err
				}
				if failed > 0 {
					fmt.Fprintf(cmd.ErrOrStderr(), "%d submissions failed\n", failed)
				}
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&studyID, "study", 0, "an id of an OpenML study")
	cmd.Flags().StringSliceVar(&classifiers, "classifiers", nil, "classifiers to benchmark (default: all)")
	cmd.Flags().StringVar(&jobsDir, "jobs-dir", "", "directory for generated job scripts")
	cmd.Flags().StringVar(&headersFile, "headers-file", "", "file with queue directives prepended to every script")
	cmd.Flags().StringVar(&program, "program", "", "invocation written into every script (default: this binary)")
	cmd.Flags().StringVar(&configFile, "config", "", "classifier config file referenced by the scripts")
	cmd.Flags().BoolVar(&writeConfig, "write-config", false, "write a default classifier config file first")
	cmd.Flags().StringVar(&preprocessor, "preprocessor", "default", "preprocessor passed to every job")
	cmd.Flags().StringVar(&logFile, "log", "log.json", "run log path passed to every job")
	cmd.Flags().BoolVar(&submit, "submit", false, "submit the generated scripts to the queue")

	return cmd
}
