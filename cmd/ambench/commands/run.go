package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ambench/pkg/automl"
	"ambench/pkg/openml"
	"ambench/pkg/runlog"
	"ambench/pkg/runner"
)

func newRunCommand() *cobra.Command {
	var (
		classifier   string
		taskID       int64
		configFile   string
		preprocessor string
		apikey       string
		logFile      string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one classifier against one task and record the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			if taskID == 0 {
				return errors.New("please specify a task id")
			}
			configResolved := resolveString(configFile, appConfig.ConfigFile)
			if configResolved == "" {
				configResolved = "config.json"
			}
			if _, err := os.Stat(configResolved); err != nil {
				return errors.New("the configuration file does not exist")
			}

			cfg, err := automl.LoadConfigFile(configResolved)
			if err != nil {
				return err
			}

			client := openml.NewFromEnv(resolveString(apikey, appConfig.APIKey))
			if appConfig.Server != "" {
				client.BaseURL = appConfig.Server
			}

			logResolved := resolveString(logFile, appConfig.Log)
			if logResolved == "" {
				logResolved = "log.json"
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Running %s on task %d.\n", classifier, taskID)

			r := runner.New(client, logger)
			runID, url, err := r.RunJob(cmd.Context(), classifier, taskID, cfg, preprocessor)
			if err != nil {
				return err
			}

			if err := runlog.Append(logResolved, runID, url); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Run %d published: %s\n", runID, url)
			return nil
		},
	}

	cmd.Flags().StringVar(&classifier, "classifier", "tpot", "specify 'tpot' or 'autosklearn'")
	cmd.Flags().Int64Var(&taskID, "task-id", 0, "an id of an OpenML task")
	cmd.Flags().StringVar(&configFile, "config", "", "JSON configuration file for the classifiers and wrappers")
	cmd.Flags().StringVar(&preprocessor, "preprocessor", "default", "specify the preprocessor")
	cmd.Flags().StringVar(&apikey, "apikey", "", "OpenML API key, required to upload runs")
	cmd.Flags().StringVar(&logFile, "log", "", "file to store the run id to URL mapping")

	return cmd
}
