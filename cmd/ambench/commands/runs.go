package commands

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"ambench/pkg/runlog"
)

func newRunsCommand() *cobra.Command {
	var (
		logFile string
		format  string
	)

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Show the recorded runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			logResolved := resolveString(logFile, appConfig.Log)
			if logResolved == "" {
				logResolved = "log.json"
			}

			records, err := runlog.Read(logResolved)
			if err != nil {
				return err
			}

			switch format {
			case "json":
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(records)
			case "table":
				ids := make([]string, 0, len(records))
				for id := range records {
					ids = append(ids, id)
				}
				sort.Slice(ids, func(i, j int) bool {
					a, errA := strconv.ParseInt(ids[i], 10, 64)
					b, errB := strconv.ParseInt(ids[j], 10, 64)
					if errA != nil || errB != nil {
						return ids[i] < ids[j]
					}
					return a < b
				})

				table := tablewriter.NewWriter(cmd.OutOrStdout())
				table.Header([]string{"Run", "URL"})
				for _, id := range ids {
					table.Append([]string{id, records[id]})
				}
				table.Render()
				return nil
			default:
				return fmt.Errorf("unknown format: %s", format)
			}
		},
	}

	cmd.Flags().StringVar(&logFile, "log", "", "run log path")
	cmd.Flags().StringVar(&format, "format", "table", "output format (table, json)")

	return cmd
}
