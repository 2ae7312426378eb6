package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ahrav/go-riskblend/internal/application"
)

func newProfilesCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "List the profiles in a configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				return exitError(3, "--config is required")
			}

			cfg, err := application.LoadConfigFile(configPath)
			if err != nil {
				return exitError(3, "failed to load config: %v", err)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tCOMBINER\tTHRESHOLDS")
			for _, p := range cfg.Profiles {
				thresholds := "default"
				if p.Thresholds != nil {
					thresholds = fmt.Sprintf("%g/%g/%g",
						p.Thresholds.Moderate, p.Thresholds.High, p.Thresholds.Critical)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", p.ID, p.Combiner, thresholds)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Profile configuration file")

	return cmd
}
