package main

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/noah-isme/sma-timetable-dss/internal/dto"
	"github.com/noah-isme/sma-timetable-dss/internal/planner"
)

func defaultsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "defaults",
		Short: "Print the sample constraints as YAML, ready to edit and feed to generate",
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(dto.FromConstraints(planner.DefaultConstraints())); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}
