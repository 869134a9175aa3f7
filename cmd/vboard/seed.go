package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"vboard/internal/config"
	"vboard/internal/models"
	"vboard/internal/store"
)

type seedBoard struct {
	Slug string `yaml:"slug"`
	Name string `yaml:"name"`
}

func newSeedCmd(cfg *config.Config) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create boards from a YAML file",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(file)
			if err != nil {
				return err
			}

			var boards []seedBoard
			if err := yaml.Unmarshal(raw, &boards); err != nil {
				return fmt.Errorf("parse %s: %w", file, err)
			}
			if len(boards) == 0 {
				return fmt.Errorf("%s contains no boards", file)
			}

			st, err := store.Open(cfg.DBPath)
			if err != nil {
				return err
			}
			defer st.Close()

			for _, b := range boards {
				if err := st.EnsureBoard(cmd.Context(), models.Board{Slug: b.Slug, Name: b.Name}); err != nil {
					return fmt.Errorf("board %q: %w", b.Slug, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "board %s (%s) ok\n", b.Slug, b.Name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "boards.yaml", "YAML file with boards to create")

	return cmd
}
