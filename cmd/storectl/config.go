package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vango-dev/linkstore/internal/config"
	"github.com/vango-dev/linkstore/internal/errors"
)

func configCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage linkstore.toml",
	}
	cmd.AddCommand(configInitCmd(a), configShowCmd(a))
	return cmd
}

func configInitCmd(a *app) *cobra.Command {
	var (
		dir   string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a linkstore.toml with default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := filepath.Join(dir, config.ConfigFileName)
			if _, err := os.Stat(path); err == nil && !force {
				return errors.New("L010").
					WithDetail(path + " already exists").
					WithSuggestion("Pass --force to overwrite it")
			}
			if err := config.New().SaveTo(path); err != nil {
				return err
			}
			a.success("Wrote %s", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "Directory to write linkstore.toml in")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	return cmd
}

func configShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if p := a.cfg.Path(); p != "" {
				a.info("# loaded from %s", p)
			}
			return a.cfg.Encode(a.out)
		},
	}
}
