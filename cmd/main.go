package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/garlicgarrison/opening-scanner/opening"
	"github.com/garlicgarrison/opening-scanner/scanner"
)

func main() {
	var start string
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "opening-scanner",
		Short: "Interactively build an opening tree and export it as a PGN database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := scanner.DefaultConfig()
			if configPath != "" {
				loaded, err := scanner.LoadConfig(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}

			var moves []string
			if start != "" {
				moves = strings.Split(start, ",")
			}

			tree, err := opening.NewTree(moves)
			if err != nil {
				return err
			}

			s := scanner.New(cfg, tree, os.Stdin, os.Stdout)
			defer s.Close()

			return s.Run()
		},
		SilenceUsage: true,
	}

	rootCmd.Flags().StringVarP(&start, "start", "s", "", "comma-separated list of starting moves (SAN or UCI)")
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a yaml config file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
