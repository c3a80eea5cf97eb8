package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mohammadijoo/heatsink_pinn_go/src/config"
)

var defaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Print the default configuration file",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprint(cmd.OutOrStdout(), config.Template)
	},
}

var geometryCmd = &cobra.Command{
	Use:   "geometry",
	Short: "Print the channel and heat sink fins used for masking",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		ch := cfg.Channel
		fmt.Fprintf(out, "channel  x [%g, %g]  y [%g, %g]\n", ch.XMin, ch.XMax, ch.YMin, ch.YMax)
		for j, r := range cfg.HeatSink.FinSpec().Rects() {
			fmt.Fprintf(out, "fin %d    x [%g, %g]  y [%g, %g]\n", j, r.XMin, r.XMax, r.YMin, r.YMax)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(defaultsCmd)
	rootCmd.AddCommand(geometryCmd)
}
