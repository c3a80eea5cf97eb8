package main

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mohammadijoo/heatsink_pinn_go/src/openfoam"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Render prediction, reference and difference panels",
	Long: `validate reads the OpenFOAM reference export and the network predictions
at the same points, and writes one PNG comparing every configured quantity.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		refFile, _ := cmd.Flags().GetString("reference")
		predFile, _ := cmd.Flags().GetString("predicted")
		outDir, _ := cmd.Flags().GetString("out")
		tol, _ := cmd.Flags().GetFloat64("tolerance")

		opts := openfoam.Options{
			Columns:     cfg.Columns(),
			Inputs:      cfg.OpenFOAM.Inputs,
			Outputs:     cfg.Quantities.Name,
			NuOffset:    cfg.OpenFOAM.NuOffset,
			Temperature: cfg.TemperatureConversion(),
		}
		ref, err := openfoam.LoadReference(refFile, opts)
		if err != nil {
			return fmt.Errorf("reference %s: %w", refFile, err)
		}
		log.Printf("Loaded %d reference points from %s", ref.N, refFile)

		opts.Inputs = []string{"x", "y"}
		pred, err := openfoam.LoadPrediction(predFile, opts)
		if err != nil {
			return fmt.Errorf("predictions %s: %w", predFile, err)
		}
		if err := ref.SamePoints(pred, tol); err != nil {
			return fmt.Errorf("predictions %s: %w", predFile, err)
		}

		artifacts, err := cfg.Plotter().Plot(ref.Invar, ref.Outvar, pred.Outvar)
		if err != nil {
			return err
		}
		for _, art := range artifacts {
			name := filepath.Join(outDir, art.Label+".png")
			if err := art.Save(name); err != nil {
				return fmt.Errorf("cannot save %s: %w", name, err)
			}
			log.Printf("Saved plot: %s", name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().StringP("reference", "r", "openfoam/heat_sink_zeroEq_Pr5_mesh20.csv", "OpenFOAM reference CSV export")
	validateCmd.Flags().StringP("predicted", "p", "", "predicted fields CSV, one column per variable")
	validateCmd.Flags().StringP("out", "o", filepath.Join("output", "heatsink"), "output directory")
	validateCmd.Flags().Float64("tolerance", 1e-6, "largest coordinate difference between reference and predicted points")
	_ = validateCmd.MarkFlagRequired("predicted")
}
