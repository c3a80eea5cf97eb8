// ------------------------------------------------------------
// Heat sink 2D: PINN vs OpenFOAM validation plots in Go
// ------------------------------------------------------------
// Compares the fields a physics-informed network predicts for the
// three-fin heat sink channel (p, u, v, nu, c) against an OpenFOAM
// reference export:
//   - scattered samples are linearly interpolated onto a regular grid
//     (Delaunay triangulation, undefined outside the convex hull)
//   - grid nodes inside the heat sink fins are blanked
//   - one row per quantity: prediction, reference, difference
//
// Usage:
//   heatsink validate --reference ref.csv --predicted pred.csv
//   heatsink defaults > heatsink.gcfg
//   heatsink geometry --config heatsink.gcfg
//
// Notes:
//   - Plots are generated with Gonum Plot (pure Go).
//   - The fin layout in the config file drives both the masking and
//     the geometry report.
// ------------------------------------------------------------

package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/mohammadijoo/heatsink_pinn_go/src/config"
)

var rootCmd = &cobra.Command{
	Use:   "heatsink",
	Short: "Validation plots for the heat sink PINN",
	Long: `heatsink compares network predictions of the 2D heat sink flow against
an OpenFOAM reference solution and renders prediction, reference and
difference panels for every field.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "configuration file (gcfg); defaults are used if empty")
}

// loadConfig reads the --config flag, falling back to the defaults.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	fname, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	if fname == "" {
		return config.Default(), nil
	}
	return config.Read(fname)
}

func main() {
	log.SetFlags(log.LstdFlags)
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("heatsink: %v", err)
	}
}
