// Command commelec-build emits a battery or PV advertisement to a wire-format
// file, exercising pkg/expr/builder's advertisement constructors and
// optionally pkg/expr/lang for a textual cost-function override.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/commelec/agent-core/pkg/expr"
	"github.com/commelec/agent-core/pkg/expr/builder"
	"github.com/commelec/agent-core/pkg/expr/lang"
	"github.com/commelec/agent-core/pkg/wire"
)

var (
	flagOut       string
	flagUnpacked  bool
	flagAgentID   uint32
	flagCostExpr  string

	// battery flags
	flagPmin, flagPmax, flagSrated float64
	flagCoeffP, flagCoeffPsquared  float64

	// PV flags
	flagPdelta, flagTanPhi, flagAPV, flagBPV float64

	flagPimp, flagQimp float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "commelec-build",
		Short: "Build a Commelec advertisement and write it to a wire-format file",
	}
	rootCmd.PersistentFlags().StringVar(&flagOut, "out", "advertisement.bin", "output file path")
	rootCmd.PersistentFlags().BoolVar(&flagUnpacked, "unpacked", false, "write the unpacked wire variant")
	rootCmd.PersistentFlags().Uint32Var(&flagAgentID, "agent-id", 1, "agent id to embed in the message")
	rootCmd.PersistentFlags().Float64Var(&flagPimp, "pimp", 0, "implemented setpoint P")
	rootCmd.PersistentFlags().Float64Var(&flagQimp, "qimp", 0, "implemented setpoint Q")
	rootCmd.PersistentFlags().StringVar(&flagCostExpr, "cost-expr", "", "override the cost function with a textual expression, e.g. \"0.5*P^2 + Q\"")

	batteryCmd := &cobra.Command{
		Use:   "battery",
		Short: "Build a battery advertisement",
		RunE:  runBattery,
	}
	batteryCmd.Flags().Float64Var(&flagPmin, "pmin", -5, "minimum active power")
	batteryCmd.Flags().Float64Var(&flagPmax, "pmax", 5, "maximum active power")
	batteryCmd.Flags().Float64Var(&flagSrated, "srated", 5, "rated apparent power")
	batteryCmd.Flags().Float64Var(&flagCoeffP, "coeff-p", 1, "linear cost coefficient")
	batteryCmd.Flags().Float64Var(&flagCoeffPsquared, "coeff-p2", 1, "quadratic cost coefficient")

	pvCmd := &cobra.Command{
		Use:   "pv",
		Short: "Build a PV advertisement",
		RunE:  runPV,
	}
	pvCmd.Flags().Float64Var(&flagPmax, "pmax", 10, "maximum active power")
	pvCmd.Flags().Float64Var(&flagSrated, "srated", 10, "rated apparent power")
	pvCmd.Flags().Float64Var(&flagPdelta, "pdelta", 2, "curtailment margin")
	pvCmd.Flags().Float64Var(&flagTanPhi, "tan-phi", 0.5, "reactive power slope")
	pvCmd.Flags().Float64Var(&flagAPV, "a-pv", 1, "linear cost coefficient")
	pvCmd.Flags().Float64Var(&flagBPV, "b-pv", 0.1, "quadratic reactive cost coefficient")

	rootCmd.AddCommand(batteryCmd, pvCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func resolveCostFunction(fallback expr.RealExpr) (expr.RealExpr, error) {
	if flagCostExpr == "" {
		return fallback, nil
	}
	return lang.Parse(flagCostExpr)
}

func runBattery(cmd *cobra.Command, args []string) error {
	cost, err := resolveCostFunction(builder.BatteryCostQuadratic(flagCoeffP, flagCoeffPsquared))
	if err != nil {
		return fmt.Errorf("parsing --cost-expr: %w", err)
	}
	adv := builder.BuildBatteryAdvertisement(flagPmin, flagPmax, flagSrated, cost, flagPimp, flagQimp)
	return writeAdvertisement(adv)
}

func runPV(cmd *cobra.Command, args []string) error {
	cost, err := resolveCostFunction(builder.PVCostFunction(flagAPV, flagBPV))
	if err != nil {
		return fmt.Errorf("parsing --cost-expr: %w", err)
	}
	pq, bf, _ := builder.PVAdvertisement(flagPmax, flagSrated, flagPdelta, flagTanPhi, flagAPV, flagBPV)
	adv := &wire.Advertisement{
		PQProfile:           pq,
		BeliefFunction:      bf,
		CostFunction:        cost,
		ImplementedSetpoint: &[2]float64{flagPimp, flagQimp},
	}
	return writeAdvertisement(adv)
}

func writeAdvertisement(adv *wire.Advertisement) error {
	mode := wire.Packed
	if flagUnpacked {
		mode = wire.Unpacked
	}
	msg := &wire.Message{AgentID: flagAgentID, Advertisement: adv}
	data, err := wire.Encode(msg, mode)
	if err != nil {
		return fmt.Errorf("encoding advertisement: %w", err)
	}
	if err := os.WriteFile(flagOut, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", flagOut, err)
	}
	fmt.Printf("wrote %s (%d bytes)\n", flagOut, len(data))
	return nil
}
