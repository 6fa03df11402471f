package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/stochsim/stochsim/sim/banco"
	"github.com/stochsim/stochsim/sim/dist"
	"github.com/stochsim/stochsim/sim/estacionamiento"
	"github.com/stochsim/stochsim/sim/serie"
)

var (
	// shared by all variants
	arrivalRate  float64 // Arrivals per hour
	closingHours float64 // Hours after which no new arrivals are admitted

	// serie
	s1Mean float64 // Mean of the exponential station 1 service time (min)
	s2Min  float64 // Station 2 uniform service lower bound (min)
	s2Max  float64 // Station 2 uniform service upper bound (min)

	// banco
	servers int     // Number of tellers
	svcMin  float64 // Uniform service lower bound (min)
	svcMax  float64 // Uniform service upper bound (min)

	// estacionamiento
	slots  int     // Number of parking slots
	durMin float64 // Uniform stay lower bound (min)
	durMax float64 // Uniform stay upper bound (min)
)

var serieCmd = &cobra.Command{
	Use:   "serie",
	Short: "Run the two-station tandem queue",
	Run: func(cmd *cobra.Command, args []string) {
		sc := loadScenario(cmd)
		applySerieFlags(cmd, sc)
		p, err := sc.SerieParams()
		if err != nil {
			logrus.Fatalf("Invalid serie parameters: %v", err)
		}
		logrus.Infof("Starting serie: rate=%.2f/h, closing=%.2fh, s1 mean=%.3f, s2 mean=%.3f",
			p.ArrivalRate, p.ClosingHours, p.Service1.Mean(), p.Service2.Mean())
		writeResult(cmd.OutOrStdout(), "Serie", serie.Run(p))
	},
}

var bancoCmd = &cobra.Command{
	Use:   "banco",
	Short: "Run the multi-teller bank queue",
	Run: func(cmd *cobra.Command, args []string) {
		sc := loadScenario(cmd)
		applyBancoFlags(cmd, sc)
		p, err := sc.BancoParams()
		if err != nil {
			logrus.Fatalf("Invalid banco parameters: %v", err)
		}
		logrus.Infof("Starting banco: rate=%.2f/h, servers=%d, closing=%.2fh, service mean=%.3f",
			p.ArrivalRate, p.Servers, p.ClosingHours, p.Service.Mean())
		writeResult(cmd.OutOrStdout(), "Banco", banco.Run(p))
	},
}

var estacionamientoCmd = &cobra.Command{
	Use:   "estacionamiento",
	Short: "Run the finite-capacity parking lot (loss system)",
	Run: func(cmd *cobra.Command, args []string) {
		sc := loadScenario(cmd)
		applyEstacionamientoFlags(cmd, sc)
		p, err := sc.EstacionamientoParams()
		if err != nil {
			logrus.Fatalf("Invalid estacionamiento parameters: %v", err)
		}
		logrus.Infof("Starting estacionamiento: rate=%.2f/h, slots=%d, closing=%.2fh, stay mean=%.3f",
			p.ArrivalRate, p.Slots, p.ClosingHours, p.Duration.Mean())
		writeResult(cmd.OutOrStdout(), "Estacionamiento", estacionamiento.Run(p))
	},
}

// Flags override the scenario only when set explicitly on the command line.

func applySerieFlags(cmd *cobra.Command, sc *Scenario) {
	c := sc.Serie
	f := cmd.Flags()
	if f.Changed("rate") {
		c.ArrivalRate = arrivalRate
	}
	if f.Changed("closing") {
		c.ClosingHours = closingHours
	}
	if f.Changed("s1-mean") {
		c.Service1.Type = "exponential"
		c.Service1.Params = map[string]float64{"mean": s1Mean}
	}
	c.Service2 = uniformOverride(c.Service2, f, "s2-min", "s2-max", s2Min, s2Max)
}

func applyBancoFlags(cmd *cobra.Command, sc *Scenario) {
	c := sc.Banco
	f := cmd.Flags()
	if f.Changed("rate") {
		c.ArrivalRate = arrivalRate
	}
	if f.Changed("closing") {
		c.ClosingHours = closingHours
	}
	if f.Changed("servers") {
		c.Servers = servers
	}
	c.Service = uniformOverride(c.Service, f, "svc-min", "svc-max", svcMin, svcMax)
}

func applyEstacionamientoFlags(cmd *cobra.Command, sc *Scenario) {
	c := sc.Estacionamiento
	f := cmd.Flags()
	if f.Changed("rate") {
		c.ArrivalRate = arrivalRate
	}
	if f.Changed("closing") {
		c.ClosingHours = closingHours
	}
	if f.Changed("slots") {
		c.Slots = slots
	}
	c.Duration = uniformOverride(c.Duration, f, "dur-min", "dur-max", durMin, durMax)
}

// uniformOverride applies a pair of uniform-bound flags to cur. With neither
// flag set cur is returned unchanged. When only one is set and cur is already
// uniform, the other bound is kept from cur rather than taken from the flag
// default.
func uniformOverride(cur dist.DistSpec, f *pflag.FlagSet, minFlag, maxFlag string, lo, hi float64) dist.DistSpec {
	minSet, maxSet := f.Changed(minFlag), f.Changed(maxFlag)
	if !minSet && !maxSet {
		return cur
	}
	if cur.Type == "uniform" {
		if v, ok := cur.Params["min"]; ok && !minSet {
			lo = v
		}
		if v, ok := cur.Params["max"]; ok && !maxSet {
			hi = v
		}
	}
	return uniformSpec(lo, hi)
}

// addCommonFlags registers the flags every variant shares.
func addCommonFlags(c *cobra.Command, rate float64) {
	c.Flags().Float64Var(&arrivalRate, "rate", rate, "Arrivals per hour")
	c.Flags().Float64Var(&closingHours, "closing", 8, "Closing time in hours (no arrivals admitted after it)")
}

func addSerieFlags(c *cobra.Command) {
	addCommonFlags(c, 20)
	c.Flags().Float64Var(&s1Mean, "s1-mean", 2, "Station 1 exponential service mean (min)")
	c.Flags().Float64Var(&s2Min, "s2-min", 1, "Station 2 uniform service minimum (min)")
	c.Flags().Float64Var(&s2Max, "s2-max", 3, "Station 2 uniform service maximum (min)")
}

func addBancoFlags(c *cobra.Command) {
	addCommonFlags(c, 40)
	c.Flags().IntVar(&servers, "servers", 3, "Number of tellers")
	c.Flags().Float64Var(&svcMin, "svc-min", 0, "Uniform service minimum (min)")
	c.Flags().Float64Var(&svcMax, "svc-max", 1, "Uniform service maximum (min)")
}

func addEstacionamientoFlags(c *cobra.Command) {
	addCommonFlags(c, 10)
	c.Flags().IntVar(&slots, "slots", 6, "Number of parking slots")
	c.Flags().Float64Var(&durMin, "dur-min", 10, "Uniform stay minimum (min)")
	c.Flags().Float64Var(&durMax, "dur-max", 30, "Uniform stay maximum (min)")
}

func init() {
	addSerieFlags(serieCmd)
	addBancoFlags(bancoCmd)
	addEstacionamientoFlags(estacionamientoCmd)

	rootCmd.AddCommand(serieCmd)
	rootCmd.AddCommand(bancoCmd)
	rootCmd.AddCommand(estacionamientoCmd)
}
