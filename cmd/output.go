package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/stochsim/stochsim/sim"
	"github.com/stochsim/stochsim/sim/sweep"
	"github.com/stochsim/stochsim/sim/trace"
)

// writeResult renders a run in the selected --output format.
func writeResult[R any](w io.Writer, title string, out sim.Output[R]) {
	switch outputFormat {
	case "summary":
		fmt.Fprintf(w, "=== %s ===\n", title)
		fmt.Fprintf(w, "Rows                 : %d\n", out.RowCount())
		for _, name := range out.Metrics.Names() {
			fmt.Fprintf(w, "%-24s: %.6f\n", name, out.Metrics[name])
		}
		if out.Trace != nil {
			s := trace.Summarize(out.Trace)
			fmt.Fprintf(w, "Traced events        : %d (max in system %d)\n", s.TotalEvents, s.MaxInSystem)
		}
	default:
		encode(w, out)
	}
}

// writeReport renders a sweep report in the selected --output format.
func writeReport(w io.Writer, title string, rep *sweep.Report) {
	switch outputFormat {
	case "summary":
		fmt.Fprintf(w, "=== %s: %d replications ===\n", title, rep.Replications)
		for _, s := range rep.Stats {
			fmt.Fprintf(w, "%-24s: %.6f ± %.6f (sd %.6f)\n", s.Name, s.Mean, s.HalfWidth, s.StdDev)
		}
	default:
		encode(w, rep)
	}
}

func encode(w io.Writer, v any) {
	var (
		data []byte
		err  error
	)
	switch outputFormat {
	case "yaml":
		data, err = yaml.Marshal(v)
	case "json":
		data, err = json.MarshalIndent(v, "", "  ")
	default:
		logrus.Fatalf("Unknown output format %q (want yaml, json or summary)", outputFormat)
	}
	if err != nil {
		logrus.Fatalf("%s marshal failed: %v", outputFormat, err)
	}
	fmt.Fprintln(w, string(data))
}
