// Package sweep runs independent replications of a simulation in parallel.
//
// Each replication gets its own generator seeded from a Partition, so results
// do not depend on worker count or completion order.
package sweep

import (
	"context"
	"errors"
	"math"
	"runtime"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/stochsim/stochsim/sim"
	"github.com/stochsim/stochsim/sim/rng"
)

// RunFunc performs one replication with the given seed.
// It must not share mutable state with other calls.
type RunFunc func(seed int64) sim.Result

// Config controls a sweep.
type Config struct {
	Replications  int
	Workers       int   // <= 0 means runtime.NumCPU()
	MasterSeed    int64 // per-replication seeds are derived from this
	ProgressEvery int   // log progress every N completed replications; 0 disables
}

// Stat summarizes one metric across replications.
type Stat struct {
	Name      string  `yaml:"name" json:"name"`
	Mean      float64 `yaml:"mean" json:"mean"`
	StdDev    float64 `yaml:"std_dev" json:"std_dev"`
	HalfWidth float64 `yaml:"ci95_half_width" json:"ci95_half_width"`
	N         int     `yaml:"n" json:"n"`
}

// Report is the outcome of a sweep.
type Report struct {
	Replications int     `yaml:"replications" json:"replications"`
	Seeds        []int64 `yaml:"seeds" json:"seeds"`
	Stats        []Stat  `yaml:"stats" json:"stats"`

	// Samples holds each metric's values in replication order.
	Samples map[string][]float64 `yaml:"-" json:"-"`
}

// Stat returns the summary for name, or false if no replication reported it.
func (r *Report) Stat(name string) (Stat, bool) {
	for _, s := range r.Stats {
		if s.Name == name {
			return s, true
		}
	}
	return Stat{}, false
}

// Run executes cfg.Replications calls of fn across cfg.Workers goroutines.
// Cancelling ctx stops dispatching new replications; Run then returns ctx.Err().
func Run(ctx context.Context, cfg Config, fn RunFunc) (*Report, error) {
	if cfg.Replications <= 0 {
		return nil, errors.New("sweep: replications must be > 0")
	}
	if cfg.Replications == 1 {
		logrus.Warnf("sweep: a single replication has no spread, confidence half-widths will be 0")
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	workers = min(workers, cfg.Replications)

	part := rng.NewPartition(cfg.MasterSeed)
	seeds := make([]int64, cfg.Replications)
	for i := range seeds {
		seeds[i] = part.Replication(i)
	}

	results := make([]sim.Result, cfg.Replications)
	jobs := make(chan int)
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		done int
	)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = fn(seeds[i])
				mu.Lock()
				done++
				if cfg.ProgressEvery > 0 && done%cfg.ProgressEvery == 0 {
					logrus.Infof("sweep: %d/%d replications complete", done, cfg.Replications)
				}
				mu.Unlock()
			}
		}()
	}

	var err error
dispatch:
	for i := 0; i < cfg.Replications; i++ {
		if err = ctx.Err(); err != nil {
			break
		}
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break dispatch
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()
	if err != nil {
		return nil, err
	}
	return summarize(seeds, results), nil
}

func summarize(seeds []int64, results []sim.Result) *Report {
	samples := make(map[string][]float64)
	for _, res := range results {
		for name, v := range res.MetricValues() {
			samples[name] = append(samples[name], v)
		}
	}
	names := make([]string, 0, len(samples))
	for name := range samples {
		names = append(names, name)
	}
	sort.Strings(names)

	stats := make([]Stat, 0, len(names))
	for _, name := range names {
		stats = append(stats, describe(name, samples[name]))
	}
	return &Report{Replications: len(results), Seeds: seeds, Stats: stats, Samples: samples}
}

// describe computes mean, sample standard deviation and the Student-t 95%
// confidence half-width. Fewer than two values give zero spread.
func describe(name string, xs []float64) Stat {
	s := Stat{Name: name, N: len(xs)}
	if len(xs) == 0 {
		return s
	}
	if len(xs) == 1 {
		s.Mean = xs[0]
		return s
	}
	s.Mean, s.StdDev = stat.MeanStdDev(xs, nil)
	t := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(len(xs) - 1)}.Quantile(0.975)
	s.HalfWidth = t * s.StdDev / math.Sqrt(float64(len(xs)))
	return s
}
