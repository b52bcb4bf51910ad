package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/katalvlaran/numpart/ckk"
	"github.com/katalvlaran/numpart/cmd/ckk/options"
	"github.com/katalvlaran/numpart/instance"
	"github.com/katalvlaran/numpart/metrics"
)

func main() {
	cmd := newCommand(os.Stdout)

	// Set up signal handling for graceful shutdown
	ctx := setupSignalHandler()
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// newCommand builds the root command writing results to out.
func newCommand(out io.Writer) *cobra.Command {
	o := options.NewOptions()

	cmd := &cobra.Command{
		Use:   "ckk [flags] [numbers...]",
		Short: "Partition numbers into K groups with equal sums as far as possible",
		Long: `ckk runs the Complete Karmarkar-Karp search and prints partitions
of the input into K groups, each strictly better than the previous one:
- the first line is the Karmarkar-Karp differencing partition
- the last line of a complete run is an optimal partition

Numbers come from the positional arguments, a YAML file (--file)
or a seeded random generator (--random).`,
		Example: `  ckk -k 3 4 5 6 7 8
  ckk -k 2 --indices 8 6 7 5 4
  ckk --random 40 --seed 7 -k 7 --best --workers 4
  ckk -f instance.yaml -o yaml
  ckk --random 20 --seed 9 -k 3 --save-instance run.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(args); err != nil {
				return err
			}
			if err := o.Validate(); err != nil {
				return err
			}

			return run(cmd.Context(), o, cmd.OutOrStdout())
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	fs := cmd.Flags()
	o.AddFlags(fs)
	klogFlags := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(klogFlags)
	fs.AddGoFlagSet(klogFlags)
	cmd.SetOut(out)

	return cmd
}

// run executes the search described by o and prints the results.
func run(ctx context.Context, o *options.Options, out io.Writer) error {
	logger := klog.FromContext(ctx)
	in := o.Instance

	if o.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.Timeout)
		defer cancel()
	}

	if o.SaveInstance != "" {
		if err := saveInstance(o.SaveInstance, in); err != nil {
			return err
		}
		logger.V(2).Info("Wrote instance", "path", o.SaveInstance)
	}

	opts := append(o.SearchOptions(), ckk.WithContext(ctx), ckk.WithLogger(logger))
	var reg *prometheus.Registry
	if o.MetricsFile != "" {
		reg = prometheus.NewRegistry()
		opts = append(opts, ckk.WithObserver(metrics.NewPrometheus(reg, "")))
	}

	logger.V(2).Info("Starting search", "numbers", len(in.Numbers), "parts", in.Parts,
		"best", o.BestOnly, "workers", o.Workers, "ties", o.Ties)

	p := newPrinter(out, o)
	var searchErr error
	if o.BestOnly {
		res, err := ckk.Best(in.Numbers, in.Parts, opts...)
		if err != nil && !errors.Is(err, ckk.ErrCanceled) {
			return err
		}
		if res.Sizes != nil {
			p.add(res)
		}
		searchErr = err
	} else {
		s, err := ckk.CompleteKarmarkarKarp(in.Numbers, in.Parts, opts...)
		if err != nil {
			return err
		}
		for res := range s.All() {
			p.add(res)
		}
		searchErr = s.Err()
		st := s.Stats()
		logger.V(2).Info("Search finished", "nodes", st.Nodes, "pruned", st.Pruned,
			"skipped", st.Skipped, "results", st.Emitted)
	}

	complete := searchErr == nil && (o.BestOnly || o.Limit == 0 || p.count() < o.Limit)
	if err := p.finish(in, complete); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}

	if reg != nil {
		if err := prometheus.WriteToTextfile(o.MetricsFile, reg); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
		logger.V(2).Info("Wrote metrics", "path", o.MetricsFile)
	}

	if searchErr != nil {
		return fmt.Errorf("search incomplete: %w", searchErr)
	}

	return nil
}

// saveInstance writes in to path as YAML, so a --random run can be replayed with --file.
func saveInstance(path string, in instance.Instance) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to save instance: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("failed to save instance: %w", cerr)
		}
	}()
	if err = in.Encode(f); err != nil {
		return fmt.Errorf("failed to save instance: %w", err)
	}

	return nil
}

// setupSignalHandler returns a context that is cancelled on the first
// SIGINT/SIGTERM; a second signal exits immediately.
func setupSignalHandler() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	c := make(chan os.Signal, 2)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		cancel()
		<-c
		os.Exit(1) // second signal. Exit directly.
	}()

	return ctx
}
