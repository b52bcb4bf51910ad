package options

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/multierr"

	"github.com/katalvlaran/numpart/ckk"
	"github.com/katalvlaran/numpart/instance"
)

// Output formats.
const (
	OutputText = "text"
	OutputYAML = "yaml"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Options contains the configuration of the ckk command.
type Options struct {
	// Parts is the number of groups. Zero means "take it from --file".
	Parts int

	// Indices prints original 0-based positions instead of values.
	Indices bool

	// Method selects the search method.
	Method string

	// Ties also prints partitions tied with the best badness so far.
	Ties bool

	// BestOnly prints only the optimal partition.
	BestOnly bool

	// Workers is the number of goroutines used with BestOnly.
	Workers int

	// Limit stops after this many results (0 = unlimited).
	Limit int

	// File is a YAML instance file.
	File string

	// Random, if positive, generates this many random numbers.
	Random int
	Seed   int64
	Min    int64
	Max    int64

	// Output is the result format (text or yaml).
	Output string

	// Color controls highlighting (auto, always, never).
	Color string

	// SaveInstance receives the resolved instance as YAML before the search.
	SaveInstance string

	// MetricsFile receives Prometheus text-format metrics after the run.
	MetricsFile string

	// Timeout aborts the search after this long (0 = no timeout).
	Timeout time.Duration

	// Instance is the resolved problem (populated during Complete()).
	Instance instance.Instance `json:"-"`
}

// NewOptions creates Options with default values.
func NewOptions() *Options {
	return &Options{
		Method:  string(ckk.MethodDefault),
		Workers: 1,
		Min:     1,
		Max:     1000,
		Output:  OutputText,
		Color:   ColorAuto,
	}
}

// AddFlags adds command line flags for all Options fields.
func (o *Options) AddFlags(fs *pflag.FlagSet) {
	fs.IntVarP(&o.Parts, "parts", "k", o.Parts,
		"Number of groups to partition into (required unless set by --file)")
	fs.BoolVar(&o.Indices, "indices", o.Indices,
		"Print original 0-based positions instead of values")
	fs.StringVar(&o.Method, "method", o.Method,
		"Search method")
	fs.BoolVar(&o.Ties, "ties", o.Ties,
		"Also print partitions tied with the best badness found so far")
	fs.BoolVar(&o.BestOnly, "best", o.BestOnly,
		"Print only the optimal partition")
	fs.IntVar(&o.Workers, "workers", o.Workers,
		"Parallel workers for --best")
	fs.IntVar(&o.Limit, "limit", o.Limit,
		"Stop after this many results (0 = unlimited)")
	fs.StringVarP(&o.File, "file", "f", o.File,
		"YAML instance file (numbers, parts, indices, method)")
	fs.IntVar(&o.Random, "random", o.Random,
		"Generate this many random integers instead of reading numbers")
	fs.Int64Var(&o.Seed, "seed", o.Seed,
		"Seed for --random (0 = fixed default)")
	fs.Int64Var(&o.Min, "min", o.Min,
		"Smallest value generated by --random")
	fs.Int64Var(&o.Max, "max", o.Max,
		"Largest value generated by --random")
	fs.StringVarP(&o.Output, "output", "o", o.Output,
		"Output format: text or yaml")
	fs.StringVar(&o.Color, "color", o.Color,
		"Highlight the best result: auto, always or never")
	fs.StringVar(&o.SaveInstance, "save-instance", o.SaveInstance,
		"Write the resolved instance (numbers, parts, flags applied) to this YAML file")
	fs.StringVar(&o.MetricsFile, "metrics-file", o.MetricsFile,
		"Write Prometheus text-format search metrics to this file")
	fs.DurationVar(&o.Timeout, "timeout", o.Timeout,
		"Abort the search after this long (0 = no timeout)")
}

// Complete resolves the problem instance from exactly one source: --file,
// --random, or the positional arguments.
func (o *Options) Complete(args []string) error {
	sources := 0
	if o.File != "" {
		sources++
	}
	if o.Random > 0 {
		sources++
	}
	if len(args) > 0 {
		sources++
	}
	if sources != 1 {
		return fmt.Errorf("exactly one of --file, --random or positional numbers is required, got %d", sources)
	}

	switch {
	case o.File != "":
		in, err := instance.Load(o.File)
		if err != nil {
			return err
		}
		o.Instance = in
	case o.Random > 0:
		nums, err := instance.Random(o.Random, o.Min, o.Max, o.Seed)
		if err != nil {
			return err
		}
		o.Instance = instance.Instance{Numbers: nums}
	default:
		nums, err := parseNumbers(args)
		if err != nil {
			return err
		}
		o.Instance = instance.Instance{Numbers: nums}
	}

	// Flags override the file.
	if o.Parts != 0 {
		o.Instance.Parts = o.Parts
	}
	if o.Indices {
		o.Instance.Indices = true
	}
	if o.Instance.Method == "" || o.Method != string(ckk.MethodDefault) {
		o.Instance.Method = o.Method
	}

	return nil
}

// Validate checks all option values and the resolved instance, reporting
// every problem at once.
func (o *Options) Validate() error {
	var err error
	if o.Workers < 1 {
		err = multierr.Append(err, fmt.Errorf("workers must be at least 1, got %d", o.Workers))
	}
	if o.Limit < 0 {
		err = multierr.Append(err, fmt.Errorf("limit must not be negative, got %d", o.Limit))
	}
	if o.Timeout < 0 {
		err = multierr.Append(err, fmt.Errorf("timeout must not be negative, got %v", o.Timeout))
	}
	switch o.Output {
	case OutputText, OutputYAML:
	default:
		err = multierr.Append(err, fmt.Errorf("output must be %q or %q, got %q", OutputText, OutputYAML, o.Output))
	}
	switch o.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		err = multierr.Append(err, fmt.Errorf("color must be auto, always or never, got %q", o.Color))
	}
	if o.BestOnly && o.Ties {
		err = multierr.Append(err, fmt.Errorf("--best and --ties are mutually exclusive"))
	}
	if o.Workers > 1 && !o.BestOnly {
		err = multierr.Append(err, fmt.Errorf("--workers requires --best"))
	}

	return multierr.Append(err, o.Instance.Validate())
}

// SearchOptions translates the options into ckk options.
func (o *Options) SearchOptions() []ckk.Option {
	opts := append(o.Instance.Options(), ckk.WithTies(o.Ties))
	if o.Limit > 0 {
		opts = append(opts, ckk.WithMaxResults(o.Limit))
	}
	if o.Workers > 1 {
		opts = append(opts, ckk.WithWorkers(o.Workers))
	}

	return opts
}

func parseNumbers(args []string) ([]float64, error) {
	nums := make([]float64, len(args))
	for i, a := range args {
		x, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		nums[i] = x
	}

	return nums, nil
}
