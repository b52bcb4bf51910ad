// Package instance describes partitioning problems as data: a YAML document
// naming the numbers, the part count and the output form, plus seeded
// random generation (rng.go).
//
// Example document:
//
//	numbers: [4, 5, 6, 7, 8]
//	parts: 3
//	indices: false
//	method: default
package instance

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/numpart/ckk"
)

var (
	// ErrInvalidSize is returned by Random for a non-positive count.
	ErrInvalidSize = errors.New("instance: invalid size")

	// ErrInvalidRange is returned by Random for an empty or negative value range.
	ErrInvalidRange = errors.New("instance: invalid value range")

	// ErrInvalidInstance wraps every problem found by Validate.
	ErrInvalidInstance = errors.New("instance: invalid instance")
)

// Instance is one partitioning problem.
type Instance struct {
	Numbers []float64 `yaml:"numbers"`
	Parts   int       `yaml:"parts"`
	Indices bool      `yaml:"indices,omitempty"`
	Method  string    `yaml:"method,omitempty"`
}

// Decode reads one YAML instance from r. Unknown fields are rejected.
func Decode(r io.Reader) (Instance, error) {
	var in Instance
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&in); err != nil {
		return Instance{}, fmt.Errorf("instance: decode: %w", err)
	}

	return in, nil
}

// Load reads and decodes the YAML instance stored at path.
func Load(path string) (Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return Instance{}, fmt.Errorf("instance: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Encode writes in as YAML.
func (in Instance) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(in); err != nil {
		return fmt.Errorf("instance: encode: %w", err)
	}

	return enc.Close()
}

// Validate reports every problem of the instance at once. Each problem wraps
// ErrInvalidInstance; multierr.Errors splits the aggregate.
func (in Instance) Validate() error {
	var err error
	if len(in.Numbers) == 0 {
		err = multierr.Append(err, fmt.Errorf("%w: no numbers", ErrInvalidInstance))
	}
	if in.Parts < 1 || in.Parts > len(in.Numbers) {
		err = multierr.Append(err, fmt.Errorf("%w: parts=%d with %d numbers", ErrInvalidInstance, in.Parts, len(in.Numbers)))
	}
	for i, x := range in.Numbers {
		if math.IsNaN(x) || math.IsInf(x, 0) || x < 0 {
			err = multierr.Append(err, fmt.Errorf("%w: numbers[%d]=%v", ErrInvalidInstance, i, x))
		}
	}
	if in.Method != "" && ckk.Method(in.Method) != ckk.MethodDefault {
		err = multierr.Append(err, fmt.Errorf("%w: method %q", ErrInvalidInstance, in.Method))
	}

	return err
}

// Options translates the instance fields into search options.
func (in Instance) Options() []ckk.Option {
	opts := []ckk.Option{ckk.WithReturnIndices(in.Indices)}
	if in.Method != "" {
		opts = append(opts, ckk.WithMethod(ckk.Method(in.Method)))
	}

	return opts
}

// Total returns the sum of all numbers.
func (in Instance) Total() float64 {
	var s float64
	for _, x := range in.Numbers {
		s += x
	}

	return s
}
