package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/numpart/ckk"
	"github.com/katalvlaran/numpart/cmd/ckk/options"
	"github.com/katalvlaran/numpart/instance"
)

// yamlResult is one result in the yaml output.
type yamlResult struct {
	Partition [][]float64 `yaml:"partition,omitempty,flow"`
	Indices   [][]int     `yaml:"indices,omitempty,flow"`
	Sizes     []float64   `yaml:"sizes,flow"`
	Badness   float64     `yaml:"badness"`
}

// yamlReport is the yaml output document.
type yamlReport struct {
	Numbers  []float64    `yaml:"numbers,flow"`
	Parts    int          `yaml:"parts"`
	Total    float64      `yaml:"total"`
	Complete bool         `yaml:"complete"`
	Results  []yamlResult `yaml:"results"`
}

// printer streams text results as they arrive and buffers yaml results
// until the search ends.
type printer struct {
	out     io.Writer
	format  string
	best    *color.Color
	results []ckk.Result
}

func newPrinter(out io.Writer, o *options.Options) *printer {
	best := color.New(color.FgGreen, color.Bold)
	switch o.Color {
	case options.ColorAlways:
		best.EnableColor()
	case options.ColorNever:
		best.DisableColor()
	default:
		if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			best.EnableColor()
		} else {
			best.DisableColor()
		}
	}

	return &printer{out: out, format: o.Output, best: best}
}

func (p *printer) count() int { return len(p.results) }

// add records res and, in text mode, prints it immediately.
func (p *printer) add(res ckk.Result) {
	p.results = append(p.results, res)
	if p.format == options.OutputText {
		fmt.Fprintf(p.out, "#%d %s\n", len(p.results), formatResult(res))
	}
}

// finish writes the trailer (text) or the whole document (yaml). A complete
// run marks its last result as optimal.
func (p *printer) finish(in instance.Instance, complete bool) error {
	if p.format == options.OutputYAML {
		rep := yamlReport{Numbers: in.Numbers, Parts: in.Parts, Total: in.Total(), Complete: complete}
		for _, r := range p.results {
			rep.Results = append(rep.Results, yamlResult{
				Partition: r.Partition,
				Indices:   r.Indices,
				Sizes:     r.Sizes,
				Badness:   r.Badness,
			})
		}
		enc := yaml.NewEncoder(p.out)
		enc.SetIndent(2)
		if err := enc.Encode(rep); err != nil {
			return err
		}

		return enc.Close()
	}

	if len(p.results) == 0 {
		_, err := fmt.Fprintln(p.out, "no partition found")

		return err
	}
	last := p.results[len(p.results)-1]
	if complete {
		_, err := p.best.Fprintf(p.out, "optimal: #%d %s\n", len(p.results), formatResult(last))

		return err
	}
	_, err := fmt.Fprintf(p.out, "best so far: #%d %s\n", len(p.results), formatResult(last))

	return err
}

// formatResult renders "badness=3 sizes=[8 11 11] groups=[[8] [4 7] [5 6]]".
func formatResult(r ckk.Result) string {
	var b strings.Builder
	b.WriteString("badness=")
	b.WriteString(formatFloat(r.Badness))
	b.WriteString(" sizes=")
	writeFloats(&b, r.Sizes)
	b.WriteString(" groups=[")
	if r.Indices != nil {
		for i, g := range r.Indices {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteByte('[')
			for j, x := range g {
				if j > 0 {
					b.WriteByte(' ')
				}
				b.WriteString(strconv.Itoa(x))
			}
			b.WriteByte(']')
		}
	} else {
		for i, g := range r.Partition {
			if i > 0 {
				b.WriteByte(' ')
			}
			writeFloats(&b, g)
		}
	}
	b.WriteByte(']')

	return b.String()
}

func writeFloats(b *strings.Builder, xs []float64) {
	b.WriteByte('[')
	for i, x := range xs {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(formatFloat(x))
	}
	b.WriteByte(']')
}

func formatFloat(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}
