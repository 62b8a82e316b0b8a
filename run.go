// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package seqsynth

import (
	"bytes"
	"context"
	"os"
	"path/filepath"

	"github.com/db47h/seqsynth/gates"
	"github.com/pkg/errors"
)

// An Option configures Run.
//
type Option interface {
	// noop method
	runOpt()
}

type rendererOption struct{ r gates.Renderer }
type moduleOption struct{ name string }
type aigerOption struct{}
type skipVerifyOption struct{}
type workersOption struct{ n int }

func (rendererOption) runOpt()   {}
func (moduleOption) runOpt()     {}
func (aigerOption) runOpt()      {}
func (skipVerifyOption) runOpt() {}
func (workersOption) runOpt()    {}

// WithRenderer sets the renderer of equation diagrams.
//
// Default value is gates.SVG.
func WithRenderer(r gates.Renderer) Option { return rendererOption{r} }

// ModuleName sets the name of the Verilog module. The testbench is named
// after it with a _tb suffix.
//
// Default value is "fsm".
func ModuleName(name string) Option { return moduleOption{name} }

// WithAiger enables the export of the machine as an ASCII AIGER file.
func WithAiger() Option { return aigerOption{} }

// SkipVerification disables the formal and simulation checks of the design.
func SkipVerification() Option { return skipVerifyOption{} }

// SimWorkers sets the number of goroutines of the gate-level simulator. If
// less or equal to 0, GOMAXPROCS is used.
//
// Default value is 1.
func SimWorkers(n int) Option { return workersOption{n} }

type config struct {
	renderer gates.Renderer
	module   string
	aiger    bool
	verify   bool
	workers  int
}

func newConfig(opts []Option) (*config, error) {
	cfg := &config{renderer: gates.SVG{}, module: DefaultModule, verify: true, workers: 1}
	for _, opt := range opts {
		switch o := opt.(type) {
		case rendererOption:
			if o.r == nil {
				return nil, errors.New("nil renderer")
			}
			cfg.renderer = o.r
		case moduleOption:
			if !isIdent(o.name) {
				return nil, errors.Errorf("invalid module name %q", o.name)
			}
			cfg.module = o.name
		case aigerOption:
			cfg.aiger = true
		case skipVerifyOption:
			cfg.verify = false
		case workersOption:
			cfg.workers = o.n
		default:
			return nil, errors.Errorf("unsupported option %T", opt)
		}
	}
	return cfg, nil
}

// isIdent returns true if s is a simple Verilog identifier.
func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, c := range s {
		switch {
		case c == '_', 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case '0' <= c && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// Artifacts is the result of a Run.
//
type Artifacts struct {
	Design    *Design
	Dir       string
	Files     []string // paths of the files written, in writing order
	Module    string   // Verilog module text
	Testbench string   // Verilog testbench text
}

type file struct {
	name string
	data []byte
}

// ResetDir removes dir and its contents, then creates it again, empty.
//
func ResetDir(dir string) error {
	if dir == "" {
		return errors.New("empty output directory name")
	}
	if err := os.RemoveAll(dir); err != nil {
		return errors.Wrap(err, "reset output directory")
	}
	return errors.Wrap(os.MkdirAll(dir, 0755), "reset output directory")
}

// Run derives the design of seq with flip-flops of type ff and writes its
// artifacts to dir:
//
//	<signal>.<ext>     diagram of the gate network of every equation
//	<module>.v         Verilog module
//	<module>_tb.v      Verilog testbench
//	<module>.aag       AIGER model, if enabled with WithAiger
//
// dir is reset before anything else. All artifacts are produced in memory
// before the first file is written, so that dir is left empty whenever Run
// fails, including when ctx is canceled or a write fails.
//
func Run(ctx context.Context, seq Sequence, ff FlipFlop, dir string, opts ...Option) (*Artifacts, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	if err = ResetDir(dir); err != nil {
		return nil, err
	}

	d, err := Derive(seq, ff)
	if err != nil {
		return nil, err
	}
	if err = ctx.Err(); err != nil {
		return nil, err
	}
	if cfg.verify {
		if err = d.Verify(cfg.workers); err != nil {
			return nil, err
		}
		if err = ctx.Err(); err != nil {
			return nil, err
		}
	}

	a := &Artifacts{
		Design:    d,
		Dir:       dir,
		Module:    EmitModule(d, cfg.module),
		Testbench: EmitTestbench(d, cfg.module),
	}
	var fs []file
	for _, eq := range d.Equations {
		name := eq.Signal.Name()
		data, err := gates.RenderExpr(cfg.renderer, eq.Expr, name)
		if err != nil {
			return nil, err
		}
		fs = append(fs, file{name + "." + cfg.renderer.Ext(), data})
	}
	fs = append(fs,
		file{cfg.module + ".v", []byte(a.Module)},
		file{cfg.module + "_tb.v", []byte(a.Testbench)})
	if cfg.aiger {
		var b bytes.Buffer
		if err = d.Machine().WriteAiger(&b); err != nil {
			return nil, err
		}
		fs = append(fs, file{cfg.module + ".aag", b.Bytes()})
	}

	if err = ctx.Err(); err != nil {
		return nil, err
	}
	for _, f := range fs {
		path := filepath.Join(dir, f.name)
		if err = os.WriteFile(path, f.data, 0644); err != nil {
			if rerr := ResetDir(dir); rerr != nil {
				return nil, errors.Wrap(err, rerr.Error())
			}
			return nil, errors.Wrap(err, "write artifacts")
		}
		a.Files = append(a.Files, path)
	}
	return a, nil
}
