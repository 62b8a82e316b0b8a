// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Command seqsynth synthesizes a synchronous state machine stepping through
// a sequence of states and writes its equation diagrams, Verilog module and
// testbench to an output directory.
//
// Usage:
//
//	seqsynth [flags] [state...]
//
// States given as arguments take precedence over the -seq flag.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/db47h/seqsynth"
	"github.com/db47h/seqsynth/gates"
)

func main() {
	var (
		seqText  = flag.String("seq", "0 1 3 2", "state `sequence`, whitespace separated")
		ffName   = flag.String("ff", "D", "flip-flop `type`: D, T, JK or SR")
		outDir   = flag.String("out", "output", "output `directory`, cleared on every run")
		format   = flag.String("format", "svg", "diagram `format`: svg or dot")
		module   = flag.String("module", seqsynth.DefaultModule, "Verilog module `name`")
		aag      = flag.Bool("aiger", false, "also write the machine in ASCII AIGER format")
		noVerify = flag.Bool("noverify", false, "skip formal and simulation checks")
		workers  = flag.Int("workers", 1, "simulator goroutines, 0 for GOMAXPROCS")
		verbose  = flag.Bool("v", false, "print the design summary and characteristic table")
	)
	flag.Parse()

	log.SetFlags(0)
	log.SetPrefix("seqsynth: ")

	text := *seqText
	if flag.NArg() > 0 {
		text = strings.Join(flag.Args(), " ")
	}
	seq, err := seqsynth.ParseSequence(text)
	if err != nil {
		log.Fatal(err)
	}
	ff, err := seqsynth.ParseFlipFlop(*ffName)
	if err != nil {
		log.Fatal(err)
	}
	r, err := gates.ParseRenderer(*format)
	if err != nil {
		log.Fatal(err)
	}

	opts := []seqsynth.Option{seqsynth.WithRenderer(r), seqsynth.ModuleName(*module), seqsynth.SimWorkers(*workers)}
	if *aag {
		opts = append(opts, seqsynth.WithAiger())
	}
	if *noVerify {
		opts = append(opts, seqsynth.SkipVerification())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a, err := seqsynth.Run(ctx, seq, ff, *outDir, opts...)
	if err != nil {
		log.Fatal(err)
	}

	if *verbose {
		log.Printf("%s flip-flop characteristic table:", ff.Name())
		if err = seqsynth.WriteCharacteristic(os.Stdout, ff); err != nil {
			log.Fatal(err)
		}
		fmt.Println()
		if err = a.Design.WriteSummary(os.Stdout); err != nil {
			log.Fatal(err)
		}
		fmt.Println()
	} else {
		for _, eq := range a.Design.Equations {
			fmt.Println(eq)
		}
	}
	for _, f := range a.Files {
		log.Print("wrote ", f)
	}
}
