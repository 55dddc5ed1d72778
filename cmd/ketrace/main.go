// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command ketrace parses one or more kernel event trace files and,
// once each trace has been parsed, prints the resolved symbol names of
// every StackWalk/Stack event in it, one stack per line.
//
// The trace container format itself is an external collaborator (see
// ketrace.TraceReader): this binary links against whatever reader
// NewTraceReader is set to build-side, since the container format is
// out of scope for this package.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/go-ketrace/ketrace/kesession"
	"github.com/go-ketrace/ketrace/ketrace"
)

// NewTraceReader constructs the ketrace.TraceReader used to open each
// trace path. It is nil in this distribution because the trace
// container format is a collaborator supplied by the caller's
// environment, not reimplemented here; a production build sets this to
// a concrete reader before main runs.
var NewTraceReader func() ketrace.TraceReader

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s trace.etl [trace.etl ...]\n", os.Args[0])
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}
	if NewTraceReader == nil {
		log.Fatal("ketrace: no TraceReader configured for this build")
	}

	failed := false
	for _, path := range flag.Args() {
		if err := run(path); err != nil {
			log.Printf("ketrace: %s: %v", path, err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

func run(path string) error {
	enum := kesession.NewELFSymbolEnumerator()
	sink := kesession.NewSink(enum)

	parser := ketrace.NewParser(NewTraceReader())
	if err := parser.AddTraceSource(path); err != nil {
		return err
	}

	if err := parser.Parse(sink.Handle); err != nil {
		return err
	}

	for _, names := range sink.Stacks {
		fmt.Printf("%v\n", names)
	}
	return nil
}
