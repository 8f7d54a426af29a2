// Copyright 2025 Tenso Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Command tenso runs a single binary elementwise operation against two
// flat float32 operands read from the command line, printing the result.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/tenso-ml/tenso/mat"

	"github.com/tenso-ml/tenso/binaryop"
)

const version = "v0.0.1-dev"

var opNames = map[string]binaryop.Operation{
	"add":  binaryop.Add,
	"sub":  binaryop.Sub,
	"mul":  binaryop.Mul,
	"div":  binaryop.Div,
	"max":  binaryop.Max,
	"min":  binaryop.Min,
	"pow":  binaryop.Pow,
	"rsub": binaryop.RSub,
	"rdiv": binaryop.RDiv,
	"rpow": binaryop.RPow,
}

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("tenso %s\n", version)
		return
	}

	op := flag.String("op", "add", "operation: add sub mul div max min pow rsub rdiv rpow")
	a := flag.String("a", "", "comma-separated float32 values for operand A")
	b := flag.String("b", "", "comma-separated float32 values for operand B")
	threads := flag.Int("threads", 1, "worker count")
	flag.Parse()

	operation, ok := opNames[strings.ToLower(*op)]
	if !ok {
		fmt.Fprintf(os.Stderr, "tenso: unknown operation %q\n", *op)
		os.Exit(1)
	}

	aVals, err := parseFloats(*a)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tenso: operand A: %v\n", err)
		os.Exit(1)
	}
	bVals, err := parseFloats(*b)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tenso: operand B: %v\n", err)
		os.Exit(1)
	}

	opt := binaryop.DefaultOption().WithThreads(*threads)
	out, err := binaryop.Forward(mat.FromSlice1D(aVals), mat.FromSlice1D(bVals), operation, opt)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tenso: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(formatFloats(out.Flat()))
}

func parseFloats(s string) ([]float32, error) {
	if s == "" {
		return nil, fmt.Errorf("no values given")
	}
	parts := strings.Split(s, ",")
	out := make([]float32, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return nil, fmt.Errorf("value %q: %w", p, err)
		}
		out[i] = float32(v)
	}
	return out, nil
}

func formatFloats(vals []float32) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.FormatFloat(float64(v), 'g', -1, 32)
	}
	return strings.Join(parts, ",")
}
