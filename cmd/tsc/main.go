// tsc - form-factor table codec CLI
//
// Usage:
//
//	tsc info <file>             Print header entries and table counts
//	tsc convert <in> <out>      Convert between TSC and TSCB (by output extension)
//	tsc get <label> <file>      Print one scatterer's form factors
//	tsc version                 Print version info
//
// Input files may be TSC text or TSCB binary regardless of extension,
// and may be gzip-compressed. A .gz output suffix compresses.
package main

import (
	"fmt"
	"os"

	"github.com/qcrbox/tsc/tsc"
)

const version = "0.2.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch cmd := os.Args[1]; cmd {
	case "info":
		if len(os.Args) != 3 {
			fatal("usage: tsc info <file>")
		}
		cmdInfo(os.Args[2])

	case "convert":
		if len(os.Args) != 4 {
			fatal("usage: tsc convert <in> <out>")
		}
		cmdConvert(os.Args[2], os.Args[3])

	case "get":
		if len(os.Args) != 4 {
			fatal("usage: tsc get <label> <file>")
		}
		cmdGet(os.Args[2], os.Args[3])

	case "version":
		fmt.Printf("tsc %s\n", version)

	case "help", "-h", "--help":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "tsc: unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func cmdInfo(path string) {
	t, err := tsc.ReadFile(path)
	if err != nil {
		fatal("read: %v", err)
	}
	for _, e := range t.HeaderEntries() {
		if e.Key == tsc.KeyScatterers {
			continue
		}
		fmt.Printf("%s: %s\n", e.Key, e.Value)
	}
	fmt.Printf("scatterers: %d\n", len(t.Scatterers()))
	fmt.Printf("reflections: %d\n", t.Len())
}

func cmdConvert(in, out string) {
	t, err := tsc.ReadFile(in)
	if err != nil {
		fatal("read %s: %v", in, err)
	}
	if err := tsc.WriteFile(out, t); err != nil {
		fatal("write %s: %v", out, err)
	}
}

func cmdGet(label, path string) {
	t, err := tsc.ReadFile(path)
	if err != nil {
		fatal("read %s: %v", path, err)
	}
	col, err := t.LookupOne(label)
	if err != nil {
		fatal("%v", err)
	}
	for _, r := range t.Reflections() {
		v := col[r.HKL]
		fmt.Printf("%s %g,%g\n", r.HKL, real(v), imag(v))
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `tsc - form-factor table codec
Usage:
  tsc info <file>             Print header entries and table counts
  tsc convert <in> <out>      Convert between TSC and TSCB (by output extension)
  tsc get <label> <file>      Print one scatterer's form factors
  tsc version                 Print version info`)
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "tsc: "+format+"\n", args...)
	os.Exit(1)
}
