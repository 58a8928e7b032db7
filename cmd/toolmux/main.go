package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"

	"github.com/reoring/toolmux"
)

func main() {
	var (
		manifestPath string
		out          string
		reportPath   string
		strict       bool
		verbose      bool
	)
	flag.StringVar(&manifestPath, "manifest", "toolmux.yaml", "group manifest to generate from")
	flag.StringVar(&out, "o", "", "override the manifest's output path")
	flag.StringVar(&reportPath, "report", "", "write a JSON generation report to this path")
	flag.BoolVar(&strict, "strict", false, "treat type conflicts as errors instead of warnings")
	flag.BoolVar(&verbose, "v", false, "enable verbose logs")
	flag.Parse()

	logf := func(format string, a ...any) {
		if verbose {
			fmt.Fprintf(os.Stderr, format+"\n", a...)
		}
	}

	man, err := toolmux.LoadManifest(manifestPath)
	if err != nil {
		fatalf("%v", err)
	}
	if out != "" {
		man.Output = out
	}
	logf("loaded %s: %d groups", manifestPath, len(man.Groups))

	opts := toolmux.Options{}
	if strict {
		opts.OnConflict = toolmux.ConflictFail
	}
	code, rep, err := toolmux.Generate(man, opts)
	if err != nil {
		fatalf("%v", err)
	}
	for _, w := range rep.Warnings {
		fmt.Fprintf(os.Stderr, "toolmux: warning: %s\n", w)
	}

	if err := os.MkdirAll(filepath.Dir(man.Output), 0o755); err != nil {
		fatalf("creating output dir: %v", err)
	}
	if err := os.WriteFile(man.Output, code, 0o644); err != nil {
		fatalf("writing output: %v", err)
	}
	if reportPath != "" {
		b, err := json.MarshalIndent(rep, "", "  ")
		if err != nil {
			fatalf("encoding report: %v", err)
		}
		if err := os.WriteFile(reportPath, append(b, '\n'), 0o644); err != nil {
			fatalf("writing report: %v", err)
		}
		logf("wrote report: %s", reportPath)
	}
	fmt.Printf("wrote %s\n", man.Output)
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
