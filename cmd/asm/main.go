// Command asm assembles iris or cisc0 source into the shared object file
// format (spec.md §4.4, §6), following the teacher's main.go flag-based
// CLI shape.
package main

import (
	"flag"
	"fmt"
	"os"

	cisc0asm "github.com/lookbusy1344/arm-emulator/cisc0/asm"
	"github.com/lookbusy1344/arm-emulator/config"
	irisasm "github.com/lookbusy1344/arm-emulator/iris/asm"
	"github.com/lookbusy1344/arm-emulator/loader"
)

var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	var (
		showVersion = flag.Bool("version", false, "Show version information")
		dialect     = flag.String("dialect", "", "Target dialect: iris or cisc0 (default from config)")
		output      = flag.String("o", "", "Output object file path (default: <input>.obj)")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("retrovm-asm %s (%s)\n", Version, Commit)
		return
	}

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: asm [flags] <source.asm>")
		os.Exit(2)
	}
	inputPath := flag.Arg(0)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	dialectName := *dialect
	if dialectName == "" {
		dialectName = cfg.Assembler.DefaultDialect
	}

	source, err := os.ReadFile(inputPath) // #nosec G304 -- user-supplied source path
	if err != nil {
		fmt.Fprintf(os.Stderr, "reading %s: %v\n", inputPath, err)
		os.Exit(1)
	}

	var records []loader.Record
	switch dialectName {
	case "iris":
		records, err = irisasm.Assemble(inputPath, string(source))
	case "cisc0":
		records, err = cisc0asm.Assemble(inputPath, string(source))
	default:
		fmt.Fprintf(os.Stderr, "unknown dialect %q\n", dialectName)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "assembling %s: %v\n", inputPath, err)
		os.Exit(1)
	}

	outputPath := *output
	if outputPath == "" {
		outputPath = inputPath + ".obj"
	}
	outFile, err := os.Create(outputPath) // #nosec G304 -- user-supplied output path
	if err != nil {
		fmt.Fprintf(os.Stderr, "creating %s: %v\n", outputPath, err)
		os.Exit(1)
	}
	defer outFile.Close()

	w := loader.NewWriter(outFile)
	for _, rec := range records {
		if err := w.Write(rec); err != nil {
			fmt.Fprintf(os.Stderr, "writing %s: %v\n", outputPath, err)
			os.Exit(1)
		}
	}
}
