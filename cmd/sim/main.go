// Command sim loads an assembled object file and runs it against either
// VM dialect, optionally under the interactive monitor, following the
// teacher's main.go flag-based CLI shape.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lookbusy1344/arm-emulator/cisc0"
	"github.com/lookbusy1344/arm-emulator/config"
	"github.com/lookbusy1344/arm-emulator/core"
	"github.com/lookbusy1344/arm-emulator/internal/monitor"
	"github.com/lookbusy1344/arm-emulator/iris"
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
		monitorMode = flag.Bool("monitor", false, "Run under the interactive monitor")
		maxCycles   = flag.Uint64("max-cycles", 0, "Maximum cycles before forced halt (0: use config default)")
		dumpPath    = flag.String("dump", "", "Write final state dump to this path after halting")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("retrovm-sim %s (%s)\n", Version, Commit)
		return
	}

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: sim [flags] <object-file>")
		os.Exit(2)
	}
	objPath := flag.Arg(0)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	dialectName := *dialect
	if dialectName == "" {
		dialectName = cfg.Assembler.DefaultDialect
	}
	kind, ok := core.ParseCoreKind(dialectName)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown dialect %q\n", dialectName)
		os.Exit(2)
	}

	cycles := *maxCycles
	if cycles == 0 {
		cycles = cfg.Execution.MaxCycles
	}

	objFile, err := os.Open(objPath) // #nosec G304 -- user-supplied object path
	if err != nil {
		fmt.Fprintf(os.Stderr, "opening %s: %v\n", objPath, err)
		os.Exit(1)
	}
	defer objFile.Close()

	var addressMax uint32 = cisc0.AddressSpaceSize - 1
	if kind == core.Iris {
		addressMax = iris.CodeSize*2 - 1
	}
	records, err := loader.ReadAll(objFile, addressMax)
	if err != nil {
		fmt.Fprintf(os.Stderr, "reading %s: %v\n", objPath, err)
		os.Exit(1)
	}

	var vm core.Core
	switch kind {
	case core.Iris:
		v := iris.NewVM()
		v.Initialize()
		if err := v.LoadObject(records); err != nil {
			fmt.Fprintf(os.Stderr, "loading %s: %v\n", objPath, err)
			os.Exit(1)
		}
		vm = v
	case core.Cisc0:
		v := cisc0.NewVM()
		v.Initialize()
		if err := v.LoadObject(records); err != nil {
			fmt.Fprintf(os.Stderr, "loading %s: %v\n", objPath, err)
			os.Exit(1)
		}
		vm = v
	}

	if *monitorMode {
		m := monitor.New(vm, cfg.Monitor.NumberFormat)
		if err := m.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "monitor: %v\n", err)
			os.Exit(1)
		}
	} else {
		var n uint64
		for !vm.Halted() {
			if cycles > 0 && n >= cycles {
				fmt.Fprintf(os.Stderr, "halted: exceeded max cycles (%d)\n", cycles)
				break
			}
			cont, err := vm.Cycle()
			if err != nil {
				fmt.Fprintf(os.Stderr, "fault at cycle %d: %v\n", n, err)
				os.Exit(1)
			}
			n++
			if !cont {
				break
			}
		}
	}

	if *dumpPath != "" {
		if err := os.WriteFile(*dumpPath, vm.Dump(), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "writing dump %s: %v\n", *dumpPath, err)
			os.Exit(1)
		}
	}
}
