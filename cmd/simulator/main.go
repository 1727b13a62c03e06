package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jasonKoogler/tomasulo-sim/internal/asm"
	"github.com/jasonKoogler/tomasulo-sim/internal/config"
	"github.com/jasonKoogler/tomasulo-sim/internal/diag"
	"github.com/jasonKoogler/tomasulo-sim/internal/report"
	"github.com/jasonKoogler/tomasulo-sim/internal/simulator"
	"github.com/jasonKoogler/tomasulo-sim/internal/tomasulo"
)

func main() {
	configPath := flag.String("config", "configs/default.yaml", "Path to the configuration file")
	programPath := flag.String("program", "", "Path to the instruction listing (prompted on stdin if omitted)")
	verbose := flag.Bool("v", false, "Enable verbose (debug) logging")
	quiet := flag.Bool("quiet", false, "Suppress the per-cycle trace; print only the final summary")
	flag.Parse()

	logger := diag.New(diag.DefaultConfig())
	if *verbose {
		logger.SetLevel(diag.LevelDebug)
	}
	diag.SetDefault(logger)

	logger.Info("Tomasulo+ROB Pipeline Simulator")

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Warnf("failed to load configuration from %s, falling back to defaults: %v", *configPath, err)
		cfg = config.DefaultConfig()
	}

	fmt.Println("\nConfiguration Summary:")
	fmt.Printf("  Reservation Stations: add=%d mult=%d load=%d store=%d\n",
		cfg.AddStations, cfg.MultStations, cfg.LoadStations, cfg.StoreStations)
	fmt.Printf("  ROB Size: %d\n", cfg.ROBSize)
	fmt.Printf("  Memory Size: %d words\n", cfg.MemorySize)
	fmt.Printf("  Latencies: add=%d sub=%d mul=%d div=%d load=%d store=%d\n",
		cfg.LatencyAdd, cfg.LatencySub, cfg.LatencyMul, cfg.LatencyDiv, cfg.LatencyLoad, cfg.LatencyStore)
	fmt.Printf("  Cycle Watchdog: %d\n", cfg.CycleLimit)

	path := *programPath
	if path == "" {
		path = cfg.ProgramPath
	}
	if path == "" {
		path = promptForProgramPath()
	}

	program, err := asm.LoadProgram(path)
	if err != nil {
		logger.Errorf("failed to load program: %v", err)
		os.Exit(1)
	}
	fmt.Printf("\nLoaded %d instructions from %s\n", len(program), path)

	sim, err := simulator.New(cfg, logger, program)
	if err != nil {
		logger.Errorf("failed to initialize simulator: %v", err)
		os.Exit(1)
	}

	if !*quiet {
		sim.SetCycleHook(func(events []string, snap tomasulo.Snapshot) {
			report.Cycle(os.Stdout, events, snap)
		})
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := sim.Run(); err != nil {
			logger.Errorf("simulation failed: %v", err)
			os.Exit(1)
		}
	}()

	select {
	case <-sigChan:
		logger.Warn("received termination signal, shutting down...")
		sim.Shutdown()
		<-done
	case <-done:
	}

	stats := sim.GetStatistics()
	report.Summary(os.Stdout, sim.Engine().Instrs)

	fmt.Println("\nSimulation Statistics:")
	fmt.Printf("  Total Cycles: %d\n", stats.TotalCycles)
	fmt.Printf("  Instructions Committed: %d\n", stats.InstructionsCommitted)
	fmt.Printf("  IPC: %.2f\n", stats.IPC)
	if stats.WatchdogTriggered {
		fmt.Printf("  Watchdog triggered: the program did not drain within %d cycles\n", cfg.CycleLimit)
	}

	os.Exit(0)
}

func promptForProgramPath() string {
	fmt.Print("\nNo program specified. Enter the path to an instruction listing: ")
	scanner := bufio.NewScanner(os.Stdin)
	if scanner.Scan() {
		return scanner.Text()
	}
	return ""
}
