package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"hdrscan/internal/prof"
)

// setupProfiling reads the persistent profiling flags and starts the
// requested profilers. The returned cleanup is safe to call more than
// once.
func setupProfiling(cmd *cobra.Command) (func(), error) {
	pf := cmd.Root().PersistentFlags()

	cpuProfile, err := pf.GetString("cpu-profile")
	if err != nil {
		return nil, fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	memProfile, err := pf.GetString("mem-profile")
	if err != nil {
		return nil, fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	runtimeTrace, err := pf.GetString("runtime-trace")
	if err != nil {
		return nil, fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}

	stopCPU := func() {}
	if cpuProfile != "" {
		stopCPU, err = prof.StartCPU(cpuProfile)
		if err != nil {
			return nil, fmt.Errorf("failed to start cpu profile: %w", err)
		}
	}
	stopTrace := func() {}
	if runtimeTrace != "" {
		stopTrace, err = prof.StartTrace(runtimeTrace)
		if err != nil {
			stopCPU()
			return nil, fmt.Errorf("failed to start runtime trace: %w", err)
		}
	}

	cleaned := false
	cleanup := func() {
		if cleaned {
			return
		}
		cleaned = true
		stopTrace()
		stopCPU()
		if memProfile != "" {
			if err := prof.WriteHeap(memProfile); err != nil {
				fmt.Fprintf(os.Stderr, "failed to write heap profile: %v\n", err)
			}
		}
	}
	return cleanup, nil
}
