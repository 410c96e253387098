// Package runner drives a controller.Controller through warmup replays of a
// trace file, then performs the end-of-run aggregation (prefetch counters,
// AMAT, averaging) the controller itself does not do unprompted.
package runner

import (
	"fmt"

	"github.com/memhier/cachesim/controller"
	"github.com/memhier/cachesim/log"
	"github.com/memhier/cachesim/trace"
)

// Run replays tracePath through ctrl warmup times (each a fresh read of the
// file, same hierarchy state carried over), then collects prefetch
// information, computes AMAT for every level, and averages all counters by
// warmup.
func Run(ctrl *controller.Controller, tracePath string, warmup int) error {
	if warmup <= 0 {
		warmup = 1
	}

	for pass := 0; pass < warmup; pass++ {
		if err := runOnePass(ctrl, tracePath); err != nil {
			return err
		}
	}

	ctrl.CollectPrefetchInformation()
	ctrl.CalculateAllAMAT()
	ctrl.Metrics().AverageMetrics(warmup)
	return nil
}

func runOnePass(ctrl *controller.Controller, tracePath string) error {
	reader, closer, err := trace.Open(tracePath)
	if err != nil {
		return fmt.Errorf("runner: %w", err)
	}
	defer closer.Close()

	for {
		access, ok := reader.Next()
		if !ok {
			break
		}
		switch access.Op {
		case trace.Read:
			ctrl.Read(access.Address)
		case trace.Write:
			ctrl.Write(access.Address)
		default:
			log.Error("runner: unreachable trace op", "op", access.Op)
		}
	}
	return nil
}
