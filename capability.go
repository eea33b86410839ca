package folio

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// Low-capability thresholds.
const (
	SmallViewportWidth = 640
	LowCPUCount        = 4
	LowMemoryBytes     = 4 << 30
)

// ReducedMotionEnv forces reduced motion when set to a true value.
const ReducedMotionEnv = "FOLIO_REDUCED_MOTION"

// Capability describes the host for choosing between full animation and the
// reduced path.
type Capability struct {
	CPUs        int
	MemoryBytes uint64
	// Forced is set when ReducedMotionEnv asked for reduced motion.
	Forced bool
}

// DetectCapability probes the host. Probe failures leave the field zero,
// which counts as unknown rather than low.
func DetectCapability() Capability {
	var c Capability
	if n, err := cpu.Counts(true); err == nil {
		c.CPUs = n
	} else {
		Logger().Warn("cpu probe failed", slog.Any("error", err))
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		c.MemoryBytes = vm.Total
	} else {
		Logger().Warn("memory probe failed", slog.Any("error", err))
	}
	if v, ok := os.LookupEnv(ReducedMotionEnv); ok {
		forced, err := strconv.ParseBool(v)
		c.Forced = err == nil && forced
	}
	return c
}

// LowPerformance reports whether the host is a low-end machine.
func (c Capability) LowPerformance() bool {
	return (c.CPUs > 0 && c.CPUs <= LowCPUCount) ||
		(c.MemoryBytes > 0 && c.MemoryBytes <= LowMemoryBytes)
}

// ReducedMotion reports whether animations should be skipped for a viewport
// of the given width.
func (c Capability) ReducedMotion(viewportWidth float64) bool {
	return c.Forced || viewportWidth <= SmallViewportWidth || c.LowPerformance()
}
