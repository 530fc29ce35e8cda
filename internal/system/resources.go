package system

import (
	"fmt"
	"os"
	"runtime"

	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// Resources is a snapshot of the current process and host memory.
type Resources struct {
	RSS         uint64
	CPUPercent  float64
	Threads     int32
	Goroutines  int
	HostTotal   uint64
	HostUsedPct float64
}

// ResourceReport samples the running process. Fields that cannot be read on
// this platform stay zero.
func ResourceReport() (Resources, error) {
	r := Resources{Goroutines: runtime.NumGoroutine()}

	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return r, fmt.Errorf("inspect process: %w", err)
	}
	if mi, err := p.MemoryInfo(); err == nil {
		r.RSS = mi.RSS
	}
	if pct, err := p.CPUPercent(); err == nil {
		r.CPUPercent = pct
	}
	if n, err := p.NumThreads(); err == nil {
		r.Threads = n
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		r.HostTotal = vm.Total
		r.HostUsedPct = vm.UsedPercent
	}
	return r, nil
}

// String formats the report the way the CLI prints its stats block.
func (r Resources) String() string {
	return fmt.Sprintf(
		"--- [RESOURCE REPORT] ---\n"+
			"RSS: %.1f MiB\n"+
			"CPU: %.1f%%\n"+
			"Threads: %d | Goroutines: %d\n"+
			"Host memory: %.1f GiB (%.0f%% used)\n"+
			"-------------------------\n",
		float64(r.RSS)/(1<<20), r.CPUPercent, r.Threads, r.Goroutines,
		float64(r.HostTotal)/(1<<30), r.HostUsedPct,
	)
}
