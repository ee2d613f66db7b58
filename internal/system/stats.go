package system

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// Usage is a snapshot of process and host resources
type Usage struct {
	RSS            uint64  // resident set size of this process, bytes
	SysUsedPercent float64 // host memory in use
	CPUs           int     // logical cores
}

// Snapshot reads the current resource usage. Fields that cannot be read
// on this platform stay zero.
func Snapshot() Usage {
	var u Usage

	if p, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if mi, err := p.MemoryInfo(); err == nil {
			u.RSS = mi.RSS
		}
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		u.SysUsedPercent = vm.UsedPercent
	}
	if n, err := cpu.Counts(true); err == nil {
		u.CPUs = n
	}
	return u
}

// Report collects timings of one scan
type Report struct {
	Build    string
	Input    string
	Images   int
	Workers  int
	Total    time.Duration
	Analysis time.Duration
	Export   time.Duration
	Usage    Usage
}

// ImagesPerSecond is the effective throughput of the whole run
func (r Report) ImagesPerSecond() float64 {
	if r.Total <= 0 {
		return 0
	}
	return float64(r.Images) / r.Total.Seconds()
}

func (r Report) String() string {
	return fmt.Sprintf(
		"--- [PERFORMANCE REPORT] ---\n"+
			"Build: %s\n"+
			"Total Time: %.2fs\n"+
			"Analysis: %.2fs (%d workers)\n"+
			"Export: %.2fs\n"+
			"Effective rate: %.2f images/s\n"+
			"Memory: RSS %.1f MiB | system %.1f%% used | %d CPUs\n"+
			"----------------------------\n",
		r.Build, r.Total.Seconds(), r.Analysis.Seconds(), r.Workers, r.Export.Seconds(),
		r.ImagesPerSecond(), float64(r.Usage.RSS)/(1<<20), r.Usage.SysUsedPercent, r.Usage.CPUs,
	)
}

// AppendBenchmark adds a one-line summary of r to the log at path
func AppendBenchmark(path string, r Report) error {
	line := fmt.Sprintf("[%s] Build: %s | Input: %s | Images: %d | Total: %.2fs | Analysis: %.2fs | Rate: %.2f | RSS: %.1fMiB\n",
		time.Now().Format("2006-01-02 15:04:05"),
		r.Build,
		filepath.Base(r.Input),
		r.Images,
		r.Total.Seconds(),
		r.Analysis.Seconds(),
		r.ImagesPerSecond(),
		float64(r.Usage.RSS)/(1<<20),
	)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.WriteString(line)
	return err
}
