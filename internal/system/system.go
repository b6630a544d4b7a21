// Package system probes host resources for sizing the export pipeline.
package system

import (
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// Snapshot captures the host state at one instant.
type Snapshot struct {
	CPUCores     int
	MemTotal     uint64
	MemAvailable uint64
}

// Probe inspects the host, falling back to runtime values when the OS
// probes fail (containers, exotic platforms).
func Probe() Snapshot {
	s := Snapshot{CPUCores: runtime.NumCPU()}

	if count, err := cpu.Counts(true); err == nil && count > 0 {
		s.CPUCores = count
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		s.MemTotal = vm.Total
		s.MemAvailable = vm.Available
	}
	return s
}

// WorkerCount sizes a worker pool: one worker per core, never more
// workers than jobs, never fewer than one.
func WorkerCount(jobs int) int {
	n := Probe().CPUCores
	if n > jobs {
		n = jobs
	}
	if n < 1 {
		n = 1
	}
	return n
}
