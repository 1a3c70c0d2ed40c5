package monitor

import (
	"os"

	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"

	"SentiVec/src/library/log"
)

// LogMemoryUsage logs process RSS and system memory after a heavy phase.
// Failures are logged and swallowed; monitoring never aborts the pipeline.
func LogMemoryUsage(phase string) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		log.Warning("memory monitor unavailable: %v", err)
		return
	}
	memInfo, err := proc.MemoryInfo()
	if err != nil {
		log.Warning("process memory info failed: %v", err)
		return
	}
	vm, err := mem.VirtualMemory()
	if err != nil {
		log.Warning("system memory info failed: %v", err)
		return
	}
	log.Info("%s: rss=%dMB sys_used=%.1f%%", phase, memInfo.RSS/(1<<20), vm.UsedPercent)
}
