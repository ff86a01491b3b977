package hal

import "runtime"

// heapPercent reports heap in use against heap obtained from the OS.
func heapPercent(ms *runtime.MemStats) int {
	if ms.HeapSys == 0 {
		return -1
	}
	p := int(ms.HeapInuse * 100 / ms.HeapSys)
	if p > 100 {
		p = 100
	}
	return p
}
