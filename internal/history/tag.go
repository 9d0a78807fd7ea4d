package history

import (
	"fmt"
	"os"
	"strings"
	"sync/atomic"
	"time"
)

var tagSerial uint64

// NewTag mints a fresh concurrency tag: a durable, process-unique name for
// one physical incarnation of the master log. Tags are compared as opaque
// strings — never parsed back apart — so the exact field widths below are
// not a format contract, only a collision-avoidance heuristic.
func NewTag() string {
	serial := atomic.AddUint64(&tagSerial, 1)
	return fmt.Sprintf("|CTAG_%d_%d_%d_%d", time.Now().Unix(), time.Now().UnixNano(), os.Getpid(), serial)
}

// IsTagLine reports whether line looks like a concurrency tag line (the
// master's first line, or a removals file's header line).
func IsTagLine(line string) bool {
	return strings.HasPrefix(line, "|CTAG_")
}
