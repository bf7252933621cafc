//go:build sigdebug

package sigctl

import (
	"fmt"
	"os"
	"sync/atomic"
)

var debugLevel atomic.Int32

// SetDebugLevel sets the interrupt-debugging verbosity and returns the
// previous level. Available only in sigdebug builds.
func SetDebugLevel(level int) int {
	return int(debugLevel.Swap(int32(level)))
}

func debugf(level int, format string, args ...any) {
	if int(debugLevel.Load()) >= level {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
