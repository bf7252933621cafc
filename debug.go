//go:build !sigdebug

package sigctl

// SetDebugLevel is a no-op unless the module is built with the sigdebug
// tag. Level 0 is the only accepted value; anything else returns -1.
func SetDebugLevel(level int) int {
	if level == 0 {
		return 0
	}
	return -1
}

func debugf(level int, format string, args ...any) {}
