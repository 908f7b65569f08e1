package gesture

import (
	"fmt"
	"os"
)

// debugf traces dispatcher decisions to stderr when enabled.
func debugf(enabled bool, format string, args ...any) {
	if !enabled {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[gesture] "+format+"\n", args...)
}
