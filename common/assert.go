package common

import (
	"runtime"

	"github.com/devlights/gomy/output"
)

func KAssert(condition bool, msg string) {
	if !condition {
		RuntimeStack()
		panic(msg)
	}
}

// RuntimeStack dumps the stack of every goroutine to stdout.
func RuntimeStack() error {
	buf := make([]byte, 4096)
	for {
		n := runtime.Stack(buf, true)
		if n < len(buf) {
			buf = buf[:n]
			break
		}
		buf = make([]byte, 2*len(buf))
	}

	output.Stdoutl("=== stack trace ===", string(buf))

	return nil
}
