package util

import (
	"fmt"
	"os"
	"runtime/debug"
)

// Can be set by tests if they want to catch asserts.
var AssertsPanic bool = false

func fail(msg string) {
	if AssertsPanic {
		panic(msg)
	}
	debug.PrintStack()
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}

// Assert aborts when cond is false. Used for internal invariants only, never
// for input validation.
func Assert(cond bool, o ...interface{}) {
	if !cond {
		fail(fmt.Sprint(o...))
	}
}

func Assertf(cond bool, format string, o ...interface{}) {
	if !cond {
		fail(fmt.Sprintf(format, o...))
	}
}
