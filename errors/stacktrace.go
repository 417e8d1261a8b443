package errors

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/pkg/errors"
)

// stackTrace returns the first stack trace found in the cause chain of
// err, or nil.
func stackTrace(err error) errors.StackTrace {
	type tracer interface {
		StackTrace() errors.StackTrace
	}
	for err != nil {
		if t, ok := err.(tracer); ok {
			return t.StackTrace()
		}
		c, ok := err.(causer)
		if !ok {
			break
		}
		err = c.Cause()
	}
	return nil
}

// Format prints the message for %s. %v appends the file and line where
// the error was first wrapped and %+v prints the whole trace before the
// message.
func (e *wrappedError) Format(s fmt.State, verb rune) {
	if verb != 'v' {
		fmt.Fprint(s, e.Error())
		return
	}
	frames := callerFrames(stackTrace(e))
	if s.Flag('+') {
		fmt.Fprintf(s, "%+v\n%s", frames, e.Error())
		return
	}
	fmt.Fprint(s, e.Error())
	if len(frames) > 0 {
		file, line := location(frames[0])
		if i := strings.Index(file, "github.com/"); i >= 0 {
			file = file[i+len("github.com/"):]
		}
		fmt.Fprintf(s, " [%s:%d]", file, line)
	}
}

// innerFrames are paths of frames that never point at the code that
// created an error.
var innerFrames = []string{"/errors/errors.go", "/errors/field.go", "/runtime/", "/_test/"}

// callerFrames drops frames of this package and of the runtime from the
// top of the trace and runtime or testing frames from its bottom.
func callerFrames(st errors.StackTrace) errors.StackTrace {
	for len(st) > 0 && inFiles(st[0], innerFrames...) {
		st = st[1:]
	}
	for len(st) > 0 && inFiles(st[len(st)-1], "/runtime/", "src/testing/") {
		st = st[:len(st)-1]
	}
	return st
}

func inFiles(f errors.Frame, paths ...string) bool {
	file, _ := location(f)
	for _, p := range paths {
		if strings.Contains(file, p) {
			return true
		}
	}
	return false
}

// location resolves a frame the same way pkg/errors does when printing it.
func location(f errors.Frame) (string, int) {
	pc := uintptr(f) - 1
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "unknown", 0
	}
	return fn.FileLine(pc)
}
