package errs

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/leonid6372/portfolio-service/pkg/log"
)

const (
	traceSkip     = 3
	tracePrealloc = 50
)

type sFrame struct {
	filename string
	method   string
	line     int
}

func (f sFrame) String() string {
	return fmt.Sprintf("%s:%d %s", f.filename, f.line, f.method)
}

type stack []sFrame

func (s stack) String() string {
	frames := make([]string, 0, len(s))
	for _, f := range s {
		frames = append(frames, f.String())
	}

	return strings.Join(frames, " <- ")
}

type errorWithTrace struct {
	error

	trace stack
}

func (e *errorWithTrace) Unwrap() error {
	return e.error
}

// NewStack wraps an infrastructure error with the call stack of the wrap
// site and logs it once. Business-rule sentinel errors are returned to the
// caller unwrapped; this is only for errors nobody upstream can handle.
func NewStack(err error) error {
	if err == nil {
		return nil
	}

	var errWT *errorWithTrace

	// Add trace only once
	if errors.As(err, &errWT) {
		return err
	}

	stack := stackTrace(traceSkip)

	log.Error(err.Error() + "\t" + stack.String())

	return &errorWithTrace{
		error: err,
		trace: stack,
	}
}

func stackTrace(skip int) stack {
	pc := make([]uintptr, tracePrealloc)
	n := runtime.Callers(skip, pc)
	pc = pc[:n]

	frames := runtime.CallersFrames(pc)
	stack := make(stack, 0, n)

	for {
		frame, more := frames.Next()

		stack = append(stack, sFrame{filename: frame.File, method: frame.Function, line: frame.Line})

		if !more {
			break
		}
	}

	return stack
}
