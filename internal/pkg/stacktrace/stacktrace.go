package stacktrace

import (
	"bufio"
	"bytes"
	"strings"
)

// InternalFrames extracts "internal/<pkg>/<file>.go:<line>" locations from a
// runtime/debug.Stack dump, innermost first. Frames outside an internal/
// directory (runtime, stdlib, third-party) are dropped.
func InternalFrames(stack []byte) []string {
	frames := make([]string, 0, 8)

	sc := bufio.NewScanner(bytes.NewReader(stack))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		// file lines look like "/abs/path/internal/x/y.go:42 +0x1d"
		loc, _, _ := strings.Cut(line, " ")
		if !strings.Contains(loc, ".go:") {
			continue
		}

		idx := strings.Index(loc, "/internal/")
		if idx == -1 {
			continue
		}
		frames = append(frames, loc[idx+1:])
	}

	return frames
}
