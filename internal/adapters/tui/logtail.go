package tui

import "bytes"

// LogTail keeps the most recent complete lines a stage has logged. Writes
// arrive as raw chunks from the telemetry batcher, so a chunk may end in the
// middle of a line; the fragment is held back until its newline arrives.
type LogTail struct {
	limit   int
	lines   []string
	partial []byte
}

// NewLogTail creates a tail retaining at most limit lines.
func NewLogTail(limit int) *LogTail {
	if limit < 1 {
		limit = 1
	}
	return &LogTail{limit: limit}
}

// Write implements io.Writer. A carriage return inside a line rewrites it,
// so progress updates replace themselves instead of stacking.
func (t *LogTail) Write(p []byte) (int, error) {
	t.partial = append(t.partial, p...)

	for {
		i := bytes.IndexByte(t.partial, '\n')
		if i < 0 {
			break
		}

		line := bytes.TrimSuffix(t.partial[:i], []byte("\r"))
		if j := bytes.LastIndexByte(line, '\r'); j >= 0 {
			line = line[j+1:]
		}
		t.push(string(line))

		t.partial = t.partial[i+1:]
	}

	return len(p), nil
}

func (t *LogTail) push(line string) {
	if line == "" {
		return
	}

	t.lines = append(t.lines, line)
	if len(t.lines) > t.limit {
		copy(t.lines, t.lines[len(t.lines)-t.limit:])
		t.lines = t.lines[:t.limit]
	}
}

// Len returns the number of retained lines.
func (t *LogTail) Len() int {
	return len(t.lines)
}

// Last returns up to n of the most recent lines, oldest first. The returned
// slice is only valid until the next Write.
func (t *LogTail) Last(n int) []string {
	if n <= 0 || len(t.lines) == 0 {
		return nil
	}
	if n > len(t.lines) {
		n = len(t.lines)
	}
	return t.lines[len(t.lines)-n:]
}
