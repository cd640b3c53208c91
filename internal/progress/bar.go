package progress

import (
	"fmt"
	"io"
	"strings"

	"github.com/sir_venger/fileforge/pkg/bytesize"
)

const progressBarWidth = 32

// bar рисует ASCII-индикатор выполнения поверх одной строки терминала.
type bar struct {
	prefix        string
	w             io.Writer
	total         int64
	blockSize     int64
	current       int64
	lastLineWidth int
	finished      bool
}

func newBar(prefix string, w io.Writer, total, blockSize int64) *bar {
	return &bar{
		prefix:    prefix,
		w:         w,
		total:     total,
		blockSize: blockSize,
	}
}

func (b *bar) Block(index, _ int64) {
	if b.finished {
		return
	}
	b.current = min(index*b.blockSize, b.total)
	b.render("")
}

func (b *bar) Finish(err error) {
	if b.finished {
		return
	}
	b.finished = true

	suffix := " ✓"
	if err != nil {
		suffix = fmt.Sprintf(" ✗ %v", err)
	} else {
		b.current = b.total
	}
	b.render(suffix)
	fmt.Fprintln(b.w)
}

func (b *bar) render(suffix string) {
	line := b.line()
	padding := ""
	if b.lastLineWidth > len(line)+len(suffix) {
		padding = strings.Repeat(" ", b.lastLineWidth-len(line)-len(suffix))
	}
	b.lastLineWidth = len(line) + len(suffix)

	fmt.Fprintf(b.w, "\r%s%s%s", line, suffix, padding)
}

func (b *bar) line() string {
	var builder strings.Builder
	builder.Grow(len(b.prefix) + 64)
	builder.WriteString(b.prefix)
	builder.WriteByte(' ')

	ratio := float64(1)
	if b.total > 0 {
		ratio = float64(b.current) / float64(b.total)
	}
	if ratio > 1 {
		ratio = 1
	}
	filled := int(ratio*float64(progressBarWidth) + 0.5)
	if filled > progressBarWidth {
		filled = progressBarWidth
	}

	builder.WriteByte('[')
	builder.WriteString(strings.Repeat("=", filled))
	builder.WriteString(strings.Repeat(" ", progressBarWidth-filled))
	builder.WriteString("] ")
	builder.WriteString(fmt.Sprintf("%3d%% ", int(ratio*100+0.5)))
	builder.WriteString(bytesize.Human(b.current))
	builder.WriteByte('/')
	builder.WriteString(bytesize.Human(b.total))

	return builder.String()
}
