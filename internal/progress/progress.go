// Package progress выводит ход записи блоков в консоль.
package progress

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// Стили отображения прогресса.
const (
	StyleLines = "lines"
	StyleBar   = "bar"
	StyleNone  = "none"
)

// Reporter получает события о записанных блоках.
type Reporter interface {
	// Block вызывается после каждого полного блока; index начинается с 1.
	Block(index, total int64)
	// Finish вызывается один раз по окончании записи, err == nil при успехе.
	Finish(err error)
}

// New выбирает реализацию по стилю; неизвестный стиль считается ошибкой.
func New(style string, w io.Writer, totalBytes, blockSize int64) (Reporter, error) {
	switch strings.ToLower(strings.TrimSpace(style)) {
	case "", StyleLines:
		return Lines{W: w}, nil
	case StyleBar:
		return newBar("Writing", w, totalBytes, blockSize), nil
	case StyleNone:
		return Discard{}, nil
	default:
		return nil, errors.Errorf("unknown progress style %q", style)
	}
}

// Lines печатает по строке на каждый полный блок: "3/10 blocks finished."
type Lines struct {
	W io.Writer
}

func (l Lines) Block(index, total int64) {
	fmt.Fprintf(l.W, "%d/%d blocks finished.\n", index, total)
}

func (l Lines) Finish(error) {}

// Discard ничего не выводит.
type Discard struct{}

func (Discard) Block(int64, int64) {}
func (Discard) Finish(error)       {}
