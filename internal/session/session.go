// Package session ведёт пользователя по шагам создания файла:
// имя, подтверждение перезаписи, размер, подтверждение размера, проверка места, запись.
package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/sir_venger/fileforge/internal/diskspace"
	"github.com/sir_venger/fileforge/internal/models"
	"github.com/sir_venger/fileforge/internal/naming"
	"github.com/sir_venger/fileforge/pkg/bytesize"
)

type (
	// FileWriter пишет size случайных байт в path.
	FileWriter interface {
		Write(ctx context.Context, path string, size int64) (models.WriteResult, error)
	}

	// WriterFactory создаёт FileWriter, когда размер файла уже известен.
	WriterFactory func(size int64) (FileWriter, error)
)

// Deps — ввод-вывод и зависимости одного запуска.
type Deps struct {
	In     io.Reader
	Out    io.Writer
	Dir    string
	Space  diskspace.Checker // nil отключает проверку свободного места
	Writer WriterFactory
	Log    *zap.Logger
}

// Session — конечный автомат одного запуска.
type Session struct {
	Deps

	in     *bufio.Reader
	state  State
	path   string
	size   int64
	result models.WriteResult
}

// New конструирует сессию в состоянии AwaitName.
func New(deps Deps) *Session {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	return &Session{
		Deps:  deps,
		in:    bufio.NewReader(deps.In),
		state: AwaitName,
	}
}

// State возвращает текущее состояние автомата.
func (s *Session) State() State {
	return s.state
}

// Run проходит все шаги до Done или Aborted. Процесс не завершается:
// ошибка возвращается вызывающему как есть.
func (s *Session) Run(ctx context.Context) (models.Outcome, error) {
	for !s.state.terminal() {
		if ctx.Err() != nil {
			s.state = Aborted
			return models.Outcome{}, errors.Wrap(ctx.Err(), "session interrupted")
		}
		next, err := s.step(ctx)
		if err != nil {
			s.Log.Debug("session aborted", zap.Stringer("state", s.state), zap.Error(err))
			s.state = Aborted
			return models.Outcome{}, err
		}
		s.Log.Debug("transition", zap.Stringer("from", s.state), zap.Stringer("to", next))
		s.state = next
	}

	return models.Outcome{Path: s.path, Size: s.size, Result: s.result}, nil
}

func (s *Session) step(ctx context.Context) (State, error) {
	switch s.state {
	case AwaitName:
		return s.awaitName(ctx)
	case AwaitOverwriteConfirm:
		return s.awaitOverwriteConfirm(ctx)
	case AwaitSize:
		return s.awaitSize(ctx)
	case AwaitSizeConfirm:
		return s.awaitSizeConfirm(ctx)
	case CheckSpace:
		return s.checkSpace()
	case Writing:
		return s.write(ctx)
	default:
		return Aborted, errors.Errorf("unexpected state %s", s.state)
	}
}

func (s *Session) awaitName(ctx context.Context) (State, error) {
	name, err := s.ask(ctx, "Please enter a name for the file: ")
	if err != nil {
		return Aborted, err
	}
	if err = naming.Validate(name); err != nil {
		return Aborted, err
	}

	s.path = filepath.Join(s.Dir, name)
	info, err := os.Stat(s.path)
	switch {
	case err == nil && info.IsDir():
		return Aborted, errors.Wrapf(models.ErrInvalidName, "%s is a directory", s.path)
	case err == nil:
		return AwaitOverwriteConfirm, nil
	case os.IsNotExist(err):
		return AwaitSize, nil
	default:
		return Aborted, errors.Wrapf(models.ErrIO, "stat %s: %v", s.path, err)
	}
}

func (s *Session) awaitOverwriteConfirm(ctx context.Context) (State, error) {
	prompt := fmt.Sprintf("The file '%s' already exists. Do you want to overwrite it? (y/n): ", s.path)
	if err := s.confirm(ctx, prompt); err != nil {
		return Aborted, err
	}
	return AwaitSize, nil
}

func (s *Session) awaitSize(ctx context.Context) (State, error) {
	raw, err := s.ask(ctx, "Enter the file size: ")
	if err != nil {
		return Aborted, err
	}
	if s.size, err = bytesize.Parse(raw); err != nil {
		return Aborted, err
	}
	return AwaitSizeConfirm, nil
}

func (s *Session) awaitSizeConfirm(ctx context.Context) (State, error) {
	prompt := fmt.Sprintf("Are you sure you want to create a file with %s bytes? (y/n): ", bytesize.Format(s.size))
	if err := s.confirm(ctx, prompt); err != nil {
		return Aborted, err
	}
	return CheckSpace, nil
}

func (s *Session) checkSpace() (State, error) {
	if s.Space == nil {
		return Writing, nil
	}

	fmt.Fprintln(s.Out, "Checking free space...")
	if err := diskspace.Ensure(s.Space, s.Dir, s.size); err != nil {
		return Aborted, err
	}
	fmt.Fprintln(s.Out, "Free space -> ok!")
	return Writing, nil
}

func (s *Session) write(ctx context.Context) (State, error) {
	w, err := s.Writer(s.size)
	if err != nil {
		return Aborted, err
	}

	fmt.Fprintln(s.Out, "Writing....")
	if s.result, err = w.Write(ctx, s.path, s.size); err != nil {
		return Aborted, err
	}
	fmt.Fprintln(s.Out, "Finished!")
	return Done, nil
}

// confirm принимает только "y" (без учёта регистра); всё остальное — отказ.
func (s *Session) confirm(ctx context.Context, prompt string) error {
	answer, err := s.ask(ctx, prompt)
	if err != nil {
		return err
	}
	if !strings.EqualFold(strings.TrimSpace(answer), "y") {
		return models.ErrUserDeclined
	}
	return nil
}

// ask печатает приглашение и читает одну строку без завершающего перевода строки.
// Отмена ctx прерывает ожидание ввода.
func (s *Session) ask(ctx context.Context, prompt string) (string, error) {
	fmt.Fprint(s.Out, prompt)

	type reply struct {
		line string
		err  error
	}
	replies := make(chan reply, 1)
	go func() {
		line, err := s.in.ReadString('\n')
		replies <- reply{line: line, err: err}
	}()

	var r reply
	select {
	case <-ctx.Done():
		fmt.Fprintln(s.Out)
		return "", errors.Wrap(ctx.Err(), "input interrupted")
	case r = <-replies:
	}

	if r.err != nil && !(errors.Is(r.err, io.EOF) && r.line != "") {
		if errors.Is(r.err, io.EOF) {
			fmt.Fprintln(s.Out)
			return "", errors.Wrap(models.ErrUserDeclined, "input closed")
		}
		return "", errors.Wrap(r.err, "read input")
	}
	return strings.TrimRight(r.line, "\r\n"), nil
}
