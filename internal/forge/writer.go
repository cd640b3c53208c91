// Package forge пишет файлы заданного размера, заполненные случайными байтами.
package forge

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"path/filepath"
	"time"

	"github.com/dustin/randbo"
	"github.com/google/renameio/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/sir_venger/fileforge/internal/models"
	"github.com/sir_venger/fileforge/internal/progress"
)

// BlockSize — размер блока, которым генерируются и пишутся данные.
const BlockSize int64 = 1 << 20

// Deps — источник данных, получатель прогресса и логгер для Writer.
type Deps struct {
	Source   io.Reader
	Progress progress.Reporter
	Log      *zap.Logger
}

// Writer заполняет файлы случайными данными поблочно.
type Writer struct {
	Deps
}

// New конструирует Writer; пустые зависимости заменяются значениями по умолчанию.
func New(deps Deps) *Writer {
	if deps.Source == nil {
		deps.Source = randbo.New()
	}
	if deps.Progress == nil {
		deps.Progress = progress.Discard{}
	}
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	return &Writer{Deps: deps}
}

// Write создаёт (или заменяет) файл path и пишет в него ровно size случайных байт.
// Данные попадают во временный файл рядом с целевым и подменяют его только после
// успешной записи; при ошибке временный файл удаляется, прежний файл не трогается.
func (w *Writer) Write(ctx context.Context, path string, size int64) (res models.WriteResult, err error) {
	if size < 0 {
		return models.WriteResult{}, errors.Errorf("size must be >= 0, got %d", size)
	}

	plan := PlanBlocks(size, BlockSize)
	started := time.Now()
	defer func() { w.Progress.Finish(err) }()

	pending, err := renameio.NewPendingFile(path,
		renameio.WithTempDir(filepath.Dir(path)),
		renameio.WithPermissions(0o644),
		renameio.WithExistingPermissions(),
	)
	if err != nil {
		return models.WriteResult{}, errors.Wrapf(models.ErrIO, "create %s: %v", path, err)
	}
	defer pending.Cleanup()

	hasher := sha256.New()
	dst := io.MultiWriter(pending, hasher)
	buf := make([]byte, min(plan.BlockSize, max(size, 1)))

	var written int64
	for idx := int64(1); idx <= plan.Blocks(); idx++ {
		if ctx.Err() != nil {
			return models.WriteResult{}, errors.Wrap(ctx.Err(), "write interrupted")
		}

		blockLen := plan.BlockSize
		if idx > plan.Full {
			blockLen = plan.Remainder
		}
		n, err := w.writeBlock(dst, buf[:blockLen])
		written += n
		if err != nil {
			return models.WriteResult{}, errors.Wrapf(models.ErrIO, "block %d/%d of %s: %v", idx, plan.Blocks(), path, err)
		}

		if idx <= plan.Full {
			w.Progress.Block(idx, plan.Full)
		}
		w.Log.Debug("block written", zap.Int64("index", idx), zap.Int64("bytes", n))
	}

	if written != size {
		return models.WriteResult{}, errors.Wrapf(models.ErrIO, "unexpected file length: want %d, got %d", size, written)
	}
	if err = pending.CloseAtomicallyReplace(); err != nil {
		return models.WriteResult{}, errors.Wrapf(models.ErrIO, "replace %s: %v", path, err)
	}

	res = models.WriteResult{
		Path:   path,
		Size:   written,
		Blocks: plan.Blocks(),
		Sha256: hex.EncodeToString(hasher.Sum(nil)),
		Took:   time.Since(started),
	}
	w.Log.Info("file written",
		zap.String("path", res.Path),
		zap.Int64("bytes", res.Size),
		zap.Int64("blocks", res.Blocks),
		zap.String("sha256", res.Sha256),
		zap.Duration("took", res.Took),
	)

	return res, nil
}

// writeBlock заполняет buf из источника и пишет его целиком.
func (w *Writer) writeBlock(dst io.Writer, buf []byte) (int64, error) {
	if _, err := io.ReadFull(w.Source, buf); err != nil {
		return 0, errors.Wrap(err, "read random data")
	}
	n, err := dst.Write(buf)
	return int64(n), err
}

// PlanBlocks делит length на полные блоки размера blockSize и хвост.
func PlanBlocks(length, blockSize int64) models.BlockPlan {
	if blockSize <= 0 {
		blockSize = BlockSize
	}
	if length <= 0 {
		return models.BlockPlan{BlockSize: blockSize}
	}

	return models.BlockPlan{
		BlockSize: blockSize,
		Full:      length / blockSize,
		Remainder: length % blockSize,
	}
}
