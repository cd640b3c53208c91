// Package diskspace проверяет, хватит ли места на томе под новый файл.
package diskspace

import (
	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/disk"

	"github.com/sir_venger/fileforge/internal/models"
	"github.com/sir_venger/fileforge/pkg/bytesize"
)

// Checker сообщает количество свободных байт на томе, содержащем path.
type Checker interface {
	Free(path string) (uint64, error)
}

// Volume читает свободное место через gopsutil.
type Volume struct{}

func (Volume) Free(path string) (uint64, error) {
	usage, err := disk.Usage(path)
	if err != nil {
		return 0, errors.Wrapf(err, "disk usage of %s", path)
	}
	return usage.Free, nil
}

// Ensure возвращает ErrInsufficientSpace, если size не помещается в свободное место.
func Ensure(c Checker, dir string, size int64) error {
	free, err := c.Free(dir)
	if err != nil {
		return err
	}
	if size > 0 && uint64(size) > free {
		return errors.Wrapf(models.ErrInsufficientSpace, "need %s, %s available",
			bytesize.Human(size), bytesize.Human(int64(min(free, uint64(1<<63-1)))))
	}
	return nil
}
