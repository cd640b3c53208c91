package models

import "time"

// WriteResult возвращается после успешной записи и содержит ключевые метаданные.
type WriteResult struct {
	Path   string
	Size   int64
	Blocks int64
	Sha256 string
	Took   time.Duration
}

// BlockPlan описывает, на сколько полных блоков делится файл и сколько байт остаётся в хвосте.
type BlockPlan struct {
	BlockSize int64
	Full      int64
	Remainder int64
}

// Blocks возвращает общее число записей, включая неполный хвостовой блок.
func (p BlockPlan) Blocks() int64 {
	if p.Remainder > 0 {
		return p.Full + 1
	}
	return p.Full
}
