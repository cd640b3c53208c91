package models

// Outcome содержит итог одного запуска: куда и сколько было записано.
type Outcome struct {
	Path   string
	Size   int64
	Result WriteResult
}
