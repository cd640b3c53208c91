package session

// State — шаг интерактивного сценария.
type State int

const (
	AwaitName State = iota
	AwaitOverwriteConfirm
	AwaitSize
	AwaitSizeConfirm
	CheckSpace
	Writing
	Done
	Aborted
)

var stateNames = [...]string{
	AwaitName:             "await_name",
	AwaitOverwriteConfirm: "await_overwrite_confirm",
	AwaitSize:             "await_size",
	AwaitSizeConfirm:      "await_size_confirm",
	CheckSpace:            "check_space",
	Writing:               "writing",
	Done:                  "done",
	Aborted:               "aborted",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// terminal сообщает, что сценарий завершён.
func (s State) terminal() bool {
	return s == Done || s == Aborted
}
