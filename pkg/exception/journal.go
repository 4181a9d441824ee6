package exception

import "errors"

var (
	ErrJournalClosed    = errors.New("journal: closed")
	ErrJournalQueueFull = errors.New("journal: queue full")
)
