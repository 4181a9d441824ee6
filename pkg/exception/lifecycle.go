package exception

import "errors"

var (
	ErrFeedAlreadyRunning   = errors.New("feed: already running")
	ErrExecAlreadyRunning   = errors.New("exec: already running")
	ErrEngineAlreadyRunning = errors.New("engine: already running")
	ErrReportAlreadyRunning = errors.New("report: already running")
)
