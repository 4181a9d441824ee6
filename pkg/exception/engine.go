package exception

import "errors"

var (
	ErrEngineNilPart      = errors.New("engine: nil part")
	ErrEngineNoStrategies = errors.New("engine: no strategies")
)
