package game

import "github.com/pkg/errors"

// ErrGameLogic marks a state the rules should have made impossible.
var ErrGameLogic = errors.New("game logic error")

func logicError(format string, args ...any) error {
	return errors.Wrapf(ErrGameLogic, format, args...)
}
