package middleware

import (
	"errors"

	"github.com/MrSnakeDoc/altcat/internal/errs"
	"github.com/MrSnakeDoc/altcat/internal/logger"
)

// ErrLogged marks an error whose message already reached the user.
var ErrLogged = errors.New("already logged")

// FlagComboError prints the usage message for code and returns ErrLogged so
// that main does not print it a second time.
func FlagComboError(code errs.Code, a ...any) error {
	logger.LogError("%s", errs.Msg(code, a...))
	return ErrLogged
}

// Report logs err unless it was already shown.
func Report(err error) {
	if err == nil || errors.Is(err, ErrLogged) {
		return
	}
	logger.LogError("%v", err)
}
