//go:build !ebiten

package app

import (
	"errors"

	"github.com/AlxndrStoev/game-of-life/internal/config"
)

// ErrGUIUnavailable is returned by Run in builds without the ebiten tag.
var ErrGUIUnavailable = errors.New("app: the GUI requires building with -tags ebiten")

// Run reports that the GUI build tag is missing.
func Run(*config.Config) error {
	return ErrGUIUnavailable
}
