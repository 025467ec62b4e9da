package main

import (
	"fmt"
	"os"
)

// uiMode decides whether multi-file runs render the progress list. It
// implements pflag.Value so cobra validates it at parse time.
type uiMode int

const (
	uiAuto uiMode = iota
	uiOn
	uiOff
)

func (m uiMode) String() string {
	switch m {
	case uiOn:
		return "on"
	case uiOff:
		return "off"
	default:
		return "auto"
	}
}

func (m *uiMode) Set(value string) error {
	switch value {
	case "auto":
		*m = uiAuto
	case "on":
		*m = uiOn
	case "off":
		*m = uiOff
	default:
		return fmt.Errorf("must be one of auto, on, off")
	}
	return nil
}

func (m *uiMode) Type() string { return "auto|on|off" }

// wantProgressUI reports whether the progress list should run for the
// given number of inputs. A single file never gets one; auto requires
// an interactive stdout.
func (m uiMode) wantProgressUI(files int) bool {
	if files < 2 {
		return false
	}
	switch m {
	case uiOn:
		return true
	case uiOff:
		return false
	default:
		return isTerminal(os.Stdout)
	}
}
