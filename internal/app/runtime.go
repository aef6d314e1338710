package app

import (
	"os"
	"sync/atomic"
)

// Mode says whether the process may reach the portal API and local services.
type Mode int32

const (
	ModeLive Mode = iota
	ModeTest
)

const testModeEnv = "PORTAL_TEST_MODE"

var mode atomic.Int32

func init() {
	RefreshTestMode()
}

// CurrentMode returns the mode detected from the environment.
func CurrentMode() Mode {
	return Mode(mode.Load())
}

// InTestMode reports whether commands should skip network and storage side
// effects at startup.
func InTestMode() bool {
	return CurrentMode() == ModeTest
}

// RefreshTestMode re-reads PORTAL_TEST_MODE.
func RefreshTestMode() {
	m := ModeLive
	if os.Getenv(testModeEnv) == "1" {
		m = ModeTest
	}
	mode.Store(int32(m))
}
