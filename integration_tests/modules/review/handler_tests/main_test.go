package reviewhandlerintegrationtests

import (
	"os"
	"testing"
)

func TestMain(m *testing.M) {
	code := m.Run()
	if testEnv != nil {
		testEnv.Cleanup()
	}
	os.Exit(code)
}
