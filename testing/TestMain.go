// Package testing puts the process into test mode when imported by tests.
package testing

import (
	"os"
	"sync"
	stdtesting "testing"
)

var once sync.Once

func ensureTestMode() {
	once.Do(func() {
		_ = os.Setenv("TAILORSHOP_TEST_MODE", "1")
		if os.Getenv("API_URL") == "" {
			_ = os.Setenv("API_URL", "http://127.0.0.1:0/api")
		}
	})
}

func init() {
	ensureTestMode()
}

func TestMain(m *stdtesting.M) {
	ensureTestMode()
	os.Exit(m.Run())
}
