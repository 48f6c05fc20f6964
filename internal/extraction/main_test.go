package extraction

import (
	"testing"

	"go.uber.org/goleak"
)

// TestMain fails the package if parallel extraction leaks goroutines
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
