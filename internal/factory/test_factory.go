package factory

import (
	"time"

	"github.com/questlab/questmaster/internal/dependencies/mocks"
	"github.com/questlab/questmaster/internal/services/oracle"
	"github.com/questlab/questmaster/internal/storage/memory"
	"github.com/questlab/questmaster/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
// and the offline oracle. Lobby PINs must be queued on MockRandom before
// creating lobbies.
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, mockClock, mockRandom, oracle.NewFixed(), "http://localhost:8080", testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}
