package loader

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFeature struct {
	name    string
	enabled bool
	loadErr error
	loaded  bool
}

func (f *fakeFeature) Name() string    { return f.name }
func (f *fakeFeature) IsEnabled() bool { return f.enabled }
func (f *fakeFeature) Load(fiber.Router) error {
	f.loaded = true
	return f.loadErr
}

func TestManager_LoadAll(t *testing.T) {
	app := fiber.New()

	enabled := &fakeFeature{name: "enabled", enabled: true}
	disabled := &fakeFeature{name: "disabled", enabled: false}

	mgr := NewManager()
	mgr.Register(enabled)
	mgr.Register(disabled)

	require.NoError(t, mgr.LoadAll(app))
	assert.True(t, enabled.loaded)
	assert.False(t, disabled.loaded)
}

func TestManager_LoadAllStopsOnError(t *testing.T) {
	app := fiber.New()

	failing := &fakeFeature{name: "broken", enabled: true, loadErr: errors.New("boom")}
	after := &fakeFeature{name: "after", enabled: true}

	mgr := NewManager()
	mgr.Register(failing)
	mgr.Register(after)

	err := mgr.LoadAll(app)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
	assert.False(t, after.loaded)
}
