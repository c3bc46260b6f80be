package persist

import (
	"github.com/entrhq/graphite/pkg/browser"
	"github.com/entrhq/graphite/pkg/logging"
)

// Adapter implements browser.Store on top of a KV.
//
// Loading never fails: a missing, unreadable or invalid snapshot yields
// browser.DefaultState(). Saving never fails either; errors are logged and
// the in-memory state stays authoritative.
type Adapter struct {
	kv     KV
	key    string
	logger *logging.Logger
}

// NewAdapter creates an adapter persisting under browser.StateKey. A nil
// logger discards messages.
func NewAdapter(kv KV, logger *logging.Logger) *Adapter {
	return &Adapter{kv: kv, key: browser.StateKey, logger: logger}
}

// Load returns the persisted state, or the default state.
func (a *Adapter) Load() browser.State {
	data, ok, err := a.kv.Get(a.key)
	if err != nil {
		a.logger.Warnf("Failed to read saved state, using defaults: %v", err)
		return browser.DefaultState()
	}
	if !ok {
		a.logger.Debugf("No saved state under %q, using defaults", a.key)
		return browser.DefaultState()
	}

	state, err := DecodeState(data)
	if err != nil {
		a.logger.Warnf("Discarding saved state: %v", err)
		return browser.DefaultState()
	}

	a.logger.Infof("Restored %d tab(s), active tab %d", len(state.Tabs), state.ActiveTabID)
	return state
}

// Save writes s. Failures are logged.
func (a *Adapter) Save(s browser.State) {
	data, err := EncodeState(s)
	if err != nil {
		a.logger.Errorf("Failed to encode state: %v", err)
		return
	}
	if err := a.kv.Set(a.key, data); err != nil {
		a.logger.Errorf("Failed to save state: %v", err)
		return
	}
	a.logger.Debugf("Saved state (%d bytes)", len(data))
}

// Close closes the underlying store.
func (a *Adapter) Close() error {
	return a.kv.Close()
}
