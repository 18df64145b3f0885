package service

import "ebdadmin/internal/domain"

type settingStore interface {
	Get(key string) (bool, error)
	Set(key string, value bool) error
}

// LockGate answers whether the system-wide registration write gate is
// closed. The flag lives in the settings table and is fetched on every
// check; there is no cached or ambient copy.
type LockGate struct {
	settings settingStore
}

func NewLockGate(settings settingStore) *LockGate {
	return &LockGate{settings: settings}
}

// IsLocked reports the gate state. A failed settings read locks the
// system (fail-closed) rather than letting writes through blind.
func (g *LockGate) IsLocked() bool {
	allowed, err := g.settings.Get(domain.SettingAllowRegistrations)
	if err != nil {
		return true
	}
	return !allowed
}

// SetAllowed stores the admin's toggle. Clients observe it on their next
// check; the gate is polled, never pushed.
func (g *LockGate) SetAllowed(allowed bool) error {
	return g.settings.Set(domain.SettingAllowRegistrations, allowed)
}
