package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap defines all key bindings for the application.
type KeyMap struct {
	// Navigation
	Up       Key
	Down     Key
	PageUp   Key
	PageDown Key

	// Actions
	Quit    Key
	Reload  Key
	Filter  Key
	NextTab Key
	PrevTab Key

	// Function keys for module navigation
	F1  Key
	F2  Key
	F3  Key
	F4  Key
	F5  Key
	F6  Key
	F10 Key

	Enter  Key
	Escape Key
}

// Key represents a key binding.
type Key struct {
	Keys    []string
	Help    string
	Enabled bool
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: Key{
			Keys:    []string{"up", "k"},
			Help:    "up",
			Enabled: true,
		},
		Down: Key{
			Keys:    []string{"down", "j"},
			Help:    "down",
			Enabled: true,
		},
		PageUp: Key{
			Keys:    []string{"pgup"},
			Help:    "page up",
			Enabled: true,
		},
		PageDown: Key{
			Keys:    []string{"pgdown"},
			Help:    "page down",
			Enabled: true,
		},

		// q only quits outside text entry; the app checks that.
		Quit: Key{
			Keys:    []string{"q", "ctrl+c"},
			Help:    "quit",
			Enabled: true,
		},
		Reload: Key{
			Keys:    []string{"r"},
			Help:    "reload",
			Enabled: true,
		},
		Filter: Key{
			Keys:    []string{"c"},
			Help:    "filter city",
			Enabled: true,
		},
		NextTab: Key{
			Keys:    []string{"ctrl+n"},
			Help:    "next tab",
			Enabled: true,
		},
		PrevTab: Key{
			Keys:    []string{"ctrl+p"},
			Help:    "prev tab",
			Enabled: true,
		},

		F1: Key{
			Keys:    []string{"f1"},
			Help:    "Help",
			Enabled: true,
		},
		F2: Key{
			Keys:    []string{"f2"},
			Help:    "Home",
			Enabled: true,
		},
		F3: Key{
			Keys:    []string{"f3"},
			Help:    "Donor",
			Enabled: true,
		},
		F4: Key{
			Keys:    []string{"f4"},
			Help:    "Hospital",
			Enabled: true,
		},
		F5: Key{
			Keys:    []string{"f5"},
			Help:    "Admin",
			Enabled: true,
		},
		F6: Key{
			Keys:    []string{"f6"},
			Help:    "Activity",
			Enabled: true,
		},
		F10: Key{
			Keys:    []string{"f10"},
			Help:    "Quit",
			Enabled: true,
		},

		Enter: Key{
			Keys:    []string{"enter"},
			Help:    "confirm",
			Enabled: true,
		},
		Escape: Key{
			Keys:    []string{"esc"},
			Help:    "cancel",
			Enabled: true,
		},
	}
}

// Matches checks if a key message matches this key binding.
func (k Key) Matches(msg tea.KeyMsg) bool {
	if !k.Enabled {
		return false
	}

	keyStr := msg.String()
	for _, key := range k.Keys {
		if keyStr == key {
			return true
		}
	}
	return false
}

// MatchesAny checks if a key message matches any of the provided key bindings.
func MatchesAny(msg tea.KeyMsg, keys ...Key) bool {
	for _, k := range keys {
		if k.Matches(msg) {
			return true
		}
	}
	return false
}

// IsFunctionKey checks if the key message is a function key.
func (km KeyMap) IsFunctionKey(msg tea.KeyMsg) bool {
	return MatchesAny(msg, km.F1, km.F2, km.F3, km.F4, km.F5, km.F6, km.F10)
}

// FunctionKeyModule returns the module for a function key.
func (km KeyMap) FunctionKeyModule(msg tea.KeyMsg) (Module, bool) {
	switch {
	case km.F1.Matches(msg):
		return ModuleHelp, true
	case km.F2.Matches(msg):
		return ModuleHome, true
	case km.F3.Matches(msg):
		return ModuleDonor, true
	case km.F4.Matches(msg):
		return ModuleHospital, true
	case km.F5.Matches(msg):
		return ModuleAdmin, true
	case km.F6.Matches(msg):
		return ModuleActivity, true
	default:
		return "", false
	}
}

// StatusBarHelp returns the help text for the status bar.
func (km KeyMap) StatusBarHelp() string {
	return "[F1]Help [F2]Home [F3]Donor [F4]Hospital [F5]Admin [F6]Activity [F10]Quit"
}
