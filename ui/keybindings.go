package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"
	"github.com/yhkl-dev/NaviPlayer/control"
)

// KeyAction represents an action that can be triggered by keybindings
type KeyAction struct {
	name    string
	handler func()
}

// KeyBindingManager manages all keybindings and dispatches events
type KeyBindingManager struct {
	bindings  map[tcell.Key]KeyAction // special key -> action mapping
	runeMap   map[rune]KeyAction      // rune -> action mapping
	sequences map[string]KeyAction    // multi-key bindings like "gg"
	pending   string                  // prefix of a sequence typed so far
}

// NewKeyBindingManager creates a new key binding manager
func NewKeyBindingManager() *KeyBindingManager {
	return &KeyBindingManager{
		bindings:  make(map[tcell.Key]KeyAction),
		runeMap:   make(map[rune]KeyAction),
		sequences: make(map[string]KeyAction),
	}
}

// RegisterKeyBinding registers a single key binding
func (km *KeyBindingManager) RegisterKeyBinding(action KeyAction, keys []tcell.Key, runes []rune) {
	for _, key := range keys {
		km.bindings[key] = action
	}
	for _, r := range runes {
		km.runeMap[r] = action
	}
}

// RegisterSequence binds a sequence of runes typed one after another
func (km *KeyBindingManager) RegisterSequence(action KeyAction, seq string) {
	km.sequences[seq] = action
}

func (km *KeyBindingManager) isPrefix(s string) bool {
	for seq := range km.sequences {
		if len(seq) > len(s) && strings.HasPrefix(seq, s) {
			return true
		}
	}
	return false
}

// HandleKey handles a keyboard event and returns true if it was consumed
func (km *KeyBindingManager) HandleKey(event *tcell.EventKey) bool {
	// Check for special keys first
	if event.Key() != tcell.KeyRune {
		km.pending = "" // reset pending sequence on non-rune key
		if action, ok := km.bindings[event.Key()]; ok {
			km.run(action)
			return true
		}
		return false
	}

	r := event.Rune()

	if km.pending != "" {
		typed := km.pending + string(r)
		if action, ok := km.sequences[typed]; ok {
			km.pending = ""
			km.run(action)
			return true
		}
		if km.isPrefix(typed) {
			km.pending = typed
			return true
		}
		// Not a sequence, try the current rune as standalone
		km.pending = ""
	}

	if km.isPrefix(string(r)) {
		km.pending = string(r)
		return true
	}

	if action, ok := km.runeMap[r]; ok {
		km.run(action)
		return true
	}
	return false
}

func (km *KeyBindingManager) run(action KeyAction) {
	log.Debug().Str("action", action.name).Msg("key action")
	action.handler()
}

// ResetPending drops a half-typed sequence, e.g. when focus moves to another page
func (km *KeyBindingManager) ResetPending() {
	km.pending = ""
}

// newKeyBindings wires the player keys to controller commands
func (a *App) newKeyBindings() *KeyBindingManager {
	km := NewKeyBindingManager()

	command := func(name string, kind control.Kind) KeyAction {
		return KeyAction{name: name, handler: func() { a.dispatch(kind) }}
	}
	selectIndex := func(name string, index func() int) KeyAction {
		return KeyAction{name: name, handler: func() {
			a.controller.Dispatch(control.Command{Kind: control.CmdSelectIndex, Index: index()})
		}}
	}

	km.RegisterKeyBinding(command("togglePlay", control.CmdTogglePlay), nil, []rune{' '})
	km.RegisterKeyBinding(command("volumeUp", control.CmdVolumeUp), []tcell.Key{tcell.KeyUp}, nil)
	km.RegisterKeyBinding(command("volumeDown", control.CmdVolumeDown), []tcell.Key{tcell.KeyDown}, nil)
	km.RegisterKeyBinding(command("seekForward", control.CmdSeekForward), []tcell.Key{tcell.KeyRight}, nil)
	km.RegisterKeyBinding(command("seekBackward", control.CmdSeekBackward), []tcell.Key{tcell.KeyLeft}, nil)
	km.RegisterKeyBinding(command("toggleMute", control.CmdToggleMute), nil, []rune{'m', 'M'})
	km.RegisterKeyBinding(command("fullscreen", control.CmdRequestFullscreen), nil, []rune{'f', 'F'})
	km.RegisterKeyBinding(command("exitFullscreen", control.CmdExitFullscreen), []tcell.Key{tcell.KeyEscape}, nil)
	km.RegisterKeyBinding(command("minimize", control.CmdToggleMinimized), nil, []rune{'w', 'W'})
	km.RegisterKeyBinding(command("next", control.CmdNext), nil, []rune{'n', 'N'})
	km.RegisterKeyBinding(command("previous", control.CmdPrevious), nil, []rune{'p', 'P'})
	km.RegisterKeyBinding(command("rateDown", control.CmdRateDown), nil, []rune{'<', ','})
	km.RegisterKeyBinding(command("rateUp", control.CmdRateUp), nil, []rune{'>', '.'})

	km.RegisterSequence(selectIndex("goStart", func() int { return 0 }), "gg")
	km.RegisterKeyBinding(selectIndex("goEnd", func() int { return len(a.playlist) - 1 }), nil, []rune{'G'})

	km.RegisterKeyBinding(KeyAction{name: "help", handler: a.showHelp}, nil, []rune{'?'})
	km.RegisterKeyBinding(KeyAction{name: "quit", handler: a.Stop}, []tcell.Key{tcell.KeyCtrlC}, []rune{'q', 'Q'})

	return km
}
