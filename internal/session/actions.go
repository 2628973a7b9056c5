package session

// Action is a host command, usually bound to a key.
type Action int

const (
	ActionNone Action = iota
	ActionTogglePause
	ActionReset
	ActionFaster
	ActionSlower
	ActionToggleEdit
	ActionAddPoint
	ActionUndo
	ActionClear
	ActionFinalize
	ActionSave
	ActionLoad
	ActionPlaceFinish
)

var actionNames = map[Action]string{
	ActionNone:        "none",
	ActionTogglePause: "pause",
	ActionReset:       "reset",
	ActionFaster:      "faster",
	ActionSlower:      "slower",
	ActionToggleEdit:  "edit",
	ActionAddPoint:    "add-point",
	ActionUndo:        "undo",
	ActionClear:       "clear",
	ActionFinalize:    "finalize",
	ActionSave:        "save",
	ActionLoad:        "load",
	ActionPlaceFinish: "place-finish",
}

func (a Action) String() string {
	if n, ok := actionNames[a]; ok {
		return n
	}
	return "unknown"
}

// Help lists the key bindings the desktop host uses, for the HUD.
var Help = []string{
	"SPACE pause  R reset  =/- speed  ESC quit",
	"E edit  click add  Z undo  C clear",
	"F finalize  S save  L load  G finish here",
}
