package wander

// Event is an interaction outcome produced when the player interacts
// with something in range. It is a closed tagged variant: the game
// loop matches exhaustively at a single dispatch site, and new
// behaviors are added by introducing a new variant, never by probing
// for optional fields.
type Event interface {
	isEvent()
}

// VisualEvent changes something about the scene's appearance, like the
// light switch toggling the theme.
type VisualEvent struct {
	Effect string
}

// DialogEvent opens a modal content panel with the given text. The
// panel itself is external UI; the game loop only pauses simulation
// while it is open.
type DialogEvent struct {
	Title string
	Text  string
}

// LinkEvent asks the external UI layer to open a URL.
type LinkEvent struct {
	URL string
}

// AnimationEvent starts a scripted sequence, like the wizard battle.
type AnimationEvent struct {
	Name string
}

func (VisualEvent) isEvent()    {}
func (DialogEvent) isEvent()    {}
func (LinkEvent) isEvent()      {}
func (AnimationEvent) isEvent() {}

// Effect and sequence names the default world wires up.
const (
	EffectLightSwitch = "light-switch"
	SequenceBattle    = "wizard-battle"
)
