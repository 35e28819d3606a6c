package wander

import (
	"fmt"
	"strings"
	"time"
)

// signEntity is a placed sign with an optional label drawn above it.
type signEntity struct {
	place  Place
	sprite Sprite
	label  string
}

// Game owns the per-frame orchestration: input, entity simulation,
// camera follow, and the ordered render pass. All state that the
// original design kept in globals (theme, minigame, world registry) is
// held here explicitly and handed to the components that need it.
//
// Single-threaded: every method must be called from the game-loop
// thread. Stopping the loop leaves all GPU resources intact, so
// resuming needs no re-initialization.
type Game struct {
	device Device
	batch  *SpriteBatch
	loader *TextureLoader
	input  *InputState
	camera *Camera
	world  *World
	theme  *Theme
	font   *Font

	player        *Character
	decorations   []Decoration
	interactables []*Interactable
	signs         []signEntity
	wizardSprite  Sprite

	battle         *Battle
	battleEndTimer float32

	groundColor Color

	running   bool
	modalOpen bool
	lastTick  time.Time

	// OnDialog and OnLink hand dialog panels and link opening to the
	// external UI layer. A nil handler logs and drops the event.
	OnDialog func(DialogEvent)
	OnLink   func(url string)
}

// GameOption configures a Game.
type GameOption func(*Game)

// WithFont sets the bitmap font used for signage labels and the stat
// display. Without one, text elements are skipped.
func WithFont(f *Font) GameOption {
	return func(g *Game) { g.font = f }
}

// WithTheme sets the theme state. Defaults to a non-persistent theme.
func WithTheme(t *Theme) GameOption {
	return func(g *Game) { g.theme = t }
}

// WithInput substitutes an externally-owned input state, shared with
// the windowing layer's callbacks.
func WithInput(in *InputState) GameOption {
	return func(g *Game) {
		if in != nil {
			g.input = in
		}
	}
}

// WithSmoothing overrides the camera follow factor.
func WithSmoothing(s float32) GameOption {
	return func(g *Game) {
		if s > 0 {
			g.camera.Smoothing = s
		}
	}
}

// WithMoveSpeed overrides the player's walk speed.
func WithMoveSpeed(s float32) GameOption {
	return func(g *Game) {
		if s > 0 {
			g.player.Speed = s
		}
	}
}

// NewGame builds a game over the given device: creates the sprite
// batch, the texture loader, mockup sprites for every placed entity,
// and the camera sized to the viewport.
func NewGame(device Device, world *World, viewportW, viewportH int, opts ...GameOption) (*Game, error) {
	batch, err := NewSpriteBatch(device, DefaultBatchCapacity)
	if err != nil {
		return nil, fmt.Errorf("create batch: %w", err)
	}

	loader := NewTextureLoader(device, nil)

	spawnX, spawnY := world.Width/2, world.Height/2
	if p, ok := world.Place("spawn"); ok {
		spawnX, spawnY = p.X, p.Y
	}

	g := &Game{
		device:      device,
		batch:       batch,
		loader:      loader,
		input:       NewInputState(),
		camera:      NewCamera(float32(viewportW), float32(viewportH), world.Width, world.Height),
		world:       world,
		theme:       NewTheme(""),
		player:      NewCharacter(spawnX, spawnY),
		groundColor: Color{R: 0.42, G: 0.62, B: 0.35, A: 1},
	}
	for _, opt := range opts {
		opt(g)
	}

	if err := g.buildEntities(); err != nil {
		return nil, err
	}
	return g, nil
}

// buildEntities generates mockup sprites and instantiates the entities
// the world layout places.
func (g *Game) buildEntities() error {
	pal := MockupPalette()

	g.player.Sprites = make(map[Facing]Sprite, 4)
	for _, f := range []Facing{FacingSouth, FacingNorth, FacingEast, FacingWest} {
		s, err := GenerateSprite(g.loader, StickFigurePattern(f), pal, 8)
		if err != nil {
			return fmt.Errorf("player sprite: %w", err)
		}
		g.player.Sprites[f] = s
	}

	var err error
	if g.wizardSprite, err = GenerateSprite(g.loader, WizardPattern(), pal, 8); err != nil {
		return fmt.Errorf("wizard sprite: %w", err)
	}
	tree, err := GenerateSprite(g.loader, TreePattern(), pal, 10)
	if err != nil {
		return fmt.Errorf("tree sprite: %w", err)
	}
	rock, err := GenerateSprite(g.loader, RockPattern(), pal, 10)
	if err != nil {
		return fmt.Errorf("rock sprite: %w", err)
	}
	sign, err := GenerateSprite(g.loader, SignPattern(), pal, 10)
	if err != nil {
		return fmt.Errorf("sign sprite: %w", err)
	}

	for _, p := range g.world.Places {
		switch p.Category {
		case "decoration":
			s := tree
			if strings.HasPrefix(p.ID, "rock") {
				s = rock
			}
			g.decorations = append(g.decorations, Decoration{X: p.X, Y: p.Y, Sprite: s})
		case "interactable":
			g.interactables = append(g.interactables, NewInteractable(p, sign, eventForPlace(p)))
		case "signage":
			g.signs = append(g.signs, signEntity{place: p, sprite: sign, label: labelForPlace(p)})
		}
	}
	return nil
}

// eventForPlace maps the default world's interactables to their
// interaction events.
func eventForPlace(p Place) Event {
	switch p.ID {
	case "light-switch":
		return VisualEvent{Effect: EffectLightSwitch}
	case "wizard-tower":
		return AnimationEvent{Name: SequenceBattle}
	case "resume-sign":
		return DialogEvent{Title: "Resume", Text: "resume viewer"}
	default:
		return DialogEvent{Title: p.ID, Text: "Coming soon!"}
	}
}

func labelForPlace(p Place) string {
	switch p.ID {
	case "coming-soon":
		return "Coming soon!"
	case "projects-sign":
		return "Projects"
	default:
		return p.ID
	}
}

// Start begins the loop. Idempotent: calling Start while already
// running is a no-op, so tab-visibility resume never double-starts.
func (g *Game) Start() {
	if g.running {
		return
	}
	g.running = true
	g.lastTick = time.Time{} // first tick after (re)start sees dt=0
	logDebugf("game started")
}

// Stop pauses the loop. GPU resources stay intact for resume.
func (g *Game) Stop() {
	if !g.running {
		return
	}
	g.running = false
	logDebugf("game stopped")
}

// Running reports whether the loop is active.
func (g *Game) Running() bool { return g.running }

// Input returns the input state the windowing layer feeds.
func (g *Game) Input() *InputState { return g.input }

// Loader returns the texture loader for external asset loads.
func (g *Game) Loader() *TextureLoader { return g.loader }

// SetFont installs the bitmap font after construction, once its pages
// have loaded through the game's own loader.
func (g *Game) SetFont(f *Font) { g.font = f }

// Theme returns the theme state.
func (g *Game) Theme() *Theme { return g.theme }

// Player returns the avatar.
func (g *Game) Player() *Character { return g.player }

// CameraOffset returns the current camera offset, for the external
// overlay layer to position DOM-like elements in screen space.
func (g *Game) CameraOffset() (x, y float32) { return g.camera.X, g.camera.Y }

// WorldToScreen converts a world position to screen pixels under the
// current camera. Overlays must use this same conversion to stay
// aligned with rendered sprites.
func (g *Game) WorldToScreen(x, y float32) (sx, sy float32) {
	return x - g.camera.X, y - g.camera.Y
}

// SetModalOpen is called by the external UI layer when a content panel
// opens or closes; simulation pauses while one is open.
func (g *Game) SetModalOpen(open bool) { g.modalOpen = open }

// InBattle reports whether the wizard battle is running.
func (g *Game) InBattle() bool { return g.battle != nil }

// Resize refreshes viewport-dependent state after the drawable surface
// changes size. Width and height are physical pixels; rendering
// against the old projection would misalign every sprite, so this must
// run before the next render.
func (g *Game) Resize(width, height int) {
	g.device.SetViewport(width, height)
	g.camera.SetViewport(float32(width), float32(height))
}

// Tick runs one frame: update then render. No-op while stopped.
func (g *Game) Tick() error {
	if !g.running {
		return nil
	}
	now := time.Now()
	var dt float32
	if !g.lastTick.IsZero() {
		dt = float32(now.Sub(g.lastTick).Seconds())
	}
	g.lastTick = now

	g.Step(dt)
	return g.render()
}

// Step advances simulation by dt seconds. The sequence is
// order-sensitive: the camera offset must reach the input layer before
// directions are read (tap targets convert with this frame's offset),
// movement precedes interaction, and camera smoothing runs last so it
// chases this tick's positions.
func (g *Game) Step(dt float32) {
	g.loader.Poll()

	g.input.SetCameraOffset(g.camera.X, g.camera.Y)

	if !g.modalOpen && g.battle == nil {
		dir := g.input.Direction(g.player.X, g.player.Y)
		g.player.Update(dir, dt)
		g.player.ClampTo(g.world.Width, g.world.Height)
	}

	// An interact press goes to the battle or to the world, never both.
	if g.input.ConsumeInteract() {
		if g.battle != nil {
			g.battle.Act()
		} else if !g.modalOpen {
			g.tryInteract()
		}
	}

	g.advanceEffects(dt)
	g.updateCamera(dt)
}

func (g *Game) tryInteract() {
	for _, it := range g.interactables {
		if it.InRange(g.player.X, g.player.Y) {
			g.dispatch(it.Action)
			return
		}
	}
}

// dispatch is the single exhaustive match over interaction events.
func (g *Game) dispatch(ev Event) {
	switch e := ev.(type) {
	case VisualEvent:
		if e.Effect == EffectLightSwitch {
			g.theme.Toggle()
		} else {
			logWarnf("unknown visual effect %q", e.Effect)
		}
	case DialogEvent:
		if g.OnDialog != nil {
			g.modalOpen = true
			g.OnDialog(e)
		} else {
			logInfof("dialog %q: %s", e.Title, e.Text)
		}
	case LinkEvent:
		if g.OnLink != nil {
			g.OnLink(e.URL)
		} else {
			logInfof("link: %s", e.URL)
		}
	case AnimationEvent:
		if e.Name == SequenceBattle {
			g.startBattle()
		} else {
			logWarnf("unknown sequence %q", e.Name)
		}
	}
}

func (g *Game) startBattle() {
	arena, ok := g.world.Place("wizard-tower")
	arenaX, arenaY := g.player.X, g.player.Y
	if ok {
		arenaX, arenaY = arena.X, arena.Y+200
	}
	g.battle = NewBattle(arenaX, arenaY, g.wizardSprite)
	g.battleEndTimer = 0
	logInfof("wizard battle started")
}

func (g *Game) advanceEffects(dt float32) {
	g.player.Advance(dt)
	for _, it := range g.interactables {
		it.Advance(dt, g.battle == nil && it.InRange(g.player.X, g.player.Y))
	}
	if g.battle != nil {
		g.battle.Update(dt)
		if g.battle.Over() {
			g.battleEndTimer += dt
			if g.battleEndTimer >= 1.5 {
				won := g.battle.Won()
				g.battle = nil
				logInfof("wizard battle finished, won=%v", won)
			}
		}
	}
}

// updateCamera recomputes the offset: exponential smoothing toward the
// player center, or the combatants' midpoint while the battle locks
// the camera. Clamping runs inside Camera.Update, after smoothing.
func (g *Game) updateCamera(dt float32) {
	var tx, ty float32
	if g.battle != nil {
		mx, my := g.battle.Midpoint()
		tx, ty = g.camera.CenterTarget(mx, my)
	} else {
		tx, ty = g.camera.CenterTarget(g.player.X, g.player.Y)
	}
	g.camera.Update(dt, tx, ty)
}

// render issues the frame in fixed back-to-front order. There is no
// depth buffer; this order is the painter's algorithm and must not
// change: ground, decorations, interactables, signage, stat display,
// highlight overlays, player, battle visuals.
func (g *Game) render() error {
	g.device.Clear(g.theme.ClearColor())
	g.device.SetProjection(g.camera.ViewProjection())
	g.batch.SetGlobalTint(g.theme.Tint())

	g.batch.Begin()

	if err := g.batch.DrawRect(0, 0, g.world.Width, g.world.Height, g.groundColor); err != nil {
		return err
	}

	for _, d := range g.decorations {
		if err := g.batch.Draw(d.Sprite, d.X-d.Sprite.Width/2, d.Y-d.Sprite.Height, White); err != nil {
			return err
		}
	}

	for _, it := range g.interactables {
		if err := g.batch.Draw(it.Sprite, it.Place.X-it.Sprite.Width/2, it.Place.Y-it.Sprite.Height, White); err != nil {
			return err
		}
	}

	for _, s := range g.signs {
		if err := g.batch.Draw(s.sprite, s.place.X-s.sprite.Width/2, s.place.Y-s.sprite.Height, White); err != nil {
			return err
		}
		if g.font != nil && s.label != "" {
			if err := g.font.DrawCentered(g.batch, s.label, s.place.X, s.place.Y-s.sprite.Height-g.font.LineHeight()-4, White); err != nil {
				return err
			}
		}
	}

	if err := g.renderStats(); err != nil {
		return err
	}

	for _, it := range g.interactables {
		if glow := it.Glow(); glow > 0 {
			c := Color{R: 1.4, G: 1.3, B: 0.6, A: 0.35 * glow}
			w := it.Sprite.Width + 16
			h := it.Sprite.Height + 16
			if err := g.batch.DrawRect(it.Place.X-w/2, it.Place.Y-h+8, w, h, c); err != nil {
				return err
			}
		}
	}

	if err := g.renderPlayer(); err != nil {
		return err
	}

	if g.battle != nil {
		if err := g.battle.Render(g.batch); err != nil {
			return err
		}
	}

	return g.batch.End()
}

// renderPlayer draws the avatar at its world position, or at its
// battle position while the fight runs. The world position is never
// mutated for this; the substitution is confined to the draw call.
func (g *Game) renderPlayer() error {
	s, ok := g.player.Sprite()
	if !ok {
		return nil // assets still loading; skip rather than guess
	}
	x, y := g.player.X, g.player.Y
	if g.battle != nil {
		x, y = g.battle.PlayerX, g.battle.PlayerY
	}

	// Walk bob: a small vertical offset from the walk-cycle phase.
	bob := float32(0)
	if phase := g.player.WalkPhase(); g.battle == nil && phase != 0 {
		if phase >= 0.5 {
			phase = 1 - phase
		}
		bob = -phase * 6
	}

	return g.batch.DrawEx(s, x-g.player.W/2, y-g.player.H/2+bob, g.player.W, g.player.H, 0, White)
}

// renderStats draws the world-anchored stat display: the previous
// frame's draw-call count at the "stats" marker.
func (g *Game) renderStats() error {
	if g.font == nil {
		return nil
	}
	p, ok := g.world.Place("stats")
	if !ok {
		return nil
	}
	text := fmt.Sprintf("draw calls: %d", g.batch.DrawCalls())
	return g.font.DrawCentered(g.batch, text, p.X, p.Y, White)
}
