package wander

import "testing"

func newTestGame(t *testing.T) (*Game, *mockDevice) {
	t.Helper()
	dev := newMockDevice()
	g, err := NewGame(dev, DefaultWorld(), 800, 600)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	return g, dev
}

func TestGame_SpawnsAtMarker(t *testing.T) {
	g, _ := newTestGame(t)
	spawn, _ := g.world.Place("spawn")
	if g.player.X != spawn.X || g.player.Y != spawn.Y {
		t.Errorf("Expected player at spawn (%g,%g), got (%g,%g)",
			spawn.X, spawn.Y, g.player.X, g.player.Y)
	}
}

func TestGame_StartStopIdempotent(t *testing.T) {
	g, _ := newTestGame(t)

	if g.Running() {
		t.Fatal("Expected stopped on construction")
	}
	g.Start()
	g.Start()
	if !g.Running() {
		t.Fatal("Expected running after Start")
	}
	g.Stop()
	g.Stop()
	if g.Running() {
		t.Fatal("Expected stopped after Stop")
	}
}

func TestGame_TickNoopWhileStopped(t *testing.T) {
	g, dev := newTestGame(t)
	before := len(dev.calls)
	if err := g.Tick(); err != nil {
		t.Fatal(err)
	}
	if len(dev.calls) != before {
		t.Error("Expected no rendering while stopped")
	}
}

func TestGame_KeyboardMovement(t *testing.T) {
	g, _ := newTestGame(t)
	startX := g.player.X

	g.input.SetKey(KeyRight, true)
	g.Step(0.1)

	if !approx(g.player.X, startX+40) { // 400 px/s * 0.1s
		t.Errorf("Expected X=%g, got %g", startX+40, g.player.X)
	}
	if g.player.Facing != FacingEast {
		t.Errorf("Expected FacingEast, got %v", g.player.Facing)
	}
}

func TestGame_TouchMovementUsesThisFramesCameraOffset(t *testing.T) {
	g, _ := newTestGame(t)
	g.camera.X, g.camera.Y = 1000, 500

	// A tap at screen (400,300) resolves to world (1400,800), due east
	// of the spawn at (1200,800).
	g.input.SetTouch(400, 300, true)
	startX, startY := g.player.X, g.player.Y
	g.Step(0.1)

	if !approx(g.player.X, startX+40) || !approx(g.player.Y, startY) {
		t.Errorf("Expected eastward movement to (%g,%g), got (%g,%g)",
			startX+40, startY, g.player.X, g.player.Y)
	}
}

func TestGame_PlayerClampedToWorld(t *testing.T) {
	g, _ := newTestGame(t)
	g.player.X, g.player.Y = g.world.Width-1, g.world.Height-1

	g.input.SetKey(KeyRight, true)
	g.input.SetKey(KeyDown, true)
	for i := 0; i < 60; i++ {
		g.Step(1.0 / 60)
	}

	if g.player.X > g.world.Width-g.player.W/2 || g.player.Y > g.world.Height-g.player.H/2 {
		t.Errorf("Player escaped the world: (%g,%g)", g.player.X, g.player.Y)
	}
}

func TestGame_InteractWithinRange(t *testing.T) {
	g, _ := newTestGame(t)
	sw, _ := g.world.Place("light-switch")

	// Just inside the range boundary.
	g.player.X, g.player.Y = sw.X+DefaultInteractRange-1, sw.Y
	g.input.PressInteract()
	g.Step(0)

	if !g.theme.Dark() {
		t.Error("Expected the light switch to toggle dark mode")
	}
}

func TestGame_InteractOutOfRange(t *testing.T) {
	g, _ := newTestGame(t)
	sw, _ := g.world.Place("light-switch")

	g.player.X, g.player.Y = sw.X+DefaultInteractRange+1, sw.Y
	g.input.PressInteract()
	g.Step(0)

	if g.theme.Dark() {
		t.Error("Expected no interaction past the range boundary")
	}
}

func TestGame_InteractPressIsOneShot(t *testing.T) {
	g, _ := newTestGame(t)
	sw, _ := g.world.Place("light-switch")
	g.player.X, g.player.Y = sw.X, sw.Y

	g.input.PressInteract()
	g.Step(0)
	g.Step(0) // no new press

	if !g.theme.Dark() {
		t.Fatal("Expected one toggle")
	}
}

func TestGame_DialogPausesSimulation(t *testing.T) {
	g, _ := newTestGame(t)
	sign, _ := g.world.Place("resume-sign")
	g.player.X, g.player.Y = sign.X, sign.Y

	var got DialogEvent
	g.OnDialog = func(e DialogEvent) { got = e }

	g.input.PressInteract()
	g.Step(0)

	if got.Title != "Resume" {
		t.Fatalf("Expected resume dialog, got %+v", got)
	}
	if !g.modalOpen {
		t.Fatal("Expected modal flag set while the dialog is open")
	}

	// Movement is ignored while the modal is open.
	x := g.player.X
	g.input.SetKey(KeyRight, true)
	g.Step(0.1)
	if g.player.X != x {
		t.Error("Expected player frozen behind a modal")
	}

	g.SetModalOpen(false)
	g.Step(0.1)
	if g.player.X == x {
		t.Error("Expected movement to resume after the modal closes")
	}
}

func TestGame_LinkDispatch(t *testing.T) {
	g, _ := newTestGame(t)
	var opened string
	g.OnLink = func(url string) { opened = url }

	g.dispatch(LinkEvent{URL: "https://example.com"})
	if opened != "https://example.com" {
		t.Errorf("Expected link handler invoked, got %q", opened)
	}
}

func TestGame_WizardTowerStartsBattle(t *testing.T) {
	g, _ := newTestGame(t)
	tower, _ := g.world.Place("wizard-tower")
	g.player.X, g.player.Y = tower.X, tower.Y+100

	g.input.PressInteract()
	g.Step(0)

	if !g.InBattle() {
		t.Fatal("Expected battle to start at the wizard tower")
	}
}

func TestGame_BattleCapturesInteractAndMovement(t *testing.T) {
	g, _ := newTestGame(t)
	tower, _ := g.world.Place("wizard-tower")
	g.player.X, g.player.Y = tower.X, tower.Y+100
	g.input.PressInteract()
	g.Step(0)

	// World position is frozen during the battle.
	wx, wy := g.player.X, g.player.Y
	g.input.SetKey(KeyRight, true)
	g.Step(0.1)
	if g.player.X != wx || g.player.Y != wy {
		t.Error("Expected world position frozen during the battle")
	}

	// Move the player's world position next to the light switch: the
	// interact press must go to the battle, never the world.
	sw, _ := g.world.Place("light-switch")
	g.player.X, g.player.Y = sw.X, sw.Y
	g.input.PressInteract()
	for i := 0; i < 30; i++ { // let the bolt land
		g.Step(1.0 / 60)
	}

	if g.theme.Dark() {
		t.Error("Expected the light switch untouched while battling")
	}
	if _, w := g.battle.HP(); w != 2 {
		t.Errorf("Expected the press to cast a bolt, wizard at 2 HP, got %d", w)
	}
}

func TestGame_BattleLocksCameraOnMidpoint(t *testing.T) {
	g, _ := newTestGame(t)
	tower, _ := g.world.Place("wizard-tower")
	g.player.X, g.player.Y = tower.X, tower.Y+100
	g.input.PressInteract()
	g.Step(0)

	mx, my := g.battle.Midpoint()
	wantX, wantY := g.camera.CenterTarget(mx, my)
	wantX = clampf(wantX, 0, g.world.Width-g.camera.ViewportW)
	wantY = clampf(wantY, 0, g.world.Height-g.camera.ViewportH)

	for i := 0; i < 180; i++ {
		g.Step(1.0 / 60)
	}

	if dx := g.camera.X - wantX; dx > 1 || dx < -1 {
		t.Errorf("Expected camera X near %g, got %g", wantX, g.camera.X)
	}
	if dy := g.camera.Y - wantY; dy > 1 || dy < -1 {
		t.Errorf("Expected camera Y near %g, got %g", wantY, g.camera.Y)
	}
}

func TestGame_BattleEndsAndControlReturns(t *testing.T) {
	g, _ := newTestGame(t)
	tower, _ := g.world.Place("wizard-tower")
	g.player.X, g.player.Y = tower.X, tower.Y+100
	g.input.PressInteract()
	g.Step(0)

	// Win: cast three bolts.
	for i := 0; i < 3; i++ {
		g.input.PressInteract()
		for j := 0; j < 30; j++ {
			g.Step(1.0 / 60)
		}
	}
	if !g.battle.Over() || !g.battle.Won() {
		t.Fatal("Expected a won battle")
	}

	// The battle lingers briefly, then clears.
	for i := 0; i < 120; i++ {
		g.Step(1.0 / 60)
	}
	if g.InBattle() {
		t.Fatal("Expected battle dismissed after the end delay")
	}

	// Movement works again.
	x := g.player.X
	g.input.SetKey(KeyRight, true)
	g.Step(0.1)
	if g.player.X == x {
		t.Error("Expected movement restored after the battle")
	}
}

func TestGame_CameraFollowsPlayer(t *testing.T) {
	g, _ := newTestGame(t)

	wantX, wantY := g.camera.CenterTarget(g.player.X, g.player.Y)
	for i := 0; i < 180; i++ {
		g.Step(1.0 / 60)
	}

	if dx := g.camera.X - wantX; dx > 1 || dx < -1 {
		t.Errorf("Expected camera settled near X=%g, got %g", wantX, g.camera.X)
	}
	if dy := g.camera.Y - wantY; dy > 1 || dy < -1 {
		t.Errorf("Expected camera settled near Y=%g, got %g", wantY, g.camera.Y)
	}
}

func TestGame_WorldToScreen(t *testing.T) {
	g, _ := newTestGame(t)
	g.camera.X, g.camera.Y = 300, 100

	sx, sy := g.WorldToScreen(500, 400)
	if sx != 200 || sy != 300 {
		t.Errorf("Expected screen (200,300), got (%g,%g)", sx, sy)
	}
	cx, cy := g.CameraOffset()
	if cx != 300 || cy != 100 {
		t.Errorf("Expected offset (300,100), got (%g,%g)", cx, cy)
	}
}

func TestGame_RenderFrame(t *testing.T) {
	g, dev := newTestGame(t)
	g.Start()

	if err := g.Tick(); err != nil {
		t.Fatalf("Tick: %v", err)
	}

	if len(dev.cleared) != 1 {
		t.Fatalf("Expected one clear per frame, got %d", len(dev.cleared))
	}
	if len(dev.calls) == 0 {
		t.Fatal("Expected draw calls for the frame")
	}

	// The ground rect is the first quad, at the world origin and size.
	first := dev.calls[0]
	if first.vertices[0] != 0 || first.vertices[1] != 0 {
		t.Errorf("Expected ground at origin, got (%g,%g)", first.vertices[0], first.vertices[1])
	}
	// Its BR corner spans the world.
	br := first.vertices[2*floatsPerVertex:]
	if br[0] != g.world.Width || br[1] != g.world.Height {
		t.Errorf("Expected ground spanning %gx%g, got (%g,%g)",
			g.world.Width, g.world.Height, br[0], br[1])
	}

	// The projection tracks the camera.
	if dev.projection != g.camera.ViewProjection() {
		t.Error("Expected the frame projection to match the camera")
	}

	// A second tick reports the first frame's draw calls.
	if err := g.Tick(); err != nil {
		t.Fatal(err)
	}
	if g.batch.DrawCalls() == 0 {
		t.Error("Expected a nonzero draw-call count after rendering")
	}
}

func TestGame_DarkModeTintsFrame(t *testing.T) {
	g, dev := newTestGame(t)
	g.theme.Toggle()
	g.Start()

	if err := g.Tick(); err != nil {
		t.Fatal(err)
	}

	if dev.cleared[0] != g.theme.ClearColor() {
		t.Error("Expected dark clear color")
	}
	// The ground quad's color carries the global tint.
	v := dev.calls[0].vertices
	plain := g.groundColor
	if v[4] >= plain.R {
		t.Errorf("Expected tinted ground darker than %g, got %g", plain.R, v[4])
	}
}

func TestGame_ResizePropagates(t *testing.T) {
	g, dev := newTestGame(t)
	g.Resize(1024, 768)

	if dev.viewportW != 1024 || dev.viewportH != 768 {
		t.Errorf("Expected device viewport 1024x768, got %dx%d", dev.viewportW, dev.viewportH)
	}
	if g.camera.ViewportW != 1024 || g.camera.ViewportH != 768 {
		t.Errorf("Expected camera viewport 1024x768, got %gx%g",
			g.camera.ViewportW, g.camera.ViewportH)
	}
}

func TestGame_Options(t *testing.T) {
	dev := newMockDevice()
	in := NewInputState()
	g, err := NewGame(dev, DefaultWorld(), 800, 600,
		WithInput(in),
		WithSmoothing(0.25),
		WithMoveSpeed(120),
	)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}

	if g.Input() != in {
		t.Error("Expected the supplied input state to be shared")
	}
	if g.camera.Smoothing != 0.25 {
		t.Errorf("Expected smoothing 0.25, got %g", g.camera.Smoothing)
	}
	if g.player.Speed != 120 {
		t.Errorf("Expected move speed 120, got %g", g.player.Speed)
	}
}

func TestGame_EntitiesBuiltFromLayout(t *testing.T) {
	g, _ := newTestGame(t)

	if len(g.interactables) != len(g.world.PlacesIn("interactable")) {
		t.Errorf("Expected %d interactables, got %d",
			len(g.world.PlacesIn("interactable")), len(g.interactables))
	}
	if len(g.decorations) != len(g.world.PlacesIn("decoration")) {
		t.Errorf("Expected %d decorations, got %d",
			len(g.world.PlacesIn("decoration")), len(g.decorations))
	}
	if len(g.signs) != len(g.world.PlacesIn("signage")) {
		t.Errorf("Expected %d signs, got %d",
			len(g.world.PlacesIn("signage")), len(g.signs))
	}
	if len(g.player.Sprites) != 4 {
		t.Errorf("Expected 4 facing sprites, got %d", len(g.player.Sprites))
	}
}
