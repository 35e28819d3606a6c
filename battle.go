package wander

import "math"

// Battle is the scripted wizard-battle minigame. While active, the
// camera locks to the midpoint between the two combatants, the interact
// input casts a spell instead of triggering world interactions, and the
// character renders at its battle position instead of its world
// position.
type Battle struct {
	PlayerX, PlayerY float32
	WizardX, WizardY float32

	WizardSprite Sprite

	playerHP int
	wizardHP int

	// A cast spell animates as a bolt from player to wizard.
	boltActive   bool
	boltProgress float32

	wizardTimer float32
	hitFlash    float32

	over bool
	won  bool
}

const (
	battleStartHP  = 3
	boltSpeed      = 2.5 // progress per second
	wizardCastGap  = 1.8 // seconds between wizard attacks
	combatantSpace = 420 // horizontal distance between combatants
)

// NewBattle starts a battle staged around the given world position.
func NewBattle(arenaX, arenaY float32, wizardSprite Sprite) *Battle {
	return &Battle{
		PlayerX:      arenaX - combatantSpace/2,
		PlayerY:      arenaY,
		WizardX:      arenaX + combatantSpace/2,
		WizardY:      arenaY,
		WizardSprite: wizardSprite,
		playerHP:     battleStartHP,
		wizardHP:     battleStartHP,
	}
}

// Midpoint returns the point between the combatants, which the camera
// centers on while the battle runs.
func (bt *Battle) Midpoint() (x, y float32) {
	return (bt.PlayerX + bt.WizardX) / 2, (bt.PlayerY + bt.WizardY) / 2
}

// Act performs the minigame action for one interact press: casting a
// spell bolt at the wizard. Ignored while a bolt is already in flight
// or the battle is over.
func (bt *Battle) Act() {
	if bt.over || bt.boltActive {
		return
	}
	bt.boltActive = true
	bt.boltProgress = 0
}

// Update advances bolt flight, wizard attacks, and hit flashes.
func (bt *Battle) Update(dt float32) {
	if bt.over {
		return
	}

	if bt.hitFlash > 0 {
		bt.hitFlash -= dt
	}

	if bt.boltActive {
		bt.boltProgress += dt * boltSpeed
		if bt.boltProgress >= 1 {
			bt.boltActive = false
			bt.wizardHP--
			bt.hitFlash = 0.25
			if bt.wizardHP <= 0 {
				bt.over = true
				bt.won = true
				return
			}
		}
	}

	bt.wizardTimer += dt
	if bt.wizardTimer >= wizardCastGap {
		bt.wizardTimer = 0
		bt.playerHP--
		if bt.playerHP <= 0 {
			bt.over = true
			bt.won = false
		}
	}
}

// Over reports whether the battle has finished.
func (bt *Battle) Over() bool { return bt.over }

// Won reports whether the player won a finished battle.
func (bt *Battle) Won() bool { return bt.won }

// HP returns the current player and wizard hit points.
func (bt *Battle) HP() (player, wizard int) { return bt.playerHP, bt.wizardHP }

// Render draws the battle visuals: the wizard, the bolt in flight, and
// HP pips above each combatant. The player avatar itself is drawn by
// the game loop at the battle player position.
func (bt *Battle) Render(batch *SpriteBatch) error {
	wizardTint := White
	if bt.hitFlash > 0 {
		// Overdriven channels read as a glow; the fragment stage
		// saturates them.
		wizardTint = Color{R: 1.8, G: 1.8, B: 1.8, A: 1}
	}
	if err := batch.DrawEx(bt.WizardSprite,
		bt.WizardX-bt.WizardSprite.Width/2, bt.WizardY-bt.WizardSprite.Height/2,
		bt.WizardSprite.Width, bt.WizardSprite.Height, 0, wizardTint); err != nil {
		return err
	}

	if bt.boltActive {
		x := bt.PlayerX + (bt.WizardX-bt.PlayerX)*bt.boltProgress
		y := bt.PlayerY + float32(math.Sin(float64(bt.boltProgress)*math.Pi))*-40
		if err := batch.DrawRect(x-6, y-6, 12, 12, Color{R: 1.6, G: 1.4, B: 0.4, A: 1}); err != nil {
			return err
		}
	}

	if err := bt.renderPips(batch, bt.PlayerX, bt.PlayerY-60, bt.playerHP); err != nil {
		return err
	}
	return bt.renderPips(batch, bt.WizardX, bt.WizardY-60, bt.wizardHP)
}

func (bt *Battle) renderPips(batch *SpriteBatch, cx, y float32, hp int) error {
	const pip, gap = 10, 4
	total := float32(battleStartHP*pip + (battleStartHP-1)*gap)
	x := cx - total/2
	for i := 0; i < battleStartHP; i++ {
		c := Color{R: 0.85, G: 0.2, B: 0.2, A: 1}
		if i >= hp {
			c = Color{R: 0.25, G: 0.25, B: 0.25, A: 0.8}
		}
		if err := batch.DrawRect(x+float32(i)*(pip+gap), y, pip, pip, c); err != nil {
			return err
		}
	}
	return nil
}
