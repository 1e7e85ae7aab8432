package tower

// Event is a notification emitted by the simulation during a tick.
// The set of variants is closed: collaborators (audio, VFX, UI) switch on the
// concrete type and never mutate game state in response.
type Event interface {
	isEvent()
}

// WallBounceScored is emitted when a timing window closes with any outcome.
// MISSED outcomes carry a zero NewVX and are not scoring-eligible.
type WallBounceScored struct {
	Quality BounceQuality
	Side    WallSide
	NewVX   float64
	X, Y    float64
}

// ChainBroken is emitted when an open combo chain lapses without a new event.
type ChainBroken struct {
	Length     int
	ScoreDelta int
}

// ChainCompleted is emitted when a combo chain is finalized at session end.
type ChainCompleted struct {
	Length     int
	ScoreDelta int
}

// MagneticChainCreated is emitted when a jump between two magnetic platforms
// counts as a chain link.
type MagneticChainCreated struct {
	From, To    PlatformHandle
	Length      int
	TotalCharge float64
}

// DeathLineActivated is emitted once per session when the pursuit begins.
type DeathLineActivated struct {
	Y float64
}

// DeathLineWarning is emitted while the player is inside the warning band,
// at most once per configured interval.
type DeathLineWarning struct {
	Distance float64
	Urgency  float64 // 0 at band edge, 1 at contact
	Y        float64
}

// GameOverCause says what ended the session.
type GameOverCause int

const (
	CauseDeathLine GameOverCause = iota
	CauseFellBehind               // fell below the playfield with no line active
)

// String returns a human-readable cause.
func (c GameOverCause) String() string {
	switch c {
	case CauseDeathLine:
		return "death line"
	case CauseFellBehind:
		return "fell"
	default:
		return "unknown"
	}
}

// GameOver is emitted exactly once when the session ends.
type GameOver struct {
	Cause      GameOverCause
	SurvivalMs int64
	Height     int // Rows climbed, not raw Y
	X, Y       float64
}

// MilestoneReached is emitted every configured number of rows climbed.
type MilestoneReached struct {
	Rows int
}

// ItemCollected is emitted when the player picks an item off a platform.
type ItemCollected struct {
	Kind     ItemKind
	Replaced ItemKind // ItemNone unless a full inventory dropped its oldest slot
}

// ItemUsed is emitted when an inventory item is consumed.
type ItemUsed struct {
	Kind ItemKind
}

func (WallBounceScored) isEvent()     {}
func (ChainBroken) isEvent()          {}
func (ChainCompleted) isEvent()       {}
func (MagneticChainCreated) isEvent() {}
func (DeathLineActivated) isEvent()   {}
func (DeathLineWarning) isEvent()     {}
func (GameOver) isEvent()             {}
func (MilestoneReached) isEvent()     {}
func (ItemCollected) isEvent()        {}
func (ItemUsed) isEvent()             {}

// Notifier consumes events. The game owns an explicit ordered list of
// notifiers and delivers every event to each of them, in registration order,
// synchronously within the emitting tick.
type Notifier interface {
	Notify(Event)
}
