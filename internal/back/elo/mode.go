package elo

import (
	"fmt"
)

// Mode is the team size variant of a match, each mode has its own rating.
type Mode int

const ( // this is stored in DB, don't change values
	Mode2v2 Mode = 2
	Mode3v3 Mode = 3
)

type errInvalidMode Mode

func (e errInvalidMode) Error() string {
	return fmt.Sprintf("invalid mode: %d", int(e))
}

func (m Mode) String() string {
	switch m {
	case Mode2v2:
		return "2v2"
	case Mode3v3:
		return "3v3"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// TeamSize is the number of players on each side.
func (m Mode) TeamSize() int {
	return int(m)
}

// Valid returns true for the known modes.
func (m Mode) Valid() bool {
	return m == Mode2v2 || m == Mode3v3
}

// ParseMode reads the "2v2" and "3v3" notations.
func ParseMode(str string) (Mode, error) {
	switch str {
	case "2v2":
		return Mode2v2, nil
	case "3v3":
		return Mode3v3, nil
	default:
		return 0, fmt.Errorf("unknown mode %q, expected 2v2 or 3v3", str)
	}
}

// ModeForPlayerCount returns the mode of a match having count players in
// total, ok is false if no mode allows that many players.
func ModeForPlayerCount(count int) (mode Mode, ok bool) {
	switch count {
	case 2 * Mode2v2.TeamSize():
		return Mode2v2, true
	case 2 * Mode3v3.TeamSize():
		return Mode3v3, true
	default:
		return 0, false
	}
}
