package session

import (
	"time"

	sess "github.com/nazolab/mogi/internal/session"
)

// timerTickMsg is sent every second to drive the countdown.
type timerTickMsg time.Time

// advanceMsg delivers a scheduled auto-advance once its delay has passed.
type advanceMsg struct {
	Ticket sess.AdvanceTicket
}
