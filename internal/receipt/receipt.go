// Package receipt issues the shop's human-readable transaction identifiers:
// a fixed prefix, the shop-local calendar date, and a four digit sequence
// that restarts every day.
package receipt

import (
	"fmt"
	"sync"
	"time"
)

const maxDailySequence = 9999

// SequenceExhaustedError means the daily allotment of 9999 receipts is used
// up. The failing checkout is aborted; previously issued numbers stay valid.
type SequenceExhaustedError struct {
	Date string
}

func (e *SequenceExhaustedError) Error() string {
	return fmt.Sprintf("receipt sequence exhausted for %s: %d receipts issued", e.Date, maxDailySequence)
}

// Sequencer is an explicit stateful counter injected into the checkout
// assembler, never a package global, so tests can seed and reset it. It is
// safe for concurrent use; ordering beyond "monotonic within a calendar day"
// is not guaranteed.
type Sequencer struct {
	mu       sync.Mutex
	prefix   string
	loc      *time.Location
	now      func() time.Time
	date     string
	sequence int
}

func NewSequencer(prefix string, loc *time.Location) *Sequencer {
	if loc == nil {
		loc = time.UTC
	}
	return &Sequencer{
		prefix: prefix,
		loc:    loc,
		now:    time.Now,
	}
}

// Generate returns the next receipt number, e.g. LWC202405010001. The
// sequence resets to 0001 on the first receipt of each shop-local day.
func (s *Sequencer) Generate() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.now().In(s.loc).Format("20060102")
	if today != s.date {
		s.date = today
		s.sequence = 0
	}
	if s.sequence >= maxDailySequence {
		return "", &SequenceExhaustedError{Date: s.date}
	}

	s.sequence++
	return fmt.Sprintf("%s%s%04d", s.prefix, s.date, s.sequence), nil
}

// Format renders a raw receipt number for display: LWC202405010001 becomes
// LWC-20240501-0001. Unrecognized input is returned unchanged.
func Format(receiptNumber string) string {
	if len(receiptNumber) < 13 {
		return receiptNumber
	}
	dateStart := len(receiptNumber) - 12
	seqStart := len(receiptNumber) - 4
	return receiptNumber[:dateStart] + "-" + receiptNumber[dateStart:seqStart] + "-" + receiptNumber[seqStart:]
}
