package loan

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type TermUnit string

const (
	TermDays   TermUnit = "DAYS"
	TermWeeks  TermUnit = "WEEKS"
	TermMonths TermUnit = "MONTHS"
)

const (
	daysPerWeek  = 7
	daysPerMonth = 30 // flat, not calendar months
	maxTermDays  = 3650
)

type Term struct {
	Value int
	Unit  TermUnit
}

// ParseTerm reads "12_MONTHS", "1_MONTH", "2_WEEKS" or "30_DAYS".
func ParseTerm(raw string) (Term, error) {
	n, unit, ok := strings.Cut(strings.ToUpper(strings.TrimSpace(raw)), "_")
	if !ok {
		return Term{}, fmt.Errorf("term %q: expected N_UNIT", raw)
	}
	v, err := strconv.Atoi(n)
	if err != nil {
		return Term{}, fmt.Errorf("term %q: %w", raw, err)
	}
	if !strings.HasSuffix(unit, "S") {
		unit += "S"
	}
	t := Term{Value: v, Unit: TermUnit(unit)}
	return t, t.Validate()
}

func (t Term) Validate() error {
	switch t.Unit {
	case TermDays, TermWeeks, TermMonths:
	default:
		return fmt.Errorf("term unit %q: must be DAYS, WEEKS or MONTHS", t.Unit)
	}
	if t.Value <= 0 {
		return fmt.Errorf("term value must be positive, got %d", t.Value)
	}
	// every unit is at least a day; bounding Value first keeps Days from overflowing
	if t.Value > maxTermDays || t.Days() > maxTermDays {
		return fmt.Errorf("term %s exceeds %d days", t, maxTermDays)
	}
	return nil
}

func (t Term) Days() int {
	switch t.Unit {
	case TermWeeks:
		return t.Value * daysPerWeek
	case TermMonths:
		return t.Value * daysPerMonth
	default:
		return t.Value
	}
}

// DueFrom is start plus the term length in whole days.
func (t Term) DueFrom(start time.Time) time.Time {
	return start.AddDate(0, 0, t.Days())
}

func (t Term) String() string {
	return fmt.Sprintf("%d_%s", t.Value, t.Unit)
}
