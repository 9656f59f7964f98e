package model

import "fmt"

// Side is the position an argument takes. In fixed mode it is "pro" or "con";
// in label mode it is one of the debate's option labels.
type Side string

const (
	SidePro Side = "pro"
	SideCon Side = "con"
)

// SideMode selects how sides are modelled for a deployment. The two modes are
// incompatible at the schema level, so a deployment picks one and keeps it.
type SideMode string

const (
	SideModeFixed SideMode = "fixed"
	SideModeLabel SideMode = "label"
)

func ParseSideMode(s string) (SideMode, error) {
	switch SideMode(s) {
	case "", SideModeFixed:
		return SideModeFixed, nil
	case SideModeLabel:
		return SideModeLabel, nil
	}
	return "", fmt.Errorf("unknown side mode: %s", s)
}

// Sides returns the sides arguments on d may take, in display order.
func (m SideMode) Sides(d *Debate) []Side {
	if m == SideModeLabel {
		return []Side{Side(d.OptionA), Side(d.OptionB)}
	}
	return []Side{SidePro, SideCon}
}

// Accepts reports whether s is a valid side for an argument on d.
func (m SideMode) Accepts(d *Debate, s Side) bool {
	for _, side := range m.Sides(d) {
		if side == s && s != "" {
			return true
		}
	}
	return false
}
