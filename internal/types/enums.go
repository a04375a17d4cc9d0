package types

import (
	"fmt"
	"strings"
)

// DayStatus is the evaluated outcome of one calendar date in a mission's history.
// A date with no entry has not been evaluated yet.
type DayStatus string

const (
	DayCompleted DayStatus = "completed"
	DayFailed    DayStatus = "failed"
	DaySkipped   DayStatus = "skipped"
	DayRest      DayStatus = "rest"
)

func (s DayStatus) IsValid() bool {
	switch s {
	case DayCompleted, DayFailed, DaySkipped, DayRest:
		return true
	}
	return false
}

// IsFinal reports whether the status may never be overwritten once recorded.
func (s DayStatus) IsFinal() bool {
	switch s {
	case DayCompleted, DayFailed, DaySkipped:
		return true
	}
	return false
}

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// ParsePriority accepts h/m/l shorthands; empty input means high.
func ParsePriority(input string) (Priority, error) {
	switch strings.TrimSpace(strings.ToLower(input)) {
	case "", "h", "high":
		return PriorityHigh, nil
	case "m", "med", "medium":
		return PriorityMedium, nil
	case "l", "low":
		return PriorityLow, nil
	}
	return "", fmt.Errorf("invalid priority: %q", input)
}

type TaskStatus string

const (
	TaskPending   TaskStatus = "pending"
	TaskCompleted TaskStatus = "completed"
)

func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskPending, TaskCompleted:
		return true
	}
	return false
}

type PenaltyType string

const (
	PenaltyRestart  PenaltyType = "restart"
	PenaltyFine     PenaltyType = "fine"
	PenaltyPhysical PenaltyType = "physical"
	PenaltySocial   PenaltyType = "social"
)

func (p PenaltyType) IsValid() bool {
	switch p {
	case PenaltyRestart, PenaltyFine, PenaltyPhysical, PenaltySocial:
		return true
	}
	return false
}

func ParsePenaltyType(input string) (PenaltyType, error) {
	p := PenaltyType(strings.TrimSpace(strings.ToLower(input)))
	if p == "" {
		return PenaltyRestart, nil
	}
	if !p.IsValid() {
		return "", fmt.Errorf("invalid penalty type: %q", input)
	}
	return p, nil
}

type Frequency string

const (
	FrequencyDaily    Frequency = "daily"
	FrequencySelected Frequency = "selected"
)

func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyDaily, FrequencySelected:
		return true
	}
	return false
}

func ParseFrequency(input string) (Frequency, error) {
	f := Frequency(strings.TrimSpace(strings.ToLower(input)))
	if f == "" {
		return FrequencyDaily, nil
	}
	if !f.IsValid() {
		return "", fmt.Errorf("invalid frequency: %q", input)
	}
	return f, nil
}
