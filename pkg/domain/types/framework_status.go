package types

import "fmt"

// FrameworkStatus is the procurement phase of a framework
type FrameworkStatus string

const (
	FrameworkStatusComing     FrameworkStatus = "coming"
	FrameworkStatusOpen       FrameworkStatus = "open"
	FrameworkStatusPending    FrameworkStatus = "pending"
	FrameworkStatusStandstill FrameworkStatus = "standstill"
	FrameworkStatusLive       FrameworkStatus = "live"
	FrameworkStatusExpired    FrameworkStatus = "expired"
)

func (s FrameworkStatus) IsValid() bool {
	switch s {
	case FrameworkStatusComing,
		FrameworkStatusOpen,
		FrameworkStatusPending,
		FrameworkStatusStandstill,
		FrameworkStatusLive,
		FrameworkStatusExpired:
		return true
	default:
		return false
	}
}

func (s FrameworkStatus) In(statuses ...FrameworkStatus) bool {
	for _, st := range statuses {
		if s == st {
			return true
		}
	}
	return false
}

func (s FrameworkStatus) String() string {
	return string(s)
}

// ParseFrameworkStatus parses a string into a FrameworkStatus
func ParseFrameworkStatus(s string) (FrameworkStatus, error) {
	status := FrameworkStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid framework status: %s", s)
	}
	return status, nil
}
