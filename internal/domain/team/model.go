package team

import (
	"fmt"
	"strings"
)

// RegistrationStatus is the lifecycle state of a team inside one tournament.
type RegistrationStatus string

const (
	StatusNotRegistered RegistrationStatus = "not_registered"
	StatusPending       RegistrationStatus = "pending"
	StatusApproved      RegistrationStatus = "approved"
	StatusRejected      RegistrationStatus = "rejected"
)

// Team is club reference data owned by the roster collaborator.
type Team struct {
	ID       string
	Name     string
	ImageURL string
}

// Stats are partial figures the backend attaches to a tournament team record.
type Stats struct {
	Played       int
	Won          int
	Drawn        int
	Lost         int
	GoalsFor     int
	GoalsAgainst int
	Points       int
}

// TournamentTeam is a team's participation record within one tournament.
type TournamentTeam struct {
	ID           string
	TournamentID string
	Team         Team
	GroupID      string
	GroupName    string
	Status       RegistrationStatus
	BackendStats *Stats
}

func (t TournamentTeam) Validate() error {
	if strings.TrimSpace(t.Team.ID) == "" && strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("tournament team requires a team id or participation id")
	}
	switch t.Status {
	case "", StatusNotRegistered, StatusPending, StatusApproved, StatusRejected:
	default:
		return fmt.Errorf("invalid registration status: %s", t.Status)
	}

	return nil
}

// TeamID is the identity standings are keyed by.
func (t TournamentTeam) TeamID() string {
	if id := strings.TrimSpace(t.Team.ID); id != "" {
		return id
	}
	return strings.TrimSpace(t.ID)
}

func NormalizeStatus(value string) RegistrationStatus {
	switch RegistrationStatus(strings.ToLower(strings.TrimSpace(value))) {
	case StatusApproved, "accepted", "registered":
		return StatusApproved
	case StatusPending, "waiting":
		return StatusPending
	case StatusRejected, "declined":
		return StatusRejected
	default:
		return StatusNotRegistered
	}
}

// InGroup reports whether the team belongs to groupID. An empty groupID matches every team.
func (t TournamentTeam) InGroup(groupID string) bool {
	groupID = strings.TrimSpace(groupID)
	if groupID == "" {
		return true
	}
	return strings.TrimSpace(t.GroupID) == groupID
}
