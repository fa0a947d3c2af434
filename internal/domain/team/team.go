package team

import "github.com/quizdeck/backend/internal/id"

// Team is a named group of players registered for one pack's quiz night.
type Team struct {
	ID     string
	PackID string
	Name   string
}

// New creates a Team with a generated ID.
func New(packID, name string) *Team {
	return &Team{
		ID:     id.GenerateID(),
		PackID: packID,
		Name:   name,
	}
}
