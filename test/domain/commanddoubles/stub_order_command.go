//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/poetryupdater/internal/domain/commands"
	"github.com/rios0rios0/poetryupdater/internal/domain/entities"
)

// StubOrderCommand is a stub implementation of commands.Order.
type StubOrderCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	Plan             *entities.Plan
	LastPaths        []string
}

var _ commands.Order = (*StubOrderCommand)(nil)

func (s *StubOrderCommand) Execute(_ *entities.Settings, paths []string) (*entities.Plan, error) {
	s.ExecuteCallCount++
	s.LastPaths = paths
	return s.Plan, s.ExecuteErr
}
