package assistant

import (
	"context"
	"fish-logistics-service/internal/domain"
	"sync"
)

// MockTextGenerator returns a canned reply and records the questions it was asked.
type MockTextGenerator struct {
	Reply string
	Err   error

	mu        sync.Mutex
	questions []string
	routes    []*domain.RouteCandidate
}

func (m *MockTextGenerator) Answer(_ context.Context, question string, route *domain.RouteCandidate) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.questions = append(m.questions, question)
	m.routes = append(m.routes, route)
	if m.Err != nil {
		return "", m.Err
	}
	return m.Reply, nil
}

func (m *MockTextGenerator) Questions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.questions...)
}

func (m *MockTextGenerator) LastRoute() *domain.RouteCandidate {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.routes) == 0 {
		return nil
	}
	return m.routes[len(m.routes)-1]
}
