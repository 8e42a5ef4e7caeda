package vacation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store persists the request collection. Load returns a nil slice when
// nothing has ever been saved.
type Store interface {
	LoadVacations(ctx context.Context) ([]Request, error)
	SaveVacations(ctx context.Context, requests []Request) error
}

// Service tracks vacation requests through the pending → approved/rejected
// lifecycle.
type Service struct {
	mu       sync.Mutex
	store    Store
	requests []Request
	now      func() time.Time
}

func New(ctx context.Context, store Store, seed []Request) (*Service, error) {
	requests, err := store.LoadVacations(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: load: %v", ErrStorage, err)
	}
	if requests == nil && len(seed) > 0 {
		requests = make([]Request, len(seed))
		copy(requests, seed)
		if err := store.SaveVacations(ctx, requests); err != nil {
			return nil, fmt.Errorf("%w: seed: %v", ErrStorage, err)
		}
	}
	return &Service{store: store, requests: requests, now: time.Now}, nil
}

// List returns requests filtered by status; "all" or empty returns all.
func (s *Service) List(status string) []Request {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Request, 0, len(s.requests))
	for _, r := range s.requests {
		if status == "" || status == "all" || r.Status == status {
			out = append(out, r)
		}
	}
	return out
}

// Submit files a new pending request. The caller validates employee
// existence and date ordering beforehand.
func (s *Service) Submit(ctx context.Context, req Request) (Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req.ID = uuid.NewString()
	req.Status = StatusPending
	if req.RequestDate == "" {
		req.RequestDate = s.now().Format("2006-01-02")
	}
	s.requests = append(s.requests, req)
	if err := s.persist(ctx); err != nil {
		return Request{}, err
	}
	return req, nil
}

// Approve moves a pending request to approved.
func (s *Service) Approve(ctx context.Context, id string) (Request, error) {
	return s.decide(ctx, id, StatusApproved)
}

// Reject moves a pending request to rejected.
func (s *Service) Reject(ctx context.Context, id string) (Request, error) {
	return s.decide(ctx, id, StatusRejected)
}

func (s *Service) decide(ctx context.Context, id, status string) (Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.requests {
		if s.requests[i].ID != id {
			continue
		}
		if s.requests[i].Status != StatusPending {
			return Request{}, ErrAlreadyDecided
		}
		s.requests[i].Status = status
		if err := s.persist(ctx); err != nil {
			return Request{}, err
		}
		return s.requests[i], nil
	}
	return Request{}, ErrRequestNotFound
}

// Counts reports how many requests sit in each status.
func (s *Service) Counts() StatusCounts {
	s.mu.Lock()
	defer s.mu.Unlock()

	var counts StatusCounts
	for _, r := range s.requests {
		switch r.Status {
		case StatusPending:
			counts.Pending++
		case StatusApproved:
			counts.Approved++
		case StatusRejected:
			counts.Rejected++
		}
	}
	return counts
}

func (s *Service) persist(ctx context.Context) error {
	if err := s.store.SaveVacations(ctx, s.requests); err != nil {
		return fmt.Errorf("%w: save: %v", ErrStorage, err)
	}
	return nil
}
