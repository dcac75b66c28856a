package contact

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// ListFilter narrows and pages a List call. A Status of "" or "all" means
// unfiltered; Search matches case-insensitively as a substring against
// name, email, subject and reference id.
type ListFilter struct {
	Status string
	Search string
	Page   int
	Limit  int
}

// PageInfo describes the returned page of a List call.
type PageInfo struct {
	CurrentPage   int `json:"currentPage"`
	TotalPages    int `json:"totalPages"`
	ResultsOnPage int `json:"resultsOnPage"`
	TotalResults  int `json:"totalResults"`
}

// StatusCount is one bucket of the per-status breakdown.
type StatusCount struct {
	Status Status `json:"status"`
	Count  int    `json:"count"`
}

// DayCount is one bucket of the trailing-7-day series.
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// Stats aggregates the operator dashboard counters.
type Stats struct {
	Total     int           `json:"total"`
	New       int           `json:"new"`
	Today     int           `json:"today"`
	ByStatus  []StatusCount `json:"byStatus"`
	Last7Days []DayCount    `json:"last7Days"`
}

// Repository defines the interface for contact message storage
type Repository interface {
	Create(ctx context.Context, m *Message) error
	Get(ctx context.Context, id string) (*Message, error)
	List(ctx context.Context, f ListFilter) ([]Message, PageInfo, error)
	UpdateStatus(ctx context.Context, id string, status Status) (*Message, error)
	Stats(ctx context.Context) (*Stats, error)
	Ping(ctx context.Context) error
}

// InMemoryRepository is a map-backed Repository used in tests and when no
// database is configured.
type InMemoryRepository struct {
	mu       sync.RWMutex
	messages map[string]*Message
	refs     map[string]struct{}
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		messages: make(map[string]*Message),
		refs:     make(map[string]struct{}),
	}
}

// Create stores a new message, enforcing reference id uniqueness.
func (r *InMemoryRepository) Create(ctx context.Context, m *Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.refs[m.ReferenceID]; exists {
		return ErrDuplicateReference
	}

	now := time.Now()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = m.CreatedAt
	if m.Status == "" {
		m.Status = StatusNew
	}

	stored := *m
	r.messages[m.ID] = &stored
	r.refs[m.ReferenceID] = struct{}{}
	return nil
}

// Get retrieves a message by store identifier.
func (r *InMemoryRepository) Get(ctx context.Context, id string) (*Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.messages[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *m
	return &out, nil
}

// List returns a page of messages sorted by creation time descending.
func (r *InMemoryRepository) List(ctx context.Context, f ListFilter) ([]Message, PageInfo, error) {
	page, limit := normalizePaging(f.Page, f.Limit)

	r.mu.RLock()
	matched := make([]Message, 0, len(r.messages))
	for _, m := range r.messages {
		if matchesFilter(m, f) {
			matched = append(matched, *m)
		}
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	pageItems := matched[start:end]

	return pageItems, PageInfo{
		CurrentPage:   page,
		TotalPages:    (total + limit - 1) / limit,
		ResultsOnPage: len(pageItems),
		TotalResults:  total,
	}, nil
}

func matchesFilter(m *Message, f ListFilter) bool {
	if f.Status != "" && f.Status != "all" && string(m.Status) != f.Status {
		return false
	}
	if f.Search == "" {
		return true
	}
	needle := strings.ToLower(f.Search)
	for _, hay := range []string{m.Name, m.Email, m.Subject, m.ReferenceID} {
		if strings.Contains(strings.ToLower(hay), needle) {
			return true
		}
	}
	return false
}

// UpdateStatus sets a message's status and refreshes its updatedAt.
func (r *InMemoryRepository) UpdateStatus(ctx context.Context, id string, status Status) (*Message, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.messages[id]
	if !ok {
		return nil, ErrNotFound
	}
	m.Status = status
	m.UpdatedAt = time.Now()
	out := *m
	return &out, nil
}

// Stats aggregates counters across all stored messages.
func (r *InMemoryRepository) Stats(ctx context.Context) (*Stats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekAgo := now.Add(-7 * 24 * time.Hour)

	stats := &Stats{
		ByStatus:  []StatusCount{},
		Last7Days: []DayCount{},
	}
	byStatus := map[Status]int{}
	byDay := map[string]int{}

	for _, m := range r.messages {
		stats.Total++
		if m.Status == StatusNew {
			stats.New++
		}
		if !m.CreatedAt.Before(midnight) {
			stats.Today++
		}
		byStatus[m.Status]++
		if !m.CreatedAt.Before(weekAgo) {
			byDay[m.CreatedAt.Format("2006-01-02")]++
		}
	}

	for _, s := range Statuses {
		if n := byStatus[s]; n > 0 {
			stats.ByStatus = append(stats.ByStatus, StatusCount{Status: s, Count: n})
		}
	}

	days := make([]string, 0, len(byDay))
	for d := range byDay {
		days = append(days, d)
	}
	sort.Strings(days)
	for _, d := range days {
		stats.Last7Days = append(stats.Last7Days, DayCount{Date: d, Count: byDay[d]})
	}

	return stats, nil
}

// Ping reports the repository as always reachable.
func (r *InMemoryRepository) Ping(ctx context.Context) error {
	return nil
}

func normalizePaging(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

var _ Repository = (*InMemoryRepository)(nil)
