package contact

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func seedMessage(t *testing.T, repo Repository, i int, status Status) *Message {
	t.Helper()
	m := &Message{
		ID:          fmt.Sprintf("id-%d", i),
		Name:        fmt.Sprintf("Student %d", i),
		Email:       fmt.Sprintf("student%d@campus.edu", i),
		Subject:     fmt.Sprintf("Lost item %d", i),
		Body:        "I lost something.",
		Status:      status,
		ReferenceID: fmt.Sprintf("CAMPUS-170000000%d-AB%03d", i, i),
		CreatedAt:   time.Now().Add(time.Duration(-100+i) * time.Second),
	}
	if err := repo.Create(context.Background(), m); err != nil {
		t.Fatalf("seed message %d: %v", i, err)
	}
	return m
}

func TestInMemoryCreateAndGet(t *testing.T) {
	repo := NewInMemoryRepository()
	m := seedMessage(t, repo, 1, StatusNew)

	got, err := repo.Get(context.Background(), m.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Email != m.Email || got.ReferenceID != m.ReferenceID {
		t.Errorf("round trip mismatch: got %+v", got)
	}
	if got.Status != StatusNew {
		t.Errorf("expected status new, got %q", got.Status)
	}
	if got.UpdatedAt.IsZero() {
		t.Error("expected updatedAt to be set on create")
	}
}

func TestInMemoryGetNotFound(t *testing.T) {
	repo := NewInMemoryRepository()
	if _, err := repo.Get(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestInMemoryDuplicateReference(t *testing.T) {
	repo := NewInMemoryRepository()
	first := seedMessage(t, repo, 1, StatusNew)

	dup := *first
	dup.ID = "other-id"
	if err := repo.Create(context.Background(), &dup); !errors.Is(err, ErrDuplicateReference) {
		t.Fatalf("expected ErrDuplicateReference, got %v", err)
	}
}

func TestInMemoryListSortedAndFiltered(t *testing.T) {
	repo := NewInMemoryRepository()
	for i := 1; i <= 3; i++ {
		seedMessage(t, repo, i, StatusNew)
	}
	for i := 4; i <= 5; i++ {
		seedMessage(t, repo, i, StatusResolved)
	}

	msgs, page, err := repo.List(context.Background(), ListFilter{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.TotalResults != 5 || len(msgs) != 5 {
		t.Fatalf("expected 5 results, got %d (page %+v)", len(msgs), page)
	}
	for i := 1; i < len(msgs); i++ {
		if msgs[i].CreatedAt.After(msgs[i-1].CreatedAt) {
			t.Fatal("expected createdAt descending order")
		}
	}

	msgs, page, err = repo.List(context.Background(), ListFilter{Status: "new", Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("List(status=new): %v", err)
	}
	if page.TotalResults != 3 || page.TotalPages != 1 || page.ResultsOnPage != 3 {
		t.Errorf("unexpected page info %+v", page)
	}
	for _, m := range msgs {
		if m.Status != StatusNew {
			t.Errorf("status filter leaked %q", m.Status)
		}
	}

	// "all" behaves like no filter
	_, page, err = repo.List(context.Background(), ListFilter{Status: "all", Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("List(status=all): %v", err)
	}
	if page.TotalResults != 5 {
		t.Errorf("expected all 5 with status=all, got %d", page.TotalResults)
	}
}

func TestInMemoryListSearch(t *testing.T) {
	repo := NewInMemoryRepository()
	target := seedMessage(t, repo, 1, StatusNew)
	seedMessage(t, repo, 2, StatusNew)

	for _, needle := range []string{"STUDENT1@", "Student 1", target.ReferenceID, "lost item 1"} {
		msgs, _, err := repo.List(context.Background(), ListFilter{Search: needle, Page: 1, Limit: 10})
		if err != nil {
			t.Fatalf("List(search=%q): %v", needle, err)
		}
		if len(msgs) != 1 || msgs[0].ID != target.ID {
			t.Errorf("search %q: expected only %s, got %d results", needle, target.ID, len(msgs))
		}
	}
}

func TestInMemoryListPagination(t *testing.T) {
	repo := NewInMemoryRepository()
	for i := 1; i <= 7; i++ {
		seedMessage(t, repo, i, StatusNew)
	}

	msgs, page, err := repo.List(context.Background(), ListFilter{Page: 2, Limit: 3})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.CurrentPage != 2 || page.TotalPages != 3 || page.TotalResults != 7 {
		t.Errorf("unexpected page info %+v", page)
	}
	if len(msgs) != 3 || page.ResultsOnPage != 3 {
		t.Errorf("expected 3 items on page 2, got %d", len(msgs))
	}

	msgs, page, err = repo.List(context.Background(), ListFilter{Page: 9, Limit: 3})
	if err != nil {
		t.Fatalf("List past end: %v", err)
	}
	if len(msgs) != 0 || page.ResultsOnPage != 0 {
		t.Errorf("expected empty page past end, got %d items", len(msgs))
	}
}

func TestInMemoryUpdateStatus(t *testing.T) {
	repo := NewInMemoryRepository()
	m := seedMessage(t, repo, 1, StatusNew)

	updated, err := repo.UpdateStatus(context.Background(), m.ID, StatusReplied)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if updated.Status != StatusReplied {
		t.Errorf("expected replied, got %q", updated.Status)
	}
	if !updated.UpdatedAt.After(m.CreatedAt) {
		t.Error("expected updatedAt to advance")
	}

	if _, err := repo.UpdateStatus(context.Background(), m.ID, "archived"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	got, err := repo.Get(context.Background(), m.ID)
	if err != nil {
		t.Fatalf("Get after invalid update: %v", err)
	}
	if got.Status != StatusReplied {
		t.Errorf("invalid update must not change stored status, got %q", got.Status)
	}

	if _, err := repo.UpdateStatus(context.Background(), "missing", StatusRead); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestInMemoryStatsEmpty(t *testing.T) {
	repo := NewInMemoryRepository()
	stats, err := repo.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Total != 0 || stats.New != 0 || stats.Today != 0 {
		t.Errorf("expected zero counters, got %+v", stats)
	}
	if stats.ByStatus == nil || stats.Last7Days == nil {
		t.Error("expected empty slices, not nil")
	}
}

func TestInMemoryStats(t *testing.T) {
	repo := NewInMemoryRepository()
	for i := 1; i <= 3; i++ {
		seedMessage(t, repo, i, StatusNew)
	}
	seedMessage(t, repo, 4, StatusResolved)

	stats, err := repo.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Total != 4 || stats.New != 3 {
		t.Errorf("unexpected counters %+v", stats)
	}
	if stats.Today != 4 {
		t.Errorf("expected 4 messages today, got %d", stats.Today)
	}

	byStatus := map[Status]int{}
	for _, b := range stats.ByStatus {
		byStatus[b.Status] = b.Count
	}
	if byStatus[StatusNew] != 3 || byStatus[StatusResolved] != 1 {
		t.Errorf("unexpected byStatus %+v", stats.ByStatus)
	}

	if len(stats.Last7Days) == 0 {
		t.Fatal("expected at least one day bucket")
	}
	today := time.Now().Format("2006-01-02")
	if stats.Last7Days[len(stats.Last7Days)-1].Date != today {
		t.Errorf("expected last bucket to be %s, got %+v", today, stats.Last7Days)
	}
}
