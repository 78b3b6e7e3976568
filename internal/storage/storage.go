package storage

import (
	"sync"

	"github.com/lehigh-university-libraries/skyreport/internal/report"
)

// Ticket identifies one report submission.
type Ticket uint64

// ReportStore holds the single latest report. Submissions are ordered by
// Begin; only the most recently begun submission may replace or clear the
// held report, so a slower earlier submission never overwrites a newer one.
type ReportStore struct {
	latest *report.Report
	issued Ticket
	mu     sync.RWMutex
}

func New() *ReportStore {
	return &ReportStore{}
}

// Begin starts a submission.
func (s *ReportStore) Begin() Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	return s.issued
}

// Commit stores r if t is still the newest submission.
func (s *ReportStore) Commit(t Ticket, r *report.Report) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t != s.issued {
		return false
	}
	s.latest = r
	return true
}

// Fail clears the held report if t is still the newest submission.
func (s *ReportStore) Fail(t Ticket) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t != s.issued {
		return false
	}
	s.latest = nil
	return true
}

func (s *ReportStore) Get() (*report.Report, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest, s.latest != nil
}

func (s *ReportStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest = nil
}
