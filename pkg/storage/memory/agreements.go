package memory

import (
	"context"
	"sort"
	"time"

	"github.com/chris/cash-agent-exchange/pkg/models"
	"github.com/chris/cash-agent-exchange/pkg/storage"
)

func (s *Store) GetAgreement(_ context.Context, code string) (*models.Agreement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.agreements[code]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &a, nil
}

func (s *Store) ListAgreementsByInitiator(_ context.Context, userID string) ([]models.Agreement, error) {
	return s.filterAgreements(func(a models.Agreement) bool { return a.InitiatorUserId == userID }), nil
}

func (s *Store) ListAgreementsByAgent(_ context.Context, agentID string) ([]models.Agreement, error) {
	return s.filterAgreements(func(a models.Agreement) bool { return a.AssignedAgentId == agentID }), nil
}

func (s *Store) ListOverdueAgreements(_ context.Context, status models.AgreementStatus, now time.Time) ([]models.Agreement, error) {
	return s.filterAgreements(func(a models.Agreement) bool {
		return a.Status == status && a.IsExpired(now)
	}), nil
}

func (s *Store) filterAgreements(keep func(models.Agreement) bool) []models.Agreement {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.Agreement{}
	for _, a := range s.agreements {
		if keep(a) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (s *Store) CreateAgreement(_ context.Context, agreement *models.Agreement) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.agreements[agreement.ExchangeCode]; ok {
		return storage.ErrAlreadyExists
	}
	s.agreements[agreement.ExchangeCode] = *agreement
	return nil
}

func (s *Store) FundAgreement(_ context.Context, code, reference string, now time.Time) (*models.Agreement, error) {
	return s.transition(code, func(a *models.Agreement) bool {
		if a.Status != models.PENDING || a.IsExpired(now) {
			return false
		}
		a.Status = models.FUNDED
		a.FundingRef = reference
		a.UpdatedAt = now
		return true
	})
}

func (s *Store) ClaimAgreement(_ context.Context, code, agentID string, now time.Time) (*models.Agreement, error) {
	return s.transition(code, func(a *models.Agreement) bool {
		if a.AssignedAgentId != "" || a.Status.IsTerminal() || a.IsExpired(now) {
			return false
		}
		a.AssignedAgentId = agentID
		a.UpdatedAt = now
		return true
	})
}

func (s *Store) CompleteAgreement(_ context.Context, code, agentID string, now time.Time) (*models.Agreement, error) {
	return s.transition(code, func(a *models.Agreement) bool {
		if a.Status != models.FUNDED || a.IsExpired(now) {
			return false
		}
		if a.AssignedAgentId != "" && a.AssignedAgentId != agentID {
			return false
		}
		a.AssignedAgentId = agentID
		a.Status = models.COMPLETED
		a.UpdatedAt = now
		completed := now
		a.CompletedAt = &completed
		return true
	})
}

func (s *Store) ExpireAgreement(_ context.Context, code string, now time.Time) (*models.Agreement, error) {
	return s.transition(code, func(a *models.Agreement) bool {
		if (a.Status != models.PENDING && a.Status != models.FUNDED) || !a.IsExpired(now) {
			return false
		}
		a.Status = models.EXPIRED
		a.UpdatedAt = now
		return true
	})
}

func (s *Store) CancelAgreement(_ context.Context, code, userID string, now time.Time) (*models.Agreement, error) {
	return s.transition(code, func(a *models.Agreement) bool {
		if a.Status != models.PENDING || a.InitiatorUserId != userID {
			return false
		}
		a.Status = models.CANCELLED
		a.UpdatedAt = now
		return true
	})
}

func (s *Store) RecordSettlement(_ context.Context, code string, kind storage.SettlementKind, reference string) error {
	_, err := s.transition(code, func(a *models.Agreement) bool {
		switch kind {
		case storage.SettlementRelease:
			if a.ReleaseRef != "" {
				return false
			}
			a.ReleaseRef = reference
		case storage.SettlementRefund:
			if a.RefundRef != "" {
				return false
			}
			a.RefundRef = reference
		default:
			return false
		}
		return true
	})
	return err
}

// transition applies fn to a copy of the stored agreement and commits it only if fn returns true.
func (s *Store) transition(code string, fn func(*models.Agreement) bool) (*models.Agreement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.agreements[code]
	if !ok {
		return nil, storage.ErrConditionFailed
	}
	if !fn(&a) {
		return nil, storage.ErrConditionFailed
	}
	s.agreements[code] = a
	return &a, nil
}
