package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/dtroode/lottery-server/internal/model"
)

var _ model.DrawStore = (*DrawStore)(nil)

// DrawStore is the in-memory draw table.
type DrawStore struct {
	db *DB
}

func NewDrawStore(db *DB) *DrawStore {
	return &DrawStore{db: db}
}

func (s *DrawStore) Create(_ context.Context, draw model.Draw) (model.Draw, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if draw.IsMaster && !draw.Played {
		for _, d := range s.db.draws {
			if d.IsMaster && !d.Played {
				return model.Draw{}, fmt.Errorf("%w: another master draw is open", model.ErrConcurrency)
			}
		}
	}

	s.db.drawSeq++
	draw.ID = s.db.drawSeq
	draw.CreatedAt = s.db.now()
	draw.Numbers = append([]byte(nil), draw.Numbers...)
	s.db.draws[draw.ID] = draw

	return draw, nil
}

func (s *DrawStore) GetOpenMaster(_ context.Context) (model.Draw, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	for _, d := range s.db.draws {
		if d.IsMaster && !d.Played {
			return d, nil
		}
	}
	return model.Draw{}, model.ErrNotFound
}

func (s *DrawStore) GetLatestMaster(_ context.Context) (model.Draw, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	var (
		latest model.Draw
		found  bool
	)
	for _, d := range s.db.draws {
		if !d.IsMaster {
			continue
		}
		if !found || d.Round > latest.Round || (d.Round == latest.Round && d.ID > latest.ID) {
			latest, found = d, true
		}
	}
	if !found {
		return model.Draw{}, model.ErrNotFound
	}
	return latest, nil
}

func (s *DrawStore) DeleteMaster(_ context.Context, id int64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	d, ok := s.db.draws[id]
	if !ok || !d.IsMaster || d.Played {
		return model.ErrNotFound
	}
	delete(s.db.draws, id)
	return nil
}

func (s *DrawStore) MarkMasterPlayed(_ context.Context, id int64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	d, ok := s.db.draws[id]
	if !ok || !d.IsMaster || d.Played {
		return model.ErrNotFound
	}
	d.Played = true
	s.db.draws[id] = d
	return nil
}

func (s *DrawStore) CountOpenEntries(_ context.Context) (int, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	n := 0
	for _, d := range s.db.draws {
		if !d.IsMaster && !d.Played && d.Round == 0 {
			n++
		}
	}
	return n, nil
}

func (s *DrawStore) ClaimEntries(_ context.Context, round int) (int, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	n := 0
	for id, d := range s.db.draws {
		if !d.IsMaster && !d.Played && d.Round == 0 {
			d.Round = round
			s.db.draws[id] = d
			n++
		}
	}
	return n, nil
}

func (s *DrawStore) ListClaimed(_ context.Context, round int) ([]model.Draw, error) {
	return s.filter(func(d model.Draw) bool {
		return !d.IsMaster && !d.Played && d.Round == round
	}), nil
}

func (s *DrawStore) SettleEntry(_ context.Context, id int64, matches bool) (bool, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	d, ok := s.db.draws[id]
	if !ok || d.IsMaster || d.Played {
		return false, nil
	}
	d.Played = true
	d.MatchesMaster = matches
	s.db.draws[id] = d
	return true, nil
}

func (s *DrawStore) ListByOwner(_ context.Context, ownerID int64, played bool) ([]model.Draw, error) {
	return s.filter(func(d model.Draw) bool {
		return d.OwnerID == ownerID && !d.IsMaster && d.Played == played
	}), nil
}

func (s *DrawStore) DeletePlayed(_ context.Context, ownerID int64) (int, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	n := 0
	for id, d := range s.db.draws {
		if d.OwnerID == ownerID && !d.IsMaster && d.Played {
			delete(s.db.draws, id)
			n++
		}
	}
	return n, nil
}

// All returns every draw ordered by ID. It exists for inspection in tests and debugging.
func (s *DrawStore) All() []model.Draw {
	return s.filter(func(model.Draw) bool { return true })
}

func (s *DrawStore) filter(keep func(model.Draw) bool) []model.Draw {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	var out []model.Draw
	for _, d := range s.db.draws {
		if keep(d) {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
