package model

import (
	"context"
	"time"
)

// DrawStore defines persistence operations for draws.
// Methods called inside Transactor callbacks run on the transaction carried by ctx.
type DrawStore interface {
	Create(ctx context.Context, draw Draw) (Draw, error)
	// GetOpenMaster returns the unplayed master draw, locking it for the current transaction.
	GetOpenMaster(ctx context.Context) (Draw, error)
	// GetLatestMaster returns the master draw with the highest round, played or not.
	GetLatestMaster(ctx context.Context) (Draw, error)
	DeleteMaster(ctx context.Context, id int64) error
	MarkMasterPlayed(ctx context.Context, id int64) error
	CountOpenEntries(ctx context.Context) (int, error)
	// ClaimEntries stamps every unplayed, unclaimed participant draw with round.
	ClaimEntries(ctx context.Context, round int) (int, error)
	// ListClaimed returns participant draws stamped with round that are not played yet.
	ListClaimed(ctx context.Context, round int) ([]Draw, error)
	// SettleEntry marks a claimed draw played. It reports false when the draw was already played.
	SettleEntry(ctx context.Context, id int64, matches bool) (bool, error)
	ListByOwner(ctx context.Context, ownerID int64, played bool) ([]Draw, error)
	DeletePlayed(ctx context.Context, ownerID int64) (int, error)
}

// Transactor runs lifecycle steps under the round lock.
type Transactor interface {
	// InRoundTx runs fn in a transaction holding the exclusive round lock.
	InRoundTx(ctx context.Context, fn func(ctx context.Context) error) error
	// InUnitOfWork runs fn as a nested unit that rolls back on its own.
	InUnitOfWork(ctx context.Context, fn func(ctx context.Context) error) error
}

// Draw is a stored set of six numbers. Numbers always holds ciphertext.
type Draw struct {
	ID            int64
	OwnerID       int64
	Numbers       []byte
	IsMaster      bool
	Played        bool
	MatchesMaster bool
	Round         int
	CreatedAt     time.Time
}

// DrawView is a transiently decrypted draw. It is never persisted.
type DrawView struct {
	ID            int64     `json:"id"`
	Numbers       string    `json:"numbers"`
	Played        bool      `json:"played"`
	MatchesMaster bool      `json:"matches_master"`
	Round         int       `json:"round"`
	CreatedAt     time.Time `json:"created_at"`
}

// View pairs d with its decrypted canonical numbers.
func (d Draw) View(numbers string) DrawView {
	return DrawView{
		ID:            d.ID,
		Numbers:       numbers,
		Played:        d.Played,
		MatchesMaster: d.MatchesMaster,
		Round:         d.Round,
		CreatedAt:     d.CreatedAt,
	}
}

// Winner is a settled participant draw that equals the master draw.
type Winner struct {
	Round   int    `json:"round"`
	Numbers string `json:"numbers"`
	OwnerID int64  `json:"owner_id"`
	Email   string `json:"email"`
}

// CloseResult summarises a closed round.
type CloseResult struct {
	Round   int      `json:"round"`
	Master  string   `json:"master"`
	Settled int      `json:"settled"`
	Winners []Winner `json:"winners"`
	Voided  []int64  `json:"voided,omitempty"`
	Resumed bool     `json:"resumed"`
}

// Round describes a newly opened round.
type Round struct {
	Number    int       `json:"round"`
	Discarded int       `json:"discarded_round,omitempty"`
	OpenedAt  time.Time `json:"opened_at"`
}
