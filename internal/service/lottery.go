package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dtroode/lottery-server/internal/logger"
	"github.com/dtroode/lottery-server/internal/metrics"
	"github.com/dtroode/lottery-server/internal/model"
)

// Lottery runs the round lifecycle and participant entries.
type Lottery struct {
	draws   model.DrawStore
	users   model.UserStore
	tx      model.Transactor
	cipher  model.KeyCipher
	numbers model.NumberGenerator
	access  *Access
	metrics *metrics.Metrics
	logger  *logger.Logger
}

func NewLottery(
	draws model.DrawStore,
	users model.UserStore,
	tx model.Transactor,
	cipher model.KeyCipher,
	numbers model.NumberGenerator,
	access *Access,
	m *metrics.Metrics,
	logger *logger.Logger,
) *Lottery {
	return &Lottery{
		draws:   draws,
		users:   users,
		tx:      tx,
		cipher:  cipher,
		numbers: numbers,
		access:  access,
		metrics: m,
		logger:  logger,
	}
}

// OpenNewRound creates a master draw under admin's key. An unplayed master is
// discarded without matching; played masters stay as history.
func (l *Lottery) OpenNewRound(ctx context.Context, admin model.User) (model.Round, error) {
	if err := l.access.Authorize(ctx, admin, model.RoleAdmin); err != nil {
		return model.Round{}, err
	}

	values, err := l.numbers.DrawNumbers(model.NumbersCount, model.NumbersMax)
	if err != nil {
		return model.Round{}, fmt.Errorf("failed to draw numbers: %w", err)
	}
	numbers, err := model.NewNumbers(values)
	if err != nil {
		return model.Round{}, fmt.Errorf("generated numbers are invalid: %w", err)
	}

	ciphertext, err := l.cipher.Encrypt(numbers.String(), admin.PublicKey)
	if err != nil {
		return model.Round{}, fmt.Errorf("failed to encrypt master draw: %w", err)
	}

	var round model.Round
	err = l.tx.InRoundTx(ctx, func(ctx context.Context) error {
		round = model.Round{Number: 1}

		latest, err := l.draws.GetLatestMaster(ctx)
		switch {
		case errors.Is(err, model.ErrNotFound):
		case err != nil:
			return fmt.Errorf("failed to get latest master draw: %w", err)
		case !latest.Played:
			if err := l.draws.DeleteMaster(ctx, latest.ID); err != nil {
				return fmt.Errorf("failed to discard master draw: %w", err)
			}
			round.Number = latest.Round + 1
			round.Discarded = latest.Round
		default:
			pending, err := l.draws.ListClaimed(ctx, latest.Round)
			if err != nil {
				return fmt.Errorf("failed to list claimed draws: %w", err)
			}
			if len(pending) > 0 {
				return model.ErrRoundUnsettled
			}
			round.Number = latest.Round + 1
		}

		master, err := l.draws.Create(ctx, model.Draw{
			OwnerID:  admin.ID,
			Numbers:  ciphertext,
			IsMaster: true,
			Round:    round.Number,
		})
		if err != nil {
			return fmt.Errorf("failed to create master draw: %w", err)
		}
		round.OpenedAt = master.CreatedAt

		return nil
	})
	if err != nil {
		l.logger.Error("Lottery service: failed to open round",
			"admin_id", admin.ID,
			"error", err.Error())
		return model.Round{}, err
	}

	l.metrics.IncRoundsOpened()
	l.logger.Info("Lottery service: round opened",
		"round", round.Number,
		"discarded_round", round.Discarded,
		"admin_id", admin.ID)

	return round, nil
}

// RevealMasterDraw decrypts the open master draw for admin without persisting it.
func (l *Lottery) RevealMasterDraw(ctx context.Context, admin model.User) (model.DrawView, error) {
	if err := l.access.Authorize(ctx, admin, model.RoleAdmin); err != nil {
		return model.DrawView{}, err
	}

	master, err := l.draws.GetOpenMaster(ctx)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.DrawView{}, model.ErrNoActiveRound
		}
		return model.DrawView{}, fmt.Errorf("failed to get open master draw: %w", err)
	}

	numbers, err := l.cipher.Decrypt(master.Numbers, admin.PrivateKey)
	if err != nil {
		l.logger.Error("Lottery service: failed to decrypt master draw",
			"round", master.Round,
			"admin_id", admin.ID,
			"error", err.Error())
		return model.DrawView{}, fmt.Errorf("failed to decrypt master draw: %w", err)
	}

	return master.View(numbers), nil
}

// CloseRound matches every entry against the open master draw.
//
// The master is marked played and the entries are claimed for its round in a
// first committed step. Entries are then settled one by one; each settlement
// is guarded so a repeated or resumed close skips rows that are already played.
func (l *Lottery) CloseRound(ctx context.Context, admin model.User) (model.CloseResult, error) {
	if err := l.access.Authorize(ctx, admin, model.RoleAdmin); err != nil {
		return model.CloseResult{}, err
	}

	var (
		master        model.Draw
		masterNumbers string
		resumed       bool
	)
	err := l.tx.InRoundTx(ctx, func(ctx context.Context) error {
		open, err := l.draws.GetOpenMaster(ctx)
		if errors.Is(err, model.ErrNotFound) {
			master, resumed, err = l.resumable(ctx)
			if err != nil {
				return err
			}
			masterNumbers, err = l.cipher.Decrypt(master.Numbers, admin.PrivateKey)
			if err != nil {
				return fmt.Errorf("failed to decrypt master draw: %w", err)
			}
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to get open master draw: %w", err)
		}

		entries, err := l.draws.CountOpenEntries(ctx)
		if err != nil {
			return fmt.Errorf("failed to count entries: %w", err)
		}
		if entries == 0 {
			return model.ErrNoEntries
		}

		masterNumbers, err = l.cipher.Decrypt(open.Numbers, admin.PrivateKey)
		if err != nil {
			return fmt.Errorf("failed to decrypt master draw: %w", err)
		}

		if err := l.draws.MarkMasterPlayed(ctx, open.ID); err != nil {
			return fmt.Errorf("failed to mark master draw played: %w", err)
		}
		claimed, err := l.draws.ClaimEntries(ctx, open.Round)
		if err != nil {
			return fmt.Errorf("failed to claim entries: %w", err)
		}

		l.logger.Debug("Lottery service: entries claimed",
			"round", open.Round,
			"claimed", claimed)

		open.Played = true
		master = open
		return nil
	})
	if err != nil {
		l.logger.Info("Lottery service: round not closed",
			"admin_id", admin.ID,
			"error", err.Error())
		return model.CloseResult{}, err
	}

	result, err := l.settle(ctx, master, masterNumbers)
	result.Resumed = resumed
	if err != nil {
		l.logger.Error("Lottery service: round settlement incomplete",
			"round", master.Round,
			"error", err.Error())
		return result, err
	}

	if !resumed {
		l.metrics.ObserveRoundClosed(len(result.Winners))
	}
	l.logger.Info("Lottery service: round closed",
		"round", result.Round,
		"settled", result.Settled,
		"winners", len(result.Winners),
		"voided", len(result.Voided),
		"resumed", resumed)

	if len(result.Voided) > 0 {
		return result, fmt.Errorf("%d entries voided: %w", len(result.Voided), model.ErrDecryption)
	}
	return result, nil
}

// resumable returns the latest played master when some of its claimed entries are still unsettled.
func (l *Lottery) resumable(ctx context.Context) (model.Draw, bool, error) {
	latest, err := l.draws.GetLatestMaster(ctx)
	if errors.Is(err, model.ErrNotFound) {
		return model.Draw{}, false, model.ErrNoActiveRound
	}
	if err != nil {
		return model.Draw{}, false, fmt.Errorf("failed to get latest master draw: %w", err)
	}
	if !latest.Played {
		return model.Draw{}, false, model.ErrNoActiveRound
	}

	pending, err := l.draws.ListClaimed(ctx, latest.Round)
	if err != nil {
		return model.Draw{}, false, fmt.Errorf("failed to list claimed draws: %w", err)
	}
	if len(pending) == 0 {
		return model.Draw{}, false, model.ErrNoActiveRound
	}

	return latest, true, nil
}

// settle matches each claimed entry in its own unit of work. An entry that cannot
// be decrypted is voided: settled as not matching, so the round still completes.
func (l *Lottery) settle(ctx context.Context, master model.Draw, masterNumbers string) (model.CloseResult, error) {
	result := model.CloseResult{
		Round:   master.Round,
		Master:  masterNumbers,
		Winners: []model.Winner{},
	}

	var voided []model.Draw
	err := l.tx.InRoundTx(ctx, func(ctx context.Context) error {
		entries, err := l.draws.ListClaimed(ctx, master.Round)
		if err != nil {
			return fmt.Errorf("failed to list claimed draws: %w", err)
		}

		owners := make(map[int64]model.User)
		for _, entry := range entries {
			var winner *model.Winner
			err := l.tx.InUnitOfWork(ctx, func(ctx context.Context) error {
				owner, ok := owners[entry.OwnerID]
				if !ok {
					u, err := l.users.GetByID(ctx, entry.OwnerID)
					if err != nil {
						return fmt.Errorf("failed to get draw owner: %w", err)
					}
					owner = u
					owners[entry.OwnerID] = u
				}

				numbers, err := l.cipher.Decrypt(entry.Numbers, owner.PrivateKey)
				if err != nil {
					return err
				}

				matches := numbers == masterNumbers
				settled, err := l.draws.SettleEntry(ctx, entry.ID, matches)
				if err != nil {
					return fmt.Errorf("failed to settle draw: %w", err)
				}
				if settled && matches {
					winner = &model.Winner{
						Round:   master.Round,
						Numbers: numbers,
						OwnerID: owner.ID,
						Email:   owner.Email,
					}
				}
				if settled {
					result.Settled++
				}
				return nil
			})
			if errors.Is(err, model.ErrDecryption) {
				l.logger.Error("Lottery service: failed to decrypt entry",
					"draw_id", entry.ID,
					"owner_id", entry.OwnerID,
					"round", master.Round,
					"error", err.Error())
				if err := l.void(ctx, entry); err != nil {
					return err
				}
				voided = append(voided, entry)
				continue
			}
			if err != nil {
				return err
			}
			if winner != nil {
				result.Winners = append(result.Winners, *winner)
			}
		}
		return nil
	})
	if err != nil {
		return model.CloseResult{Round: master.Round, Winners: []model.Winner{}}, err
	}

	for _, entry := range voided {
		result.Voided = append(result.Voided, entry.ID)
		l.access.audit.Emit(ctx, model.SecurityEvent{
			Kind:   model.EventEntryVoided,
			UserID: entry.OwnerID,
			Origin: model.OriginFromContext(ctx),
			Detail: fmt.Sprintf("draw %d in round %d could not be decrypted", entry.ID, master.Round),
		})
	}

	return result, nil
}

// void settles an undecryptable entry as not matching.
func (l *Lottery) void(ctx context.Context, entry model.Draw) error {
	return l.tx.InUnitOfWork(ctx, func(ctx context.Context) error {
		if _, err := l.draws.SettleEntry(ctx, entry.ID, false); err != nil {
			return fmt.Errorf("failed to void draw: %w", err)
		}
		return nil
	})
}

// SubmitDraw stores an encrypted entry for the next close.
func (l *Lottery) SubmitDraw(ctx context.Context, participant model.User, values []int) (model.DrawView, error) {
	if err := l.access.Authorize(ctx, participant, model.RoleParticipant); err != nil {
		return model.DrawView{}, err
	}

	numbers, err := model.NewNumbers(values)
	if err != nil {
		return model.DrawView{}, err
	}

	ciphertext, err := l.cipher.Encrypt(numbers.String(), participant.PublicKey)
	if err != nil {
		return model.DrawView{}, fmt.Errorf("failed to encrypt draw: %w", err)
	}

	draw, err := l.draws.Create(ctx, model.Draw{
		OwnerID: participant.ID,
		Numbers: ciphertext,
	})
	if err != nil {
		l.logger.Error("Lottery service: failed to create draw",
			"user_id", participant.ID,
			"error", err.Error())
		return model.DrawView{}, fmt.Errorf("failed to create draw: %w", err)
	}

	l.metrics.IncDrawsSubmitted()
	l.logger.Debug("Lottery service: draw submitted",
		"user_id", participant.ID,
		"draw_id", draw.ID)

	return draw.View(numbers.String()), nil
}

// PlayableDraws returns the caller's entries that have not been matched yet.
func (l *Lottery) PlayableDraws(ctx context.Context, participant model.User) ([]model.DrawView, error) {
	return l.ownDraws(ctx, participant, false)
}

// PlayedDraws returns the caller's settled entries.
func (l *Lottery) PlayedDraws(ctx context.Context, participant model.User) ([]model.DrawView, error) {
	return l.ownDraws(ctx, participant, true)
}

func (l *Lottery) ownDraws(ctx context.Context, participant model.User, played bool) ([]model.DrawView, error) {
	if err := l.access.Authorize(ctx, participant, model.RoleParticipant); err != nil {
		return nil, err
	}

	draws, err := l.draws.ListByOwner(ctx, participant.ID, played)
	if err != nil {
		return nil, fmt.Errorf("failed to list draws: %w", err)
	}

	views := make([]model.DrawView, 0, len(draws))
	for _, d := range draws {
		numbers, err := l.cipher.Decrypt(d.Numbers, participant.PrivateKey)
		if err != nil {
			l.logger.Error("Lottery service: skipping undecryptable draw",
				"draw_id", d.ID,
				"user_id", participant.ID,
				"error", err.Error())
			continue
		}
		views = append(views, d.View(numbers))
	}

	return views, nil
}

// ClearPlayed deletes the caller's settled entries.
func (l *Lottery) ClearPlayed(ctx context.Context, participant model.User) (int, error) {
	if err := l.access.Authorize(ctx, participant, model.RoleParticipant); err != nil {
		return 0, err
	}

	n, err := l.draws.DeletePlayed(ctx, participant.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete played draws: %w", err)
	}

	l.logger.Debug("Lottery service: played draws cleared",
		"user_id", participant.ID,
		"deleted", n)

	return n, nil
}
