package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// missionRepos bundles the repositories that make up one mission snapshot,
// all bound to the same connection or transaction.
type missionRepos struct {
	missions    *MissionRepo
	tasks       *TaskRepo
	history     *HistoryRepo
	completions *CompletionRepo
}

func reposOn(db dbtx) missionRepos {
	return missionRepos{
		missions:    NewMissionRepo(db),
		tasks:       NewTaskRepo(db),
		history:     NewHistoryRepo(db),
		completions: NewCompletionRepo(db),
	}
}

// withTx runs fn against repositories bound to a single transaction.
// The transaction commits only when fn returns nil.
func withTx(ctx context.Context, db *sql.DB, fn func(r missionRepos) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err == nil {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			err = errors.Join(err, fmt.Errorf("rollback tx: %w", rbErr))
		}
	}()

	if err = fn(reposOn(tx)); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
