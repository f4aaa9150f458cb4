package postgresql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/oppstream/oppstream-backend-go/internal/domain/employee"
	"github.com/oppstream/oppstream-backend-go/internal/domain/log"
	"github.com/oppstream/oppstream-backend-go/internal/pkg/database"
)

type logRepositoryImpl struct {
	db *database.DB
}

func NewLogRepository(db *database.DB) log.LogRepository {
	return &logRepositoryImpl{db: db}
}

const logColumns = `id, created_by, visible_to, requirement_type, nn_details, opp_from,
	opp_to, timeline_start, timeline_end, created_at, updated_at`

const approvalColumns = `id, log_id, position, rank, approver_id, approver_name, status,
	rejection_reason, decided_at`

func scanLog(row pgx.Row) (log.Log, error) {
	var l log.Log
	err := row.Scan(
		&l.ID,
		&l.CreatedBy,
		&l.VisibleTo,
		&l.RequirementType,
		&l.NNDetails,
		&l.OppFrom,
		&l.OppTo,
		&l.TimelineStart,
		&l.TimelineEnd,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	return l, err
}

func scanApproval(row pgx.Row) (log.ApprovalStep, error) {
	var step log.ApprovalStep
	err := row.Scan(
		&step.ID,
		&step.LogID,
		&step.Position,
		&step.Rank,
		&step.ApproverID,
		&step.ApproverName,
		&step.Status,
		&step.RejectionReason,
		&step.DecidedAt,
	)
	return step, err
}

// attachApprovals loads the ordered steps for every log in the slice.
func (r *logRepositoryImpl) attachApprovals(ctx context.Context, logs []log.Log) ([]log.Log, error) {
	if len(logs) == 0 {
		return logs, nil
	}

	q := GetQuerier(ctx, r.db)

	ids := make([]string, 0, len(logs))
	index := make(map[string]int, len(logs))
	for i, l := range logs {
		ids = append(ids, l.ID)
		index[l.ID] = i
	}

	query := `SELECT ` + approvalColumns + ` FROM log_approvals WHERE log_id = ANY($1::uuid[]) ORDER BY log_id, position`

	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		step, err := scanApproval(rows)
		if err != nil {
			return nil, err
		}
		i := index[step.LogID]
		logs[i].Approvals = append(logs[i].Approvals, step)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return logs, nil
}

func (r *logRepositoryImpl) collectLogs(ctx context.Context, rows pgx.Rows) ([]log.Log, error) {
	var logs []log.Log
	for rows.Next() {
		l, err := scanLog(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		logs = append(logs, l)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return r.attachApprovals(ctx, logs)
}

func (r *logRepositoryImpl) insertApprovals(ctx context.Context, logID string, steps []log.ApprovalStep) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO log_approvals (log_id, position, rank, approver_id, approver_name, status)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	for _, step := range steps {
		if _, err := q.Exec(ctx, query, logID, step.Position, step.Rank, step.ApproverID, step.ApproverName, step.Status); err != nil {
			return err
		}
	}
	return nil
}

// Create implements log.LogRepository. Callers run it inside WithTransaction
// so the log row and its steps land together.
func (r *logRepositoryImpl) Create(ctx context.Context, l log.Log) (log.Log, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO logs (created_by, visible_to, requirement_type, nn_details, opp_from, opp_to, timeline_start, timeline_end)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + logColumns

	created, err := scanLog(q.QueryRow(ctx, query,
		l.CreatedBy,
		l.VisibleTo,
		l.RequirementType,
		l.NNDetails,
		l.OppFrom,
		l.OppTo,
		l.TimelineStart,
		l.TimelineEnd,
	))
	if err != nil {
		return log.Log{}, err
	}

	if err := r.insertApprovals(ctx, created.ID, l.Approvals); err != nil {
		return log.Log{}, err
	}

	logs, err := r.attachApprovals(ctx, []log.Log{created})
	if err != nil {
		return log.Log{}, err
	}
	return logs[0], nil
}

// GetByID implements log.LogRepository.
func (r *logRepositoryImpl) GetByID(ctx context.Context, id string) (log.Log, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + logColumns + ` FROM logs WHERE id = $1`

	found, err := scanLog(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return log.Log{}, log.ErrLogNotFound
		}
		return log.Log{}, err
	}

	logs, err := r.attachApprovals(ctx, []log.Log{found})
	if err != nil {
		return log.Log{}, err
	}
	return logs[0], nil
}

// ListVisibleTo implements log.LogRepository. Authors always see their own
// records regardless of the snapshot contents.
func (r *logRepositoryImpl) ListVisibleTo(ctx context.Context, employeeID string) ([]log.Log, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + logColumns + ` FROM logs
		WHERE visible_to @> ARRAY[$1]::uuid[] OR created_by = $1
		ORDER BY created_at DESC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	return r.collectLogs(ctx, rows)
}

// ListCreatedBy implements log.LogRepository.
func (r *logRepositoryImpl) ListCreatedBy(ctx context.Context, employeeID string) ([]log.Log, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + logColumns + ` FROM logs WHERE created_by = $1 ORDER BY created_at DESC`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	return r.collectLogs(ctx, rows)
}

// ListForApprover implements log.LogRepository.
func (r *logRepositoryImpl) ListForApprover(ctx context.Context, approverID string) ([]log.Log, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + logColumns + ` FROM logs
		WHERE id IN (SELECT log_id FROM log_approvals WHERE approver_id = $1)
		ORDER BY updated_at DESC
	`

	rows, err := q.Query(ctx, query, approverID)
	if err != nil {
		return nil, err
	}
	return r.collectLogs(ctx, rows)
}

// DecideStep implements log.LogRepository. The status predicate makes the
// transition race-safe: a step already decided matches zero rows.
func (r *logRepositoryImpl) DecideStep(ctx context.Context, logID string, approverID string, rank employee.Rank, status log.StepStatus, reason *string, approverName string, decidedAt time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE log_approvals
		SET status = $1, rejection_reason = $2, approver_name = $3, decided_at = $4
		WHERE log_id = $5 AND approver_id = $6 AND rank = $7 AND status = 'PENDING'
	`

	tag, err := q.Exec(ctx, query, status, reason, approverName, decidedAt, logID, approverID, rank)
	if err != nil {
		return false, err
	}

	if tag.RowsAffected() > 0 {
		if _, err := q.Exec(ctx, `UPDATE logs SET updated_at = NOW() WHERE id = $1`, logID); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

// ReplaceApprovals implements log.LogRepository.
func (r *logRepositoryImpl) ReplaceApprovals(ctx context.Context, logID string, steps []log.ApprovalStep) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM log_approvals WHERE log_id = $1`, logID); err != nil {
		return err
	}
	return r.insertApprovals(ctx, logID, steps)
}

// UpdatePayload implements log.LogRepository.
func (r *logRepositoryImpl) UpdatePayload(ctx context.Context, l log.Log) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE logs
		SET visible_to = $1, nn_details = $2, opp_from = $3, opp_to = $4,
		    timeline_start = $5, timeline_end = $6, updated_at = NOW()
		WHERE id = $7
	`

	tag, err := q.Exec(ctx, query,
		l.VisibleTo,
		l.NNDetails,
		l.OppFrom,
		l.OppTo,
		l.TimelineStart,
		l.TimelineEnd,
		l.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return log.ErrLogNotFound
	}
	return nil
}

// Count implements log.LogRepository.
func (r *logRepositoryImpl) Count(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM logs`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// ListRecent implements log.LogRepository.
func (r *logRepositoryImpl) ListRecent(ctx context.Context, limit int) ([]log.Log, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + logColumns + ` FROM logs ORDER BY created_at DESC LIMIT $1`

	rows, err := q.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	return r.collectLogs(ctx, rows)
}
