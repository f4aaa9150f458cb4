package log

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/oppstream/oppstream-backend-go/internal/domain/employee"
	"github.com/oppstream/oppstream-backend-go/internal/domain/log"
	"github.com/oppstream/oppstream-backend-go/internal/pkg/database"
	"github.com/oppstream/oppstream-backend-go/internal/pkg/validator"
	"github.com/oppstream/oppstream-backend-go/internal/repository/postgresql"
)

type LogServiceImpl struct {
	db *database.DB
	log.LogRepository
	employee.EmployeeRepository
}

func NewLogService(db *database.DB, logRepository log.LogRepository, employeeRepository employee.EmployeeRepository) log.LogService {
	return &LogServiceImpl{
		db:                 db,
		LogRepository:      logRepository,
		EmployeeRepository: employeeRepository,
	}
}

// applyPayload replaces the requirement-type detail blocks on l. Exactly one
// of nn_details/opp_from is populated per type; the other is cleared. opp_to
// is carried for every type.
func applyPayload(l *log.Log, nn *log.NNDetails, from *log.OppFrom, to *log.OppTo, tl *log.TimelineRequest) {
	switch l.RequirementType {
	case log.RequirementNN:
		l.NNDetails = nn
		l.OppFrom = nil
	default:
		l.OppFrom = from
		l.NNDetails = nil
	}
	l.OppTo = to
	if tl != nil {
		l.TimelineStart, l.TimelineEnd = tl.TimelineDates()
	} else {
		l.TimelineStart, l.TimelineEnd = nil, nil
	}
}

// buildFlow resolves the creator's current chain into bound approval steps.
func (s *LogServiceImpl) buildFlow(ctx context.Context, emp employee.Employee) ([]log.ApprovalStep, error) {
	refs, err := s.EmployeeRepository.GetRefsByIDs(ctx, emp.Ancestors)
	if err != nil {
		return nil, fmt.Errorf("failed to hydrate ancestor chain: %w", err)
	}
	return log.BuildApprovalFlow(emp.Rank, refs)
}

// Create implements log.LogService.
func (s *LogServiceImpl) Create(ctx context.Context, userID string, req log.CreateLogRequest) (log.LogResponse, error) {
	emp, err := s.EmployeeRepository.GetByUserID(ctx, userID)
	if err != nil {
		return log.LogResponse{}, err
	}

	reqType, err := log.ParseRequirementType(req.RequirementType)
	if err != nil {
		return log.LogResponse{}, err
	}

	steps, err := s.buildFlow(ctx, emp)
	if err != nil {
		return log.LogResponse{}, err
	}

	newLog := log.Log{
		CreatedBy:       emp.ID,
		VisibleTo:       emp.Ancestors,
		RequirementType: reqType,
		Approvals:       steps,
	}
	applyPayload(&newLog, req.NNDetails, req.OppFrom, req.OppTo, req.Timeline)

	var created log.Log
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		created, err = s.LogRepository.Create(txCtx, newLog)
		if err != nil {
			return fmt.Errorf("failed to create log: %w", err)
		}
		return nil
	})
	if err != nil {
		return log.LogResponse{}, err
	}

	resp := log.ToLogResponse(created)
	resp.Creator = log.ToCreatorResponse(emp)
	return resp, nil
}

// canView reports whether the employee may read the log: author, snapshot
// member, or bound approver.
func canView(l log.Log, employeeID string) bool {
	if l.CreatedBy == employeeID {
		return true
	}
	for _, id := range l.VisibleTo {
		if id == employeeID {
			return true
		}
	}
	for _, step := range l.Approvals {
		if step.ApproverID == employeeID {
			return true
		}
	}
	return false
}

// GetByID implements log.LogService.
func (s *LogServiceImpl) GetByID(ctx context.Context, userID string, logID string) (log.LogResponse, error) {
	emp, err := s.EmployeeRepository.GetByUserID(ctx, userID)
	if err != nil {
		return log.LogResponse{}, err
	}

	l, err := s.LogRepository.GetByID(ctx, logID)
	if err != nil {
		return log.LogResponse{}, err
	}

	if !canView(l, emp.ID) {
		return log.LogResponse{}, log.ErrNotVisible
	}

	responses, err := s.annotateCreators(ctx, []log.Log{l})
	if err != nil {
		return log.LogResponse{}, err
	}
	return responses[0], nil
}

// annotateCreators attaches creator details to each response.
func (s *LogServiceImpl) annotateCreators(ctx context.Context, logs []log.Log) ([]log.LogResponse, error) {
	creators := make(map[string]*log.CreatorResponse)
	responses := make([]log.LogResponse, 0, len(logs))

	for _, l := range logs {
		resp := log.ToLogResponse(l)

		creator, ok := creators[l.CreatedBy]
		if !ok {
			emp, err := s.EmployeeRepository.GetByID(ctx, l.CreatedBy)
			if err != nil {
				if errors.Is(err, employee.ErrEmployeeNotFound) {
					creators[l.CreatedBy] = nil
					responses = append(responses, resp)
					continue
				}
				return nil, fmt.Errorf("failed to resolve log creator: %w", err)
			}
			creator = log.ToCreatorResponse(emp)
			creators[l.CreatedBy] = creator
		}
		resp.Creator = creator
		responses = append(responses, resp)
	}

	return responses, nil
}

func toListResponse(responses []log.LogResponse) log.LogListResponse {
	if responses == nil {
		responses = []log.LogResponse{}
	}
	return log.LogListResponse{Count: len(responses), Logs: responses}
}

// VisibleToMe implements log.LogService.
func (s *LogServiceImpl) VisibleToMe(ctx context.Context, userID string) (log.LogListResponse, error) {
	emp, err := s.EmployeeRepository.GetByUserID(ctx, userID)
	if err != nil {
		return log.LogListResponse{}, err
	}

	logs, err := s.LogRepository.ListVisibleTo(ctx, emp.ID)
	if err != nil {
		return log.LogListResponse{}, fmt.Errorf("failed to list visible logs: %w", err)
	}

	responses, err := s.annotateCreators(ctx, logs)
	if err != nil {
		return log.LogListResponse{}, err
	}
	return toListResponse(responses), nil
}

// CreatedByMe implements log.LogService.
func (s *LogServiceImpl) CreatedByMe(ctx context.Context, userID string) (log.LogListResponse, error) {
	emp, err := s.EmployeeRepository.GetByUserID(ctx, userID)
	if err != nil {
		return log.LogListResponse{}, err
	}

	logs, err := s.LogRepository.ListCreatedBy(ctx, emp.ID)
	if err != nil {
		return log.LogListResponse{}, fmt.Errorf("failed to list own logs: %w", err)
	}

	responses, err := s.annotateCreators(ctx, logs)
	if err != nil {
		return log.LogListResponse{}, err
	}
	return toListResponse(responses), nil
}

// PendingForMe implements log.LogService. A record qualifies when the
// caller's own step is PENDING, every step before it is APPROVED, and the
// creator's current chain still contains the caller.
func (s *LogServiceImpl) PendingForMe(ctx context.Context, userID string) (log.LogListResponse, error) {
	emp, err := s.EmployeeRepository.GetByUserID(ctx, userID)
	if err != nil {
		return log.LogListResponse{}, err
	}

	logs, err := s.LogRepository.ListForApprover(ctx, emp.ID)
	if err != nil {
		return log.LogListResponse{}, fmt.Errorf("failed to list approver logs: %w", err)
	}

	creatorChains := make(map[string][]string)
	var pending []log.Log
	for _, l := range logs {
		step, ok := l.StepForApprover(emp.ID, emp.Rank)
		if !ok || step.Status != log.StepPending || !l.StepReachable(step.Position) {
			continue
		}

		chain, ok := creatorChains[l.CreatedBy]
		if !ok {
			creator, err := s.EmployeeRepository.GetByID(ctx, l.CreatedBy)
			if err != nil {
				if errors.Is(err, employee.ErrEmployeeNotFound) {
					creatorChains[l.CreatedBy] = []string{}
					continue
				}
				return log.LogListResponse{}, fmt.Errorf("failed to resolve log creator: %w", err)
			}
			chain = creator.Ancestors
			creatorChains[l.CreatedBy] = chain
		}

		inChain := false
		for _, id := range chain {
			if id == emp.ID {
				inChain = true
				break
			}
		}
		if inChain {
			pending = append(pending, l)
		}
	}

	responses, err := s.annotateCreators(ctx, pending)
	if err != nil {
		return log.LogListResponse{}, err
	}
	return toListResponse(responses), nil
}

// DecidedByMe implements log.LogService.
func (s *LogServiceImpl) DecidedByMe(ctx context.Context, userID string) (log.LogListResponse, error) {
	emp, err := s.EmployeeRepository.GetByUserID(ctx, userID)
	if err != nil {
		return log.LogListResponse{}, err
	}

	logs, err := s.LogRepository.ListForApprover(ctx, emp.ID)
	if err != nil {
		return log.LogListResponse{}, fmt.Errorf("failed to list approver logs: %w", err)
	}

	var decided []log.Log
	var decisions []log.MyDecisionResponse
	for _, l := range logs {
		for _, step := range l.Approvals {
			if step.ApproverID != emp.ID || step.Status == log.StepPending {
				continue
			}
			decided = append(decided, l)
			decisions = append(decisions, log.MyDecisionResponse{
				Status:          string(step.Status),
				RejectionReason: step.RejectionReason,
				DecidedAt:       step.DecidedAt,
			})
			break
		}
	}

	responses, err := s.annotateCreators(ctx, decided)
	if err != nil {
		return log.LogListResponse{}, err
	}
	for i := range responses {
		decision := decisions[i]
		responses[i].MyDecision = &decision
	}
	return toListResponse(responses), nil
}

// Decide implements log.LogService.
func (s *LogServiceImpl) Decide(ctx context.Context, userID string, logID string, req log.DecisionRequest) (log.LogResponse, error) {
	outcome, err := log.ParseDecision(req.Status)
	if err != nil {
		return log.LogResponse{}, err
	}
	if outcome == log.StepRejected && validator.IsEmpty(req.Reason) {
		return log.LogResponse{}, log.ErrRejectionReasonRequired
	}

	emp, err := s.EmployeeRepository.GetByUserID(ctx, userID)
	if err != nil {
		return log.LogResponse{}, err
	}

	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		l, err := s.LogRepository.GetByID(txCtx, logID)
		if err != nil {
			return err
		}

		step, ok := l.StepForApprover(emp.ID, emp.Rank)
		if !ok {
			return log.ErrNotAuthorizedApprover
		}
		if step.Status != log.StepPending {
			return log.ErrStepAlreadyDecided
		}
		if !l.StepReachable(step.Position) {
			return log.ErrStepNotReachable
		}

		var reason *string
		if outcome == log.StepRejected {
			reason = &req.Reason
		}

		// The conditional UPDATE re-checks PENDING under lock: of two
		// racing decisions exactly one lands, the other errors here.
		updated, err := s.LogRepository.DecideStep(txCtx, logID, emp.ID, emp.Rank, outcome, reason, emp.Name, time.Now().UTC())
		if err != nil {
			return fmt.Errorf("failed to apply decision: %w", err)
		}
		if !updated {
			return log.ErrStepAlreadyDecided
		}
		return nil
	})
	if err != nil {
		return log.LogResponse{}, err
	}

	final, err := s.LogRepository.GetByID(ctx, logID)
	if err != nil {
		return log.LogResponse{}, err
	}

	responses, err := s.annotateCreators(ctx, []log.Log{final})
	if err != nil {
		return log.LogResponse{}, err
	}
	return responses[0], nil
}

// Resubmit implements log.LogService. Every prior decision is discarded and
// the flow is rebuilt from the creator's current chain, so a correction
// restarts the whole approval sequence.
func (s *LogServiceImpl) Resubmit(ctx context.Context, userID string, logID string, req log.ResubmitLogRequest) (log.LogResponse, error) {
	emp, err := s.EmployeeRepository.GetByUserID(ctx, userID)
	if err != nil {
		return log.LogResponse{}, err
	}

	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		l, err := s.LogRepository.GetByID(txCtx, logID)
		if err != nil {
			return err
		}

		if l.CreatedBy != emp.ID {
			return log.ErrNotCreator
		}
		if !l.HasRejectedStep() {
			return log.ErrNoRejectedStep
		}

		steps, err := s.buildFlow(txCtx, emp)
		if err != nil {
			return err
		}

		applyPayload(&l, req.NNDetails, req.OppFrom, req.OppTo, req.Timeline)
		l.VisibleTo = emp.Ancestors

		if err := s.LogRepository.UpdatePayload(txCtx, l); err != nil {
			return fmt.Errorf("failed to update log payload: %w", err)
		}
		if err := s.LogRepository.ReplaceApprovals(txCtx, l.ID, steps); err != nil {
			return fmt.Errorf("failed to regenerate approvals: %w", err)
		}
		return nil
	})
	if err != nil {
		return log.LogResponse{}, err
	}

	final, err := s.LogRepository.GetByID(ctx, logID)
	if err != nil {
		return log.LogResponse{}, err
	}

	resp := log.ToLogResponse(final)
	resp.Creator = log.ToCreatorResponse(emp)
	return resp, nil
}

// ApprovalCounters implements log.LogService. A PENDING step counts only
// when it is actually reachable under sequential gating.
func (s *LogServiceImpl) ApprovalCounters(ctx context.Context, userID string) (log.ApprovalCountersResponse, error) {
	emp, err := s.EmployeeRepository.GetByUserID(ctx, userID)
	if err != nil {
		return log.ApprovalCountersResponse{}, err
	}

	logs, err := s.LogRepository.ListForApprover(ctx, emp.ID)
	if err != nil {
		return log.ApprovalCountersResponse{}, fmt.Errorf("failed to list approver logs: %w", err)
	}

	var counters log.ApprovalCountersResponse
	for _, l := range logs {
		for _, step := range l.Approvals {
			if step.ApproverID != emp.ID {
				continue
			}
			switch step.Status {
			case log.StepApproved:
				counters.Approved++
			case log.StepRejected:
				counters.Rejected++
			case log.StepPending:
				if l.StepReachable(step.Position) {
					counters.Pending++
				}
			}
		}
	}

	return counters, nil
}
