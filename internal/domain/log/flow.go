package log

import (
	"fmt"

	"github.com/oppstream/oppstream-backend-go/internal/domain/employee"
)

// escalation fixes the ordered set of ranks that must sign off above each
// starting rank. The order is both the display order and the gating order.
var escalation = map[employee.Rank][]employee.Rank{
	employee.RankEMP: {employee.RankRM, employee.RankAM, employee.RankBUH},
	employee.RankRM:  {employee.RankAM, employee.RankBUH},
	employee.RankAM:  {employee.RankBUH},
	employee.RankBUH: {},
}

// RequiredRanks returns the ranks that must approve a record created at the
// given rank, in escalation order.
func RequiredRanks(rank employee.Rank) ([]employee.Rank, error) {
	ranks, ok := escalation[rank]
	if !ok {
		return nil, fmt.Errorf("%w: %q", employee.ErrInvalidRank, rank)
	}
	return ranks, nil
}

// BuildApprovalFlow binds each required rank to the first ancestor of that
// rank in the creator's materialized chain. The chain is nearest-first, so
// the first match is the creator's closest manager at that rank.
//
// The build fails closed: a chain missing any required rank rejects the
// whole operation rather than producing a record with a hole in its flow.
func BuildApprovalFlow(creatorRank employee.Rank, ancestors []employee.EmployeeRef) ([]ApprovalStep, error) {
	required, err := RequiredRanks(creatorRank)
	if err != nil {
		return nil, err
	}

	steps := make([]ApprovalStep, 0, len(required))
	for i, rank := range required {
		var approver *employee.EmployeeRef
		for j := range ancestors {
			if ancestors[j].Rank == rank {
				approver = &ancestors[j]
				break
			}
		}
		if approver == nil {
			return nil, fmt.Errorf("%w: %s", ErrApproverMissing, rank)
		}

		steps = append(steps, ApprovalStep{
			Position:     i,
			Rank:         rank,
			ApproverID:   approver.ID,
			ApproverName: approver.Name,
			Status:       StepPending,
		})
	}

	return steps, nil
}
