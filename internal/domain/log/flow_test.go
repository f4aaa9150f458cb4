package log

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oppstream/oppstream-backend-go/internal/domain/employee"
)

func fullChain() []employee.EmployeeRef {
	return []employee.EmployeeRef{
		{ID: "rm-1", EmployeeCode: "1001", Name: "Rina", Rank: employee.RankRM},
		{ID: "am-1", EmployeeCode: "1002", Name: "Arjun", Rank: employee.RankAM},
		{ID: "buh-1", EmployeeCode: "1003", Name: "Bhavna", Rank: employee.RankBUH},
	}
}

func TestBuildApprovalFlowLengths(t *testing.T) {
	cases := []struct {
		rank      employee.Rank
		wantRanks []employee.Rank
	}{
		{employee.RankEMP, []employee.Rank{employee.RankRM, employee.RankAM, employee.RankBUH}},
		{employee.RankRM, []employee.Rank{employee.RankAM, employee.RankBUH}},
		{employee.RankAM, []employee.Rank{employee.RankBUH}},
		{employee.RankBUH, nil},
	}

	for _, c := range cases {
		steps, err := BuildApprovalFlow(c.rank, fullChain())
		require.NoError(t, err, "rank %s", c.rank)
		require.Len(t, steps, len(c.wantRanks), "rank %s", c.rank)
		for i, step := range steps {
			assert.Equal(t, c.wantRanks[i], step.Rank)
			assert.Equal(t, i, step.Position)
			assert.Equal(t, StepPending, step.Status)
		}
	}
}

func TestBuildApprovalFlowBindsNearestAncestor(t *testing.T) {
	// Two RMs in the chain; the nearest-first ordering means the first
	// match wins.
	chain := append([]employee.EmployeeRef{
		{ID: "rm-near", Name: "Near RM", Rank: employee.RankRM},
	}, fullChain()...)

	steps, err := BuildApprovalFlow(employee.RankEMP, chain)
	require.NoError(t, err)
	require.Len(t, steps, 3)
	assert.Equal(t, "rm-near", steps[0].ApproverID)
	assert.Equal(t, "Near RM", steps[0].ApproverName)
	assert.Equal(t, "am-1", steps[1].ApproverID)
	assert.Equal(t, "buh-1", steps[2].ApproverID)
}

func TestBuildApprovalFlowMissingRank(t *testing.T) {
	// Chain skips straight from RM to BUH; an EMP record would have no AM
	// approver, so the build must refuse.
	chain := []employee.EmployeeRef{
		{ID: "rm-1", Name: "Rina", Rank: employee.RankRM},
		{ID: "buh-1", Name: "Bhavna", Rank: employee.RankBUH},
	}

	_, err := BuildApprovalFlow(employee.RankEMP, chain)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrApproverMissing))
	assert.Contains(t, err.Error(), "AM")
}

func TestBuildApprovalFlowEmptyChain(t *testing.T) {
	_, err := BuildApprovalFlow(employee.RankEMP, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrApproverMissing))

	// BUH needs no approvers, so an empty chain is fine.
	steps, err := BuildApprovalFlow(employee.RankBUH, nil)
	require.NoError(t, err)
	assert.Empty(t, steps)
}

func TestBuildApprovalFlowUnknownRank(t *testing.T) {
	_, err := BuildApprovalFlow(employee.Rank("CEO"), fullChain())
	require.Error(t, err)
	assert.True(t, errors.Is(err, employee.ErrInvalidRank))
}

func TestStepReachable(t *testing.T) {
	approved := StepApproved
	l := Log{Approvals: []ApprovalStep{
		{Position: 0, Rank: employee.RankRM, Status: approved},
		{Position: 1, Rank: employee.RankAM, Status: StepPending},
		{Position: 2, Rank: employee.RankBUH, Status: StepPending},
	}}

	assert.True(t, l.StepReachable(0))
	assert.True(t, l.StepReachable(1))
	assert.False(t, l.StepReachable(2))

	current, ok := l.CurrentStep()
	require.True(t, ok)
	assert.Equal(t, employee.RankAM, current.Rank)
}

func TestCurrentStepStopsAtRejection(t *testing.T) {
	l := Log{Approvals: []ApprovalStep{
		{Position: 0, Rank: employee.RankRM, Status: StepApproved},
		{Position: 1, Rank: employee.RankAM, Status: StepRejected},
		{Position: 2, Rank: employee.RankBUH, Status: StepPending},
	}}

	_, ok := l.CurrentStep()
	assert.False(t, ok)
	assert.True(t, l.HasRejectedStep())
}

func TestStepForApproverRequiresRankMatch(t *testing.T) {
	l := Log{Approvals: []ApprovalStep{
		{Position: 0, Rank: employee.RankRM, ApproverID: "rm-1", Status: StepPending},
		{Position: 1, Rank: employee.RankAM, ApproverID: "am-1", Status: StepPending},
	}}

	_, ok := l.StepForApprover("rm-1", employee.RankRM)
	assert.True(t, ok)

	// Same person looked up at the wrong rank must not match.
	_, ok = l.StepForApprover("rm-1", employee.RankAM)
	assert.False(t, ok)

	_, ok = l.StepForApprover("stranger", employee.RankRM)
	assert.False(t, ok)
}
