package distribution

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeAdvanced_HunterDistinctCommunicatorSame(t *testing.T) {
	roles := RoleAssignment{WorkingDev: "Ali", JobHunter: "Bilal", Communicator: "Ali"}

	got := ComputeAdvanced(1000, DefaultPolicy(), roles, nil, DefaultConversionRate)

	assert.Equal(t, 300.0, got.Company)
	assert.Equal(t, 35.0, got.JobHunter)
	assert.Zero(t, got.Communicator)
	assert.Equal(t, 665.0, got.WorkingDev)
	assert.Zero(t, got.Intern)
	assert.Equal(t, 1000.0, got.Total)
	assert.Equal(t, 1000.0, got.Sum())
	assert.Empty(t, got.Interns)
}

func TestComputeAdvanced_HunterAndCommunicatorUseDeveloperBase(t *testing.T) {
	roles := RoleAssignment{WorkingDev: "Ali", JobHunter: "Bilal", Communicator: "Sara"}

	advanced := ComputeAdvanced(1000, DefaultPolicy(), roles, nil, DefaultConversionRate)
	basic := ComputeBasic(1000, roles)

	// Same company cut; the role fees differ because the advanced policy
	// charges them against the 70% developer base rather than the payment.
	assert.InDelta(t, basic.Company, advanced.Company, 1e-9)
	assert.InDelta(t, 35.0, advanced.JobHunter, 1e-9)
	assert.InDelta(t, 70.0, advanced.Communicator, 1e-9)
	assert.InDelta(t, 595.0, advanced.WorkingDev, 1e-9)
	assert.True(t, advanced.Reconciles(ReconcileTolerance))
	assert.True(t, basic.Reconciles(ReconcileTolerance))
}

func TestComputeAdvanced_MatchesBasicForSamePerson(t *testing.T) {
	roles := RoleAssignment{WorkingDev: "Ali", JobHunter: "Ali", Communicator: "Ali"}

	for _, p := range samplePayments {
		advanced := ComputeAdvanced(p, DefaultPolicy(), roles, nil, DefaultConversionRate)
		basic := ComputeBasic(p, roles)

		assert.InDelta(t, basic.Company, advanced.Company, 1e-9*p)
		assert.InDelta(t, basic.WorkingDev, advanced.WorkingDev, 1e-9*p)
		assert.Zero(t, advanced.JobHunter)
		assert.Zero(t, advanced.Communicator)
	}
}

func TestComputeAdvanced_FixedInternConversion(t *testing.T) {
	roles := RoleAssignment{WorkingDev: "Ali"}
	interns := []Intern{
		{Name: "Zara", Mode: InternFixed, LocalAmount: 27800},
		{Name: "Omar", Mode: InternPercentage, Percentage: 10},
	}

	got := ComputeAdvanced(1000, DefaultPolicy(), roles, interns, 278)

	require.Len(t, got.Interns, 2)
	assert.Equal(t, 100.0, got.Interns[0].Amount)
	assert.Equal(t, 27800.0, got.Interns[0].LocalAmount)
	assert.Equal(t, InternFixed, got.Interns[0].Mode)
	assert.InDelta(t, 70.0, got.Interns[1].Amount, 1e-9)
	assert.InDelta(t, 70.0*278, got.Interns[1].LocalAmount, 1e-6)
	assert.InDelta(t, 170.0, got.Intern, 1e-9)
	assert.InDelta(t, 530.0, got.WorkingDev, 1e-9)
}

func TestComputeAdvanced_InternDeductionsAreNotCascaded(t *testing.T) {
	// Developer base of 1000: payment 1000 at 100% developer, no other roles.
	policy := Policy{CompanyPct: 0, DeveloperPct: 100}
	roles := RoleAssignment{WorkingDev: "Ali"}
	interns := []Intern{
		{Name: "Zara", Mode: InternPercentage, Percentage: 10},
		{Name: "Omar", Mode: InternPercentage, Percentage: 20},
	}

	got := ComputeAdvanced(1000, policy, roles, interns, DefaultConversionRate)

	require.Len(t, got.Interns, 2)
	assert.Equal(t, 100.0, got.Interns[0].Amount)
	assert.Equal(t, 200.0, got.Interns[1].Amount)
	assert.Equal(t, 300.0, got.Intern)
	assert.Equal(t, 700.0, got.WorkingDev)
}

func TestComputeAdvanced_InternOrderPreservedAndEmptyFiltered(t *testing.T) {
	roles := RoleAssignment{WorkingDev: "Ali"}
	interns := []Intern{
		{Name: "First", Mode: InternPercentage, Percentage: 5},
		{Name: "Nothing", Mode: InternPercentage, Percentage: 0},
		{Name: "NoAmount", Mode: InternFixed, LocalAmount: 0},
		{Name: "Unknown", Mode: InternMode("bonus"), Percentage: 50},
		{Name: "Last", Mode: InternFixed, LocalAmount: 2780},
	}

	got := ComputeAdvanced(1000, DefaultPolicy(), roles, interns, 278)

	require.Len(t, got.Interns, 2)
	assert.Equal(t, "First", got.Interns[0].Name)
	assert.Equal(t, "Last", got.Interns[1].Name)
	assert.InDelta(t, 35.0+10.0, got.Intern, 1e-9)
}

func TestComputeAdvanced_BlankRolesNoInterns(t *testing.T) {
	policy := Policy{CompanyPct: 25, DeveloperPct: 75, JobHunterPct: 5, CommunicatorPct: 10}

	got := ComputeAdvanced(2000, policy, RoleAssignment{WorkingDev: "Ali", JobHunter: "", Communicator: "  "}, nil, 278)

	assert.Equal(t, 500.0, got.Company)
	assert.Equal(t, 1500.0, got.WorkingDev)
	assert.Zero(t, got.JobHunter)
	assert.Zero(t, got.Communicator)
	assert.Zero(t, got.Intern)
	assert.True(t, got.Reconciles(ReconcileTolerance))
}

func TestComputeAdvanced_PercentagesBelowHundredLeaveResidual(t *testing.T) {
	policy := Policy{CompanyPct: 30, DeveloperPct: 60}

	got := ComputeAdvanced(1000, policy, RoleAssignment{WorkingDev: "Ali"}, nil, 278)

	assert.InDelta(t, 100.0, got.Unallocated(), 1e-9)
	assert.False(t, got.Reconciles(ReconcileTolerance))
}

func TestComputeAdvanced_DeductionsMayExceedDeveloperShare(t *testing.T) {
	interns := []Intern{{Name: "Zara", Mode: InternFixed, LocalAmount: 278000}}

	got := ComputeAdvanced(1000, DefaultPolicy(), RoleAssignment{WorkingDev: "Ali"}, interns, 278)

	assert.Equal(t, 1000.0, got.Intern)
	assert.Equal(t, -300.0, got.WorkingDev)
	assert.True(t, got.HasNegativeShare())
	assert.True(t, got.Reconciles(ReconcileTolerance))
}

func TestComputeAdvanced_Idempotent(t *testing.T) {
	roles := RoleAssignment{WorkingDev: "Ali", JobHunter: "Bilal", Communicator: "Sara"}
	interns := []Intern{
		{Name: "Zara", Mode: InternFixed, LocalAmount: 5000},
		{Name: "Omar", Mode: InternPercentage, Percentage: 12.5},
	}
	policy := Policy{CompanyPct: 35, DeveloperPct: 65, JobHunterPct: 7, CommunicatorPct: 9}

	first := ComputeAdvanced(1234.56, policy, roles, interns, 280.5)
	second := ComputeAdvanced(1234.56, policy, roles, interns, 280.5)

	assert.Equal(t, first, second)
}

func TestInternMode_Valid(t *testing.T) {
	assert.True(t, InternFixed.Valid())
	assert.True(t, InternPercentage.Valid())
	assert.False(t, InternMode("").Valid())
	assert.False(t, InternMode("Fixed").Valid())
}

func TestComputeAdvanced_DeductionsKeepZeroEntries(t *testing.T) {
	interns := []Intern{
		{Name: "Zara", Mode: InternFixed, LocalAmount: 27800},
		{Name: "Nothing", Mode: InternPercentage, Percentage: 0},
		{Name: "Omar", Mode: InternPercentage, Percentage: 10},
	}

	got := ComputeAdvanced(1000, DefaultPolicy(), RoleAssignment{WorkingDev: "Ali"}, interns, 278)

	require.Len(t, got.Deductions, 3)
	assert.Equal(t, 100.0, got.Deductions[0].Amount)
	assert.Equal(t, 27800.0, got.Deductions[0].LocalAmount)
	assert.Zero(t, got.Deductions[1].Amount)
	assert.InDelta(t, 70.0, got.Deductions[2].Amount, 1e-9)

	require.Len(t, got.Interns, 2)
	assert.Equal(t, "Zara", got.Interns[0].Name)
	assert.Equal(t, "Omar", got.Interns[1].Name)
}

func TestRestoreShares(t *testing.T) {
	interns := []Intern{
		{Name: "Zara", Mode: InternFixed, LocalAmount: 27800},
		{Name: "Nothing", Mode: InternPercentage},
		{Name: "Omar", Mode: InternPercentage, Percentage: 10},
	}
	computed := ComputeAdvanced(1000, DefaultPolicy(), RoleAssignment{WorkingDev: "Ali"}, interns, 278)

	deductions := make([]float64, len(computed.Deductions))
	for i, d := range computed.Deductions {
		deductions[i] = d.Amount
	}

	assert.Equal(t, computed.Interns, RestoreShares(interns, deductions, 278))
}

func TestContributing(t *testing.T) {
	shares := []InternShare{{Name: "a", Amount: 5}, {Name: "b"}, {Name: "c", Amount: -1}, {Name: "d", Amount: 1}}

	got := Contributing(shares)

	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Name)
	assert.Equal(t, "d", got[1].Name)
	assert.Empty(t, Contributing(nil))
}
