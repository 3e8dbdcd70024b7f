package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/artilectsolutions/budgetsplit-backend/internal/distribution"
	"github.com/artilectsolutions/budgetsplit-backend/internal/model"
	"github.com/artilectsolutions/budgetsplit-backend/internal/repository"
)

// TestPassword is the password of every user built by UserBuilder.
const TestPassword = "password123"

var testPasswordHash string

func passwordHash(t *testing.T) string {
	t.Helper()
	if testPasswordHash == "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
		if err != nil {
			t.Fatalf("Failed to hash test password: %v", err)
		}
		testPasswordHash = string(hash)
	}
	return testPasswordHash
}

// UserBuilder provides a fluent interface for creating test users.
//
// Example usage:
//
//	// Simple creation with defaults
//	user := testutil.NewUser().Build(t, db)
//
//	// Customized user
//	user := testutil.NewUser().
//	    WithEmail("admin@example.com").
//	    Inactive().
//	    Build(t, db)
type UserBuilder struct {
	ID       string
	Email    string
	Name     string
	IsActive bool
}

// NewUser creates a UserBuilder with sensible defaults.
func NewUser() *UserBuilder {
	return &UserBuilder{
		ID:       MakeID(),
		Email:    MakeEmail("user"),
		Name:     MakeName("User"),
		IsActive: true,
	}
}

// WithEmail sets a custom email.
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.Email = email
	return b
}

// WithName sets a custom name.
func (b *UserBuilder) WithName(name string) *UserBuilder {
	b.Name = name
	return b
}

// Inactive marks the user as disabled.
func (b *UserBuilder) Inactive() *UserBuilder {
	b.IsActive = false
	return b
}

// Build creates the user in the database and returns it.
// The user's password is TestPassword.
func (b *UserBuilder) Build(t *testing.T, db *sql.DB) model.User {
	t.Helper()

	user := model.User{
		ID:           b.ID,
		Email:        b.Email,
		Name:         b.Name,
		PasswordHash: passwordHash(t),
		IsActive:     b.IsActive,
		CreatedAt:    time.Now().UTC(),
	}

	if err := repository.NewUserRepository(db).InsertUser(context.Background(), &user); err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return user
}

// CreateUser creates an active user with default values.
func CreateUser(t *testing.T, db *sql.DB) model.User {
	t.Helper()
	return NewUser().Build(t, db)
}

// JobBuilder provides a fluent interface for creating test jobs. The
// distribution is computed with the basic policy unless interns or an
// advanced policy are added.
//
// Example usage:
//
//	job := testutil.NewJob(user.ID).
//	    WithProjectName("Website").
//	    WithRoles("Ali", "Bilal", "Sara").
//	    Build(t, db)
type JobBuilder struct {
	ID             string
	UserID         string
	ProjectName    string
	PaymentAmount  float64
	ConversionRate float64
	Frequency      string
	Roles          distribution.RoleAssignment
	Policy         *distribution.Policy
	Interns        []distribution.Intern
	CreatedAt      time.Time
}

// NewJob creates a JobBuilder for userID with sensible defaults.
func NewJob(userID string) *JobBuilder {
	return &JobBuilder{
		ID:             MakeID(),
		UserID:         userID,
		ProjectName:    MakeName("Project"),
		PaymentAmount:  1000,
		ConversionRate: distribution.DefaultConversionRate,
		Frequency:      "Monthly",
		Roles:          distribution.RoleAssignment{WorkingDev: "Ali"},
		CreatedAt:      time.Now().UTC(),
	}
}

// WithProjectName sets a custom project name.
func (b *JobBuilder) WithProjectName(name string) *JobBuilder {
	b.ProjectName = name
	return b
}

// WithAmount sets a custom payment amount.
func (b *JobBuilder) WithAmount(amount float64) *JobBuilder {
	b.PaymentAmount = amount
	return b
}

// WithFrequency sets a custom frequency.
func (b *JobBuilder) WithFrequency(frequency string) *JobBuilder {
	b.Frequency = frequency
	return b
}

// WithRoles sets the working developer, job hunter and communicator.
func (b *JobBuilder) WithRoles(workingDev, jobHunter, communicator string) *JobBuilder {
	b.Roles = distribution.RoleAssignment{WorkingDev: workingDev, JobHunter: jobHunter, Communicator: communicator}
	return b
}

// WithAdvancedPolicy switches the job to the advanced policy.
func (b *JobBuilder) WithAdvancedPolicy(policy distribution.Policy) *JobBuilder {
	b.Policy = &policy
	return b
}

// WithIntern appends an intern and switches the job to the advanced policy.
func (b *JobBuilder) WithIntern(intern distribution.Intern) *JobBuilder {
	if b.Policy == nil {
		policy := distribution.DefaultPolicy()
		b.Policy = &policy
	}
	b.Interns = append(b.Interns, intern)
	return b
}

// WithCreatedAt sets a custom creation time.
func (b *JobBuilder) WithCreatedAt(createdAt time.Time) *JobBuilder {
	b.CreatedAt = createdAt.UTC()
	return b
}

// Build creates the job in the database and returns it.
func (b *JobBuilder) Build(t *testing.T, db *sql.DB) model.Job {
	t.Helper()

	roles := b.Roles.Normalize()
	job := model.Job{
		ID:               b.ID,
		UserID:           b.UserID,
		ProjectName:      b.ProjectName,
		PaymentAmount:    b.PaymentAmount,
		ConversionRate:   b.ConversionRate,
		Frequency:        b.Frequency,
		WorkingDev:       roles.WorkingDev,
		JobHunter:        roles.JobHunter,
		CommunicatingDev: roles.Communicator,
		PolicyType:       model.PolicyBasic,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.CreatedAt,
	}

	var result distribution.Result
	if b.Policy == nil {
		result = distribution.ComputeBasic(b.PaymentAmount, b.Roles)
	} else {
		advanced := distribution.ComputeAdvanced(b.PaymentAmount, *b.Policy, b.Roles, b.Interns, b.ConversionRate)
		result = advanced.Result

		interns := make([]model.Intern, len(b.Interns))
		for i, in := range b.Interns {
			interns[i] = model.Intern{
				Name:         in.Name,
				Type:         string(in.Mode),
				Amount:       in.LocalAmount,
				Percentage:   in.Percentage,
				Contribution: advanced.Deductions[i].Amount,
			}
		}

		job.PolicyType = model.PolicyAdvanced
		job.AdvancedPolicy = &model.AdvancedPolicy{
			CompanyPercentage:      b.Policy.CompanyPct,
			DeveloperPercentage:    b.Policy.DeveloperPct,
			JobHunterPercentage:    b.Policy.JobHunterPct,
			CommunicatorPercentage: b.Policy.CommunicatorPct,
			Interns:                interns,
		}
	}

	job.Distribution = model.Distribution{
		Company:      result.Company,
		WorkingDev:   result.WorkingDev,
		JobHunter:    result.JobHunter,
		Communicator: result.Communicator,
		Intern:       result.Intern,
		Total:        result.Total,
	}

	if err := repository.NewJobRepository(db).InsertJob(context.Background(), &job); err != nil {
		t.Fatalf("Failed to create test job: %v", err)
	}

	return job
}

// CreateJob creates a basic-policy job for userID with the given project name.
func CreateJob(t *testing.T, db *sql.DB, userID, projectName string) model.Job {
	t.Helper()
	return NewJob(userID).WithProjectName(projectName).Build(t, db)
}

// CreateJobs creates count jobs for userID, each one second newer than the last.
func CreateJobs(t *testing.T, db *sql.DB, userID string, count int) []model.Job {
	t.Helper()

	start := time.Now().UTC().Add(-time.Duration(count) * time.Second)
	jobs := make([]model.Job, count)
	for i := range count {
		jobs[i] = NewJob(userID).
			WithCreatedAt(start.Add(time.Duration(i)*time.Second)).
			Build(t, db)
	}
	return jobs
}
