package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/artilectsolutions/budgetsplit-backend/internal/api/request"
	"github.com/artilectsolutions/budgetsplit-backend/internal/distribution"
	"github.com/artilectsolutions/budgetsplit-backend/internal/model"
	"github.com/artilectsolutions/budgetsplit-backend/internal/repository"
	"github.com/artilectsolutions/budgetsplit-backend/internal/validation"
)

// Defaults are applied when a job request omits the conversion rate or an
// advanced policy percentage.
type Defaults struct {
	ConversionRate float64
	Policy         distribution.Policy
}

// JobService handles job business logic. Every write runs the distribution
// engine on already validated input and stores the result alongside the inputs.
type JobService struct {
	jobRepo  *repository.JobRepository
	defaults Defaults
	logger   *slog.Logger
	now      func() time.Time
}

// NewJobService creates a new JobService with the provided repository and defaults.
func NewJobService(jobRepo *repository.JobRepository, defaults Defaults, logger *slog.Logger) *JobService {
	if logger == nil {
		logger = slog.Default()
	}
	return &JobService{
		jobRepo:  jobRepo,
		defaults: defaults,
		logger:   logger,
		now:      time.Now,
	}
}

// CreateJob computes the distribution for req and stores the job for userID.
func (s *JobService) CreateJob(ctx context.Context, userID string, req request.JobRequest) (*model.Job, error) {
	job, err := s.buildJob(req)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	job.ID = uuid.New().String()
	job.UserID = userID
	job.CreatedAt = now
	job.UpdatedAt = now

	s.checkDistribution(job)

	if err := s.jobRepo.InsertJob(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	return job, nil
}

// UpdateJob replaces a job's inputs with req and recomputes its distribution
// from scratch; nothing from the previous distribution is kept.
// Returns ErrJobNotFound if the job does not belong to userID.
func (s *JobService) UpdateJob(ctx context.Context, userID, jobID string, req request.JobRequest) (*model.Job, error) {
	job, err := s.buildJob(req)
	if err != nil {
		return nil, err
	}

	existing, err := s.jobRepo.GetJob(ctx, userID, jobID)
	if err != nil {
		return nil, err
	}

	job.ID = existing.ID
	job.UserID = existing.UserID
	job.CreatedAt = existing.CreatedAt
	job.UpdatedAt = s.now().UTC()

	s.checkDistribution(job)

	if err := s.jobRepo.ReplaceJob(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to update job: %w", err)
	}

	return job, nil
}

// GetJob retrieves one of userID's jobs.
func (s *JobService) GetJob(ctx context.Context, userID, jobID string) (model.Job, error) {
	return s.jobRepo.GetJob(ctx, userID, jobID)
}

// ListJobs returns one page of a user's jobs. The page and the total count are
// fetched concurrently.
func (s *JobService) ListJobs(ctx context.Context, filter model.JobFilter) (model.JobPage, error) {
	var jobs []model.Job
	var total int

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		jobs, err = s.jobRepo.ListJobs(gctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.jobRepo.CountJobs(gctx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return model.JobPage{}, err
	}

	pages := 0
	if filter.Limit > 0 {
		pages = (total + filter.Limit - 1) / filter.Limit
	}

	return model.JobPage{
		Jobs: jobs,
		Pagination: model.Pagination{
			Current: max(filter.Page, 1),
			Pages:   pages,
			Total:   total,
		},
	}, nil
}

// DeleteJob removes one of userID's jobs.
func (s *JobService) DeleteJob(ctx context.Context, userID, jobID string) error {
	return s.jobRepo.DeleteJob(ctx, userID, jobID)
}

// Stats aggregates a user's jobs.
func (s *JobService) Stats(ctx context.Context, userID string) (model.JobStats, error) {
	return s.jobRepo.GetStats(ctx, userID)
}

// NameSuggestions returns the distinct names used on a user's jobs.
func (s *JobService) NameSuggestions(ctx context.Context, userID string) ([]string, error) {
	return s.jobRepo.GetNameSuggestions(ctx, userID)
}

// Breakdown renders the stored distribution of one of userID's jobs.
func (s *JobService) Breakdown(ctx context.Context, userID, jobID string) (model.Breakdown, error) {
	job, err := s.jobRepo.GetJob(ctx, userID, jobID)
	if err != nil {
		return model.Breakdown{}, err
	}
	return BreakdownOf(job), nil
}

// Preview computes and renders a distribution without storing anything.
func (s *JobService) Preview(req request.JobRequest) (model.Breakdown, error) {
	job, err := s.buildJob(req)
	if err != nil {
		return model.Breakdown{}, err
	}
	s.checkDistribution(job)
	return BreakdownOf(*job), nil
}

// buildJob runs the engine for req and returns a job carrying the normalized
// inputs and the computed distribution. Identity and timestamps are left unset.
// An advanced policy that is invalid once defaults are filled in is returned
// as a *validation.Error.
func (s *JobService) buildJob(req request.JobRequest) (*model.Job, error) {
	rate := s.defaults.ConversionRate
	if req.ConversionRate != nil {
		rate = *req.ConversionRate
	}

	roles := distribution.RoleAssignment{
		WorkingDev:   req.WorkingDev,
		JobHunter:    req.JobHunter,
		Communicator: req.CommunicatingDev,
	}
	stored := roles.Normalize()

	job := &model.Job{
		ProjectName:      strings.TrimSpace(req.ProjectName),
		PaymentAmount:    req.PaymentAmount,
		ConversionRate:   rate,
		Frequency:        req.Frequency,
		WorkingDev:       stored.WorkingDev,
		JobHunter:        stored.JobHunter,
		CommunicatingDev: stored.Communicator,
		PolicyType:       model.PolicyBasic,
	}

	if req.PolicyType != model.PolicyAdvanced {
		job.Distribution = toDistribution(distribution.ComputeBasic(req.PaymentAmount, roles))
		return job, nil
	}

	policy := s.policyFor(req.AdvancedPolicy)
	if err := validation.ValidatePolicy(policy); err != nil {
		return nil, err
	}
	var internReqs []request.InternRequest
	if req.AdvancedPolicy != nil {
		internReqs = req.AdvancedPolicy.Interns
	}

	interns := make([]distribution.Intern, len(internReqs))
	for i, in := range internReqs {
		interns[i] = distribution.Intern{
			Name:        strings.TrimSpace(in.Name),
			Mode:        distribution.InternMode(in.Type),
			LocalAmount: in.Amount,
			Percentage:  in.Percentage,
		}
	}

	result := distribution.ComputeAdvanced(req.PaymentAmount, policy, roles, interns, rate)

	storedInterns := make([]model.Intern, len(interns))
	for i, in := range interns {
		storedInterns[i] = model.Intern{
			Name:         in.Name,
			Type:         string(in.Mode),
			Amount:       in.LocalAmount,
			Percentage:   in.Percentage,
			Contribution: result.Deductions[i].Amount,
		}
	}

	job.PolicyType = model.PolicyAdvanced
	job.AdvancedPolicy = &model.AdvancedPolicy{
		CompanyPercentage:      policy.CompanyPct,
		DeveloperPercentage:    policy.DeveloperPct,
		JobHunterPercentage:    policy.JobHunterPct,
		CommunicatorPercentage: policy.CommunicatorPct,
		Interns:                storedInterns,
	}
	job.Distribution = toDistribution(result.Result)

	return job, nil
}

// policyFor fills the percentages missing from p with the configured defaults.
func (s *JobService) policyFor(p *request.AdvancedPolicyRequest) distribution.Policy {
	policy := s.defaults.Policy
	if p == nil {
		return policy
	}
	if p.CompanyPercentage != nil {
		policy.CompanyPct = *p.CompanyPercentage
	}
	if p.DeveloperPercentage != nil {
		policy.DeveloperPct = *p.DeveloperPercentage
	}
	if p.JobHunterPercentage != nil {
		policy.JobHunterPct = *p.JobHunterPercentage
	}
	if p.CommunicatorPercentage != nil {
		policy.CommunicatorPct = *p.CommunicatorPercentage
	}
	return policy
}

// checkDistribution logs distributions that are accepted but suspicious.
func (s *JobService) checkDistribution(job *model.Job) {
	result := fromDistribution(job.Distribution)
	if result.HasNegativeShare() {
		s.logger.Warn("distribution has a negative share",
			"project", job.ProjectName,
			"working_dev", result.WorkingDev,
			"intern", result.Intern,
		)
	}
	if !result.Reconciles(distribution.ReconcileTolerance) {
		s.logger.Warn("distribution does not reconcile",
			"project", job.ProjectName,
			"total", result.Total,
			"unallocated", result.Unallocated(),
		)
	}
}

// BreakdownOf renders a job's stored distribution as table rows, local
// currency mirrors and per-intern deductions.
func BreakdownOf(job model.Job) model.Breakdown {
	result := fromDistribution(job.Distribution)
	roles := distribution.RoleAssignment{
		WorkingDev:   job.WorkingDev,
		JobHunter:    job.JobHunter,
		Communicator: job.CommunicatingDev,
	}

	interns := []distribution.InternShare{}
	if job.AdvancedPolicy != nil {
		stored := job.AdvancedPolicy.Interns
		inputs := make([]distribution.Intern, len(stored))
		deductions := make([]float64, len(stored))
		for i, in := range stored {
			inputs[i] = distribution.Intern{
				Name:        in.Name,
				Mode:        distribution.InternMode(in.Type),
				LocalAmount: in.Amount,
				Percentage:  in.Percentage,
			}
			deductions[i] = in.Contribution
		}
		interns = distribution.RestoreShares(inputs, deductions, job.ConversionRate)
	}

	return model.Breakdown{
		JobID:          job.ID,
		ProjectName:    job.ProjectName,
		PaymentAmount:  job.PaymentAmount,
		ConversionRate: job.ConversionRate,
		LocalTotal:     distribution.ToLocal(job.PaymentAmount, job.ConversionRate),
		PolicyType:     job.PolicyType,
		Distribution:   job.Distribution,
		Lines:          distribution.Breakdown(result, roles, job.ConversionRate),
		Interns:        interns,
		Unallocated:    result.Unallocated(),
		Reconciled:     result.Reconciles(distribution.ReconcileTolerance),
	}
}

func toDistribution(r distribution.Result) model.Distribution {
	return model.Distribution{
		Company:      r.Company,
		WorkingDev:   r.WorkingDev,
		JobHunter:    r.JobHunter,
		Communicator: r.Communicator,
		Intern:       r.Intern,
		Total:        r.Total,
	}
}

func fromDistribution(d model.Distribution) distribution.Result {
	return distribution.Result{
		Company:      d.Company,
		WorkingDev:   d.WorkingDev,
		JobHunter:    d.JobHunter,
		Communicator: d.Communicator,
		Intern:       d.Intern,
		Total:        d.Total,
	}
}
