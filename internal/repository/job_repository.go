package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/artilectsolutions/budgetsplit-backend/internal/apperrors"
	"github.com/artilectsolutions/budgetsplit-backend/internal/model"
)

// JobRepository provides data access methods for the job and job_intern tables.
// A job row carries both its raw inputs and the distribution computed from them.
type JobRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewJobRepository creates a new JobRepository with the provided database connection.
func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{db: db}
}

// WithTx returns a new JobRepository scoped to the provided transaction.
func (r *JobRepository) WithTx(tx *sql.Tx) *JobRepository {
	return &JobRepository{
		db: r.db,
		tx: tx,
	}
}

// getQuerier returns the active transaction if one is set, otherwise the database connection.
func (r *JobRepository) getQuerier() interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// inTx runs fn inside a transaction, reusing the active one if the repository
// is already scoped to a transaction.
func (r *JobRepository) inTx(ctx context.Context, fn func(repo *JobRepository) error) error {
	if r.tx != nil {
		return fn(r)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(r.WithTx(tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

const jobColumns = `
	id, user_id, project_name, payment_amount, conversion_rate, frequency,
	working_dev, job_hunter, communicating_dev, policy_type,
	company_percentage, developer_percentage, job_hunter_percentage, communicator_percentage,
	dist_company, dist_working_dev, dist_job_hunter, dist_communicator, dist_intern, dist_total,
	created_at, updated_at`

// InsertJob stores a new job together with its interns.
func (r *JobRepository) InsertJob(ctx context.Context, job *model.Job) error {
	if job == nil {
		return fmt.Errorf("job cannot be nil")
	}

	return r.inTx(ctx, func(repo *JobRepository) error {
		query := `
			INSERT INTO job (` + jobColumns + `)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`

		company, developer, hunter, communicator := policyColumns(job.AdvancedPolicy)
		_, err := repo.getQuerier().ExecContext(ctx, query,
			job.ID,
			job.UserID,
			job.ProjectName,
			job.PaymentAmount,
			job.ConversionRate,
			job.Frequency,
			job.WorkingDev,
			job.JobHunter,
			job.CommunicatingDev,
			job.PolicyType,
			company,
			developer,
			hunter,
			communicator,
			job.Distribution.Company,
			job.Distribution.WorkingDev,
			job.Distribution.JobHunter,
			job.Distribution.Communicator,
			job.Distribution.Intern,
			job.Distribution.Total,
			FormatTime(job.CreatedAt),
			FormatTime(job.UpdatedAt),
		)
		if err != nil {
			if isUniqueViolation(err) {
				return apperrors.ErrDuplicateEntry
			}
			return fmt.Errorf("failed to insert job: %w", err)
		}

		return repo.insertInterns(ctx, job)
	})
}

// ReplaceJob overwrites an existing job's inputs and distribution and swaps
// its interns for the ones on job. CreatedAt is left untouched.
// Returns ErrJobNotFound if the job does not exist or belongs to another user.
func (r *JobRepository) ReplaceJob(ctx context.Context, job *model.Job) error {
	if job == nil {
		return fmt.Errorf("job cannot be nil")
	}

	return r.inTx(ctx, func(repo *JobRepository) error {
		query := `
			UPDATE job
			SET project_name = ?, payment_amount = ?, conversion_rate = ?, frequency = ?,
				working_dev = ?, job_hunter = ?, communicating_dev = ?, policy_type = ?,
				company_percentage = ?, developer_percentage = ?,
				job_hunter_percentage = ?, communicator_percentage = ?,
				dist_company = ?, dist_working_dev = ?, dist_job_hunter = ?,
				dist_communicator = ?, dist_intern = ?, dist_total = ?,
				updated_at = ?
			WHERE id = ? AND user_id = ?
		`

		company, developer, hunter, communicator := policyColumns(job.AdvancedPolicy)
		result, err := repo.getQuerier().ExecContext(ctx, query,
			job.ProjectName,
			job.PaymentAmount,
			job.ConversionRate,
			job.Frequency,
			job.WorkingDev,
			job.JobHunter,
			job.CommunicatingDev,
			job.PolicyType,
			company,
			developer,
			hunter,
			communicator,
			job.Distribution.Company,
			job.Distribution.WorkingDev,
			job.Distribution.JobHunter,
			job.Distribution.Communicator,
			job.Distribution.Intern,
			job.Distribution.Total,
			FormatTime(job.UpdatedAt),
			job.ID,
			job.UserID,
		)
		if err != nil {
			return fmt.Errorf("failed to update job: %w", err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rowsAffected == 0 {
			return apperrors.ErrJobNotFound
		}

		if _, err := repo.getQuerier().ExecContext(ctx, `DELETE FROM job_intern WHERE job_id = ?`, job.ID); err != nil {
			return fmt.Errorf("failed to delete job interns: %w", err)
		}

		return repo.insertInterns(ctx, job)
	})
}

func (r *JobRepository) insertInterns(ctx context.Context, job *model.Job) error {
	if job.AdvancedPolicy == nil {
		return nil
	}

	query := `
		INSERT INTO job_intern (id, job_id, position, name, type, amount, percentage, contribution)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	for i := range job.AdvancedPolicy.Interns {
		in := &job.AdvancedPolicy.Interns[i]
		if in.ID == "" {
			in.ID = uuid.New().String()
		}
		_, err := r.getQuerier().ExecContext(ctx, query,
			in.ID,
			job.ID,
			i,
			in.Name,
			in.Type,
			in.Amount,
			in.Percentage,
			in.Contribution,
		)
		if err != nil {
			return fmt.Errorf("failed to insert job intern: %w", err)
		}
	}
	return nil
}

// GetJob retrieves a job and its interns, scoped to its owner.
// Returns ErrJobNotFound if no job with the given ID belongs to userID.
func (r *JobRepository) GetJob(ctx context.Context, userID, jobID string) (model.Job, error) {
	if jobID == "" {
		return model.Job{}, apperrors.ErrEmptyID
	}

	query := `SELECT ` + jobColumns + ` FROM job WHERE id = ? AND user_id = ?`

	job, err := scanJob(r.getQuerier().QueryRowContext(ctx, query, jobID, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Job{}, apperrors.ErrJobNotFound
	}
	if err != nil {
		return model.Job{}, fmt.Errorf("failed to query job: %w", err)
	}

	jobs := []model.Job{job}
	if err := r.attachInterns(ctx, jobs); err != nil {
		return model.Job{}, err
	}

	return jobs[0], nil
}

// ListJobs returns one page of a user's jobs, newest first.
// Returns an empty slice if no jobs match the filter.
func (r *JobRepository) ListJobs(ctx context.Context, filter model.JobFilter) ([]model.Job, error) {
	where, args := jobWhere(filter)
	query := `SELECT ` + jobColumns + ` FROM job` + where + ` ORDER BY created_at DESC, id`

	if filter.Limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, filter.Limit, filter.Offset())
	}

	return r.queryJobs(ctx, query, args...)
}

// ListAllJobs returns every job of a user, oldest first.
func (r *JobRepository) ListAllJobs(ctx context.Context, userID string) ([]model.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM job WHERE user_id = ? ORDER BY created_at, id`
	return r.queryJobs(ctx, query, userID)
}

// CountJobs returns how many of a user's jobs match the filter, ignoring pagination.
func (r *JobRepository) CountJobs(ctx context.Context, filter model.JobFilter) (int, error) {
	where, args := jobWhere(filter)
	query := `SELECT COUNT(*) FROM job` + where

	var count int
	if err := r.getQuerier().QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count jobs: %w", err)
	}
	return count, nil
}

// DeleteJob removes a job owned by userID. Its interns go with it.
// Returns ErrJobNotFound if no such job exists.
func (r *JobRepository) DeleteJob(ctx context.Context, userID, jobID string) error {
	query := `DELETE FROM job WHERE id = ? AND user_id = ?`

	result, err := r.getQuerier().ExecContext(ctx, query, jobID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.ErrJobNotFound
	}

	return nil
}

// GetStats aggregates a user's jobs. Developer earnings count the working
// developer's share only; job hunter, communicator and intern pay are excluded.
func (r *JobRepository) GetStats(ctx context.Context, userID string) (model.JobStats, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(dist_total), 0),
			COALESCE(SUM(dist_company), 0),
			COALESCE(SUM(dist_working_dev), 0),
			COUNT(DISTINCT working_dev)
		FROM job
		WHERE user_id = ?
	`

	var stats model.JobStats
	err := r.getQuerier().QueryRowContext(ctx, query, userID).Scan(
		&stats.TotalJobs,
		&stats.TotalRevenue,
		&stats.TotalCompanyEarnings,
		&stats.TotalDeveloperEarnings,
		&stats.UniqueDevelopers,
	)
	if err != nil {
		return model.JobStats{}, fmt.Errorf("failed to query job stats: %w", err)
	}

	if stats.TotalJobs > 0 {
		stats.AvgJobValue = stats.TotalRevenue / float64(stats.TotalJobs)
	}

	return stats, nil
}

// GetNameSuggestions returns every distinct non-blank person name used on a
// user's jobs, across all roles and interns, sorted case-insensitively.
func (r *JobRepository) GetNameSuggestions(ctx context.Context, userID string) ([]string, error) {
	query := `
		SELECT name FROM (
			SELECT TRIM(working_dev) AS name FROM job WHERE user_id = ?
			UNION
			SELECT TRIM(job_hunter) FROM job WHERE user_id = ?
			UNION
			SELECT TRIM(communicating_dev) FROM job WHERE user_id = ?
			UNION
			SELECT TRIM(ji.name) FROM job_intern ji
			JOIN job j ON j.id = ji.job_id
			WHERE j.user_id = ?
		)
		WHERE name != ''
		ORDER BY name COLLATE NOCASE
	`

	rows, err := r.getQuerier().QueryContext(ctx, query, userID, userID, userID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query name suggestions: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan name suggestion: %w", err)
		}
		names = append(names, name)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating name suggestions: %w", err)
	}

	return names, nil
}

func (r *JobRepository) queryJobs(ctx context.Context, query string, args ...any) ([]model.Job, error) {
	rows, err := r.getQuerier().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query job table: %w", err)
	}
	defer rows.Close()

	jobs := []model.Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job table results: %w", err)
		}
		jobs = append(jobs, job)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating job table: %w", err)
	}
	rows.Close()

	if err := r.attachInterns(ctx, jobs); err != nil {
		return nil, err
	}

	return jobs, nil
}

// attachInterns loads the interns of every advanced job in jobs with a single query.
func (r *JobRepository) attachInterns(ctx context.Context, jobs []model.Job) error {
	index := make(map[string]int)
	var ids []any
	for i := range jobs {
		if jobs[i].AdvancedPolicy != nil {
			index[jobs[i].ID] = i
			ids = append(ids, jobs[i].ID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	query := `
		SELECT id, job_id, name, type, amount, percentage, contribution
		FROM job_intern
		WHERE job_id IN (` + placeholders + `)
		ORDER BY job_id, position
	`

	rows, err := r.getQuerier().QueryContext(ctx, query, ids...)
	if err != nil {
		return fmt.Errorf("failed to query job_intern table: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var in model.Intern
		var jobID string
		if err := rows.Scan(&in.ID, &jobID, &in.Name, &in.Type, &in.Amount, &in.Percentage, &in.Contribution); err != nil {
			return fmt.Errorf("failed to scan job_intern table results: %w", err)
		}
		policy := jobs[index[jobID]].AdvancedPolicy
		policy.Interns = append(policy.Interns, in)
	}

	if err = rows.Err(); err != nil {
		return fmt.Errorf("error iterating job_intern table: %w", err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (model.Job, error) {
	var job model.Job
	var company, developer, hunter, communicator sql.NullFloat64
	var createdAt, updatedAt string

	err := row.Scan(
		&job.ID,
		&job.UserID,
		&job.ProjectName,
		&job.PaymentAmount,
		&job.ConversionRate,
		&job.Frequency,
		&job.WorkingDev,
		&job.JobHunter,
		&job.CommunicatingDev,
		&job.PolicyType,
		&company,
		&developer,
		&hunter,
		&communicator,
		&job.Distribution.Company,
		&job.Distribution.WorkingDev,
		&job.Distribution.JobHunter,
		&job.Distribution.Communicator,
		&job.Distribution.Intern,
		&job.Distribution.Total,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return model.Job{}, err
	}

	if job.PolicyType == model.PolicyAdvanced {
		job.AdvancedPolicy = &model.AdvancedPolicy{
			CompanyPercentage:      company.Float64,
			DeveloperPercentage:    developer.Float64,
			JobHunterPercentage:    hunter.Float64,
			CommunicatorPercentage: communicator.Float64,
			Interns:                []model.Intern{},
		}
	}

	if job.CreatedAt, err = ParseTime(createdAt); err != nil {
		return model.Job{}, err
	}
	if job.UpdatedAt, err = ParseTime(updatedAt); err != nil {
		return model.Job{}, err
	}

	return job, nil
}

// jobWhere builds the WHERE clause shared by ListJobs and CountJobs.
func jobWhere(filter model.JobFilter) (string, []any) {
	where := ` WHERE user_id = ?`
	args := []any{filter.UserID}

	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := likePattern(search)
		where += ` AND (
			LOWER(project_name) LIKE ? ESCAPE '\' OR
			LOWER(working_dev) LIKE ? ESCAPE '\' OR
			LOWER(job_hunter) LIKE ? ESCAPE '\' OR
			LOWER(communicating_dev) LIKE ? ESCAPE '\'
		)`
		args = append(args, pattern, pattern, pattern, pattern)
	}

	if filter.Frequency != "" && filter.Frequency != model.FrequencyAll {
		where += ` AND frequency = ?`
		args = append(args, filter.Frequency)
	}

	return where, args
}

func policyColumns(p *model.AdvancedPolicy) (company, developer, hunter, communicator any) {
	if p == nil {
		return nil, nil, nil, nil
	}
	return p.CompanyPercentage, p.DeveloperPercentage, p.JobHunterPercentage, p.CommunicatorPercentage
}
