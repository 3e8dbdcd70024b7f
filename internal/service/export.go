package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/artilectsolutions/budgetsplit-backend/internal/distribution"
	"github.com/artilectsolutions/budgetsplit-backend/internal/model"
)

// exportHeader is the column layout of the CSV export.
var exportHeader = []string{
	"id", "created_at", "project_name", "frequency", "policy_type",
	"payment_amount", "conversion_rate", "local_total",
	"working_dev", "job_hunter", "communicating_dev",
	"company", "working_dev_share", "job_hunter_share", "communicator_share", "intern_share",
	"total",
}

// ExportCSV writes every job of userID to w as CSV, oldest first.
// Amounts are in the reference currency with two decimals.
func (s *JobService) ExportCSV(ctx context.Context, userID string, w io.Writer) error {
	jobs, err := s.jobRepo.ListAllJobs(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load jobs for export: %w", err)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeader); err != nil {
		return fmt.Errorf("failed to write export header: %w", err)
	}

	for _, job := range jobs {
		if err := writer.Write(exportRecord(job)); err != nil {
			return fmt.Errorf("failed to write export record for job %s: %w", job.ID, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush export: %w", err)
	}
	return nil
}

func exportRecord(job model.Job) []string {
	money := distribution.FormatMoney
	d := job.Distribution
	return []string{
		job.ID,
		job.CreatedAt.Format("2006-01-02"),
		safeCell(job.ProjectName),
		job.Frequency,
		job.PolicyType,
		money(job.PaymentAmount),
		money(job.ConversionRate),
		money(distribution.ToLocal(job.PaymentAmount, job.ConversionRate)),
		safeCell(job.WorkingDev),
		safeCell(job.JobHunter),
		safeCell(job.CommunicatingDev),
		money(d.Company),
		money(d.WorkingDev),
		money(d.JobHunter),
		money(d.Communicator),
		money(d.Intern),
		money(d.Total),
	}
}

// safeCell prefixes free-text values that a spreadsheet would evaluate as a
// formula with a single quote.
func safeCell(value string) string {
	if value != "" && strings.ContainsRune("=+-@\t\r", rune(value[0])) {
		return "'" + value
	}
	return value
}
