package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"teccitas_server/models"

	"github.com/google/uuid"
)

// ReportService stores user reports and the optional block that goes with
// them. Blocking feeds straight into candidate filtering: a blocked user
// never appears in the reporter's queue again.
type ReportService struct {
	Store DocumentStore
}

// ReportInput is the payload of a report submission.
type ReportInput struct {
	ReporterID        string `json:"reporterId"`
	ReportedUserID    string `json:"reportedUserId"`
	ReportedUserName  string `json:"reportedUserName,omitempty"`
	ReportedUserPhoto string `json:"reportedUserPhoto,omitempty"`
	Reason            string `json:"reason"`
	Details           string `json:"details,omitempty"`
	BlockUser         bool   `json:"blockUser"`
}

// SubmitReport stores the report and, when requested, blocks the reported
// user for the reporter.
func (rs *ReportService) SubmitReport(ctx context.Context, input ReportInput) (*models.Report, error) {
	if input.ReporterID == "" || input.ReportedUserID == "" {
		return nil, errors.New("reporterId and reportedUserId are required")
	}
	if input.Reason == "" {
		return nil, errors.New("reason is required")
	}
	if input.ReporterID == input.ReportedUserID {
		return nil, errors.New("cannot report yourself")
	}

	timestamp := rs.Store.ServerTimestamp()
	report := models.Report{
		ReportID:          uuid.New().String(),
		ReporterID:        input.ReporterID,
		ReportedUserID:    input.ReportedUserID,
		ReportedUserName:  input.ReportedUserName,
		ReportedUserPhoto: input.ReportedUserPhoto,
		Reason:            input.Reason,
		Details:           input.Details,
		Status:            models.ReportStatusPending,
		CreatedAt:         timestamp,
	}

	fields, err := MarshalDocument(report)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := rs.Store.Put(ctx, models.ReportsCollection, report.ReportID, fields); err != nil {
		return nil, fmt.Errorf("failed to store report: %w", err)
	}

	if input.BlockUser {
		if err := rs.BlockUser(ctx, input.ReporterID, input.ReportedUserID, input.Reason); err != nil {
			// The report is saved; surface the block failure.
			return &report, err
		}
	}

	log.Printf("✅ Report stored: %s reported %s (%s)", input.ReporterID, input.ReportedUserID, input.Reason)
	return &report, nil
}

// BlockUser writes the blocked record that excludes blockedID from
// blockerID's discovery queue.
func (rs *ReportService) BlockUser(ctx context.Context, blockerID, blockedID, reason string) error {
	fields, err := MarshalDocument(models.BlockedRecord{
		BlockedAt: rs.Store.ServerTimestamp(),
		Reason:    reason,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal blocked record: %w", err)
	}
	if err := rs.Store.Put(ctx, models.BlockedCollection(blockerID), blockedID, fields); err != nil {
		return fmt.Errorf("failed to block user: %w", err)
	}
	return nil
}
