package services_test

import (
	"context"
	"testing"

	"teccitas_server/models"
	"teccitas_server/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitReport(t *testing.T) {
	ctx := context.Background()
	store := services.NewMemoryStore()
	reportService := &services.ReportService{Store: store}

	report, err := reportService.SubmitReport(ctx, services.ReportInput{
		ReporterID:       "ana",
		ReportedUserID:   "bruno",
		ReportedUserName: "Bruno",
		Reason:           "inappropriate_photos",
		Details:          "profile photo violates the guidelines",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, report.ReportID)
	assert.Equal(t, models.ReportStatusPending, report.Status)
	assert.NotEmpty(t, report.CreatedAt)

	fields, err := store.Get(ctx, models.ReportsCollection, report.ReportID)
	require.NoError(t, err)
	var stored models.Report
	require.NoError(t, services.UnmarshalDocument(fields, &stored))
	assert.Equal(t, "ana", stored.ReporterID)
	assert.Equal(t, "bruno", stored.ReportedUserID)
	assert.Equal(t, "inappropriate_photos", stored.Reason)

	// No block was requested.
	_, err = store.Get(ctx, models.BlockedCollection("ana"), "bruno")
	assert.ErrorIs(t, err, services.ErrDocumentNotFound)
}

func TestSubmitReportValidation(t *testing.T) {
	ctx := context.Background()
	reportService := &services.ReportService{Store: services.NewMemoryStore()}

	_, err := reportService.SubmitReport(ctx, services.ReportInput{ReportedUserID: "bruno", Reason: "spam"})
	assert.Error(t, err)

	_, err = reportService.SubmitReport(ctx, services.ReportInput{ReporterID: "ana", ReportedUserID: "bruno"})
	assert.Error(t, err)

	_, err = reportService.SubmitReport(ctx, services.ReportInput{ReporterID: "ana", ReportedUserID: "ana", Reason: "spam"})
	assert.Error(t, err)
}

// TestSubmitReportWithBlockExcludesFromDiscovery: report-and-block removes
// the reported user from the reporter's candidate queue.
func TestSubmitReportWithBlockExcludesFromDiscovery(t *testing.T) {
	ctx := context.Background()
	store := services.NewMemoryStore()
	reportService := &services.ReportService{Store: store}
	candidateService := &services.CandidateService{Store: store}
	ana, bruno := testProfiles()
	seedProfile(t, store, ana)
	seedProfile(t, store, bruno)

	before, err := candidateService.Discover(ctx, "ana")
	require.NoError(t, err)
	require.Equal(t, []string{"bruno"}, profileIDs(before))

	_, err = reportService.SubmitReport(ctx, services.ReportInput{
		ReporterID:     "ana",
		ReportedUserID: "bruno",
		Reason:         "harassment",
		BlockUser:      true,
	})
	require.NoError(t, err)

	blocked, err := store.Get(ctx, models.BlockedCollection("ana"), "bruno")
	require.NoError(t, err)
	var record models.BlockedRecord
	require.NoError(t, services.UnmarshalDocument(blocked, &record))
	assert.Equal(t, "harassment", record.Reason)

	after, err := candidateService.Discover(ctx, "ana")
	require.NoError(t, err)
	assert.Empty(t, after)
}
