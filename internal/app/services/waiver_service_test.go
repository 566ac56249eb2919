package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trashmob-eco/trashmob-api/internal/app/models"
	"github.com/trashmob-eco/trashmob-api/internal/app/models/dto"
	"github.com/trashmob-eco/trashmob-api/internal/app/repositories"
	"github.com/trashmob-eco/trashmob-api/internal/pkg/apperrors"
)

func newWaiverService(t *testing.T, repos *repositories.Repositories) WaiverService {
	t.Helper()
	svc := NewWaiverService(repos.Waivers, repos.Partners, repos.UnitOfWork, newTestAuthz(repos), testLogger())
	svc.(*waiverServiceImpl).now = fixedNow
	return svc
}

func createWaiverWithVersion(t *testing.T, repos *repositories.Repositories, svc WaiverService, admin *models.User) *models.Waiver {
	t.Helper()
	ctx := context.Background()
	waiver, err := svc.CreateWaiver(ctx, admin.ID, &dto.CreateWaiverRequest{
		Name:            "Volunteer Release",
		IsWaiverEnabled: true,
	})
	require.NoError(t, err)
	_, err = svc.PublishVersion(ctx, waiver.ID, admin.ID, &dto.PublishVersionRequest{
		DocumentURL:   "https://docs.example.com/release-v1.pdf",
		EffectiveDate: testTime,
	})
	require.NoError(t, err)
	return waiver
}

func acceptRequest() *dto.AcceptWaiverRequest {
	return &dto.AcceptWaiverRequest{
		TypedLegalName: "Jordan Smith",
		SigningMethod:  "typed",
	}
}

func TestPublishVersionKeepsExactlyOneActive(t *testing.T) {
	repos := newTestRepos(t)
	svc := newWaiverService(t, repos)
	ctx := context.Background()
	admin := createUser(t, repos, "admin", true)
	waiver := createWaiverWithVersion(t, repos, svc, admin)

	v2, err := svc.PublishVersion(ctx, waiver.ID, admin.ID, &dto.PublishVersionRequest{
		DocumentURL:   "https://docs.example.com/release-v2.pdf",
		EffectiveDate: testTime.Add(24 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, v2.VersionNumber)

	active, err := svc.GetActiveVersion(ctx, waiver.ID)
	require.NoError(t, err)
	assert.Equal(t, v2.ID, active.ID)

	var count int64
	require.NoError(t, repos.DB.Model(&models.WaiverVersion{}).
		Where("waiver_id = ? AND is_active = ?", waiver.ID, true).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestAcceptRecordsSignatureAndYearEndExpiry(t *testing.T) {
	repos := newTestRepos(t)
	svc := newWaiverService(t, repos)
	ctx := context.Background()
	admin := createUser(t, repos, "admin", true)
	signer := createUser(t, repos, "signer", false)
	waiver := createWaiverWithVersion(t, repos, svc, admin)

	record, err := svc.Accept(ctx, waiver.ID, signer.ID, acceptRequest(), SignatureContext{
		IPAddress: "203.0.113.9",
		UserAgent: "integration-test",
	})
	require.NoError(t, err)
	assert.Equal(t, "203.0.113.9", record.IPAddress)
	assert.Equal(t, "https://docs.example.com/release-v1.pdf", record.PdfURL)
	assert.Equal(t, testTime, record.AcceptedDate)
	assert.Equal(t, time.Date(2025, time.December, 31, 23, 59, 59, 0, time.UTC), record.ExpiryDate)
}

func TestAcceptRequiresGuardianForMinors(t *testing.T) {
	repos := newTestRepos(t)
	svc := newWaiverService(t, repos)
	ctx := context.Background()
	admin := createUser(t, repos, "admin", true)
	signer := createUser(t, repos, "signer", false)
	waiver := createWaiverWithVersion(t, repos, svc, admin)

	req := acceptRequest()
	req.IsMinor = true
	_, err := svc.Accept(ctx, waiver.ID, signer.ID, req, SignatureContext{})
	assert.ErrorIs(t, err, apperrors.ErrGuardianRequired)

	req.GuardianName = "Casey Smith"
	record, err := svc.Accept(ctx, waiver.ID, signer.ID, req, SignatureContext{})
	require.NoError(t, err)
	assert.True(t, record.IsMinor)
}

func TestAcceptRefusedWithoutActiveVersion(t *testing.T) {
	repos := newTestRepos(t)
	svc := newWaiverService(t, repos)
	ctx := context.Background()
	admin := createUser(t, repos, "admin", true)
	signer := createUser(t, repos, "signer", false)

	waiver, err := svc.CreateWaiver(ctx, admin.ID, &dto.CreateWaiverRequest{
		Name:            "Volunteer Release",
		IsWaiverEnabled: true,
	})
	require.NoError(t, err)

	_, err = svc.Accept(ctx, waiver.ID, signer.ID, acceptRequest(), SignatureContext{})
	assert.ErrorIs(t, err, apperrors.ErrNoActiveWaiverVersion)
}

func TestComplianceTracksAcceptanceAndExpiry(t *testing.T) {
	repos := newTestRepos(t)
	svc := newWaiverService(t, repos)
	ctx := context.Background()
	admin := createUser(t, repos, "admin", true)
	signer := createUser(t, repos, "signer", false)
	waiver := createWaiverWithVersion(t, repos, svc, admin)

	compliance, err := svc.IsUserCompliant(ctx, waiver.ID, signer.ID, nil)
	require.NoError(t, err)
	assert.False(t, compliance.IsCompliant)

	_, err = svc.Accept(ctx, waiver.ID, signer.ID, acceptRequest(), SignatureContext{})
	require.NoError(t, err)

	compliance, err = svc.IsUserCompliant(ctx, waiver.ID, signer.ID, nil)
	require.NoError(t, err)
	assert.True(t, compliance.IsCompliant)
	require.NotNil(t, compliance.ExpiryDate)

	// Move the clock past year end; the acceptance lapses.
	svc.(*waiverServiceImpl).now = func() time.Time {
		return time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC)
	}
	compliance, err = svc.IsUserCompliant(ctx, waiver.ID, signer.ID, nil)
	require.NoError(t, err)
	assert.False(t, compliance.IsCompliant)
}

func TestComplianceResetsWhenNewVersionPublished(t *testing.T) {
	repos := newTestRepos(t)
	svc := newWaiverService(t, repos)
	ctx := context.Background()
	admin := createUser(t, repos, "admin", true)
	signer := createUser(t, repos, "signer", false)
	waiver := createWaiverWithVersion(t, repos, svc, admin)

	_, err := svc.Accept(ctx, waiver.ID, signer.ID, acceptRequest(), SignatureContext{})
	require.NoError(t, err)

	_, err = svc.PublishVersion(ctx, waiver.ID, admin.ID, &dto.PublishVersionRequest{
		DocumentURL:   "https://docs.example.com/release-v2.pdf",
		EffectiveDate: testTime.Add(24 * time.Hour),
	})
	require.NoError(t, err)

	compliance, err := svc.IsUserCompliant(ctx, waiver.ID, signer.ID, nil)
	require.NoError(t, err)
	assert.False(t, compliance.IsCompliant)
}

func TestDisabledWaiverIsAlwaysCompliant(t *testing.T) {
	repos := newTestRepos(t)
	svc := newWaiverService(t, repos)
	ctx := context.Background()
	admin := createUser(t, repos, "admin", true)
	signer := createUser(t, repos, "signer", false)

	waiver, err := svc.CreateWaiver(ctx, admin.ID, &dto.CreateWaiverRequest{Name: "Dormant Release"})
	require.NoError(t, err)

	compliance, err := svc.IsUserCompliant(ctx, waiver.ID, signer.ID, nil)
	require.NoError(t, err)
	assert.True(t, compliance.IsCompliant)

	// A disabled waiver cannot be signed.
	_, err = svc.Accept(ctx, waiver.ID, signer.ID, acceptRequest(), SignatureContext{})
	assert.ErrorIs(t, err, apperrors.ErrWaiverNotFound)
}

func TestRequireWaiverForPartnerIsPartnerAdminGated(t *testing.T) {
	repos := newTestRepos(t)
	svc := newWaiverService(t, repos)
	partners := newPartnerService(t, repos)
	ctx := context.Background()
	admin := createUser(t, repos, "admin", true)
	volunteer := createUser(t, repos, "casey", false)

	partner := createPartner(t, partners, admin.ID)
	waiver := createWaiverWithVersion(t, repos, svc, admin)

	_, err := svc.RequireWaiverForPartner(ctx, partner.ID, waiver.ID, volunteer.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	link, err := svc.RequireWaiverForPartner(ctx, partner.ID, waiver.ID, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, waiver.ID, link.WaiverID)

	// Remapping the same pair is a no-op, not a conflict.
	_, err = svc.RequireWaiverForPartner(ctx, partner.ID, waiver.ID, admin.ID)
	require.NoError(t, err)

	links, err := svc.GetPartnerWaivers(ctx, partner.ID)
	require.NoError(t, err)
	assert.Len(t, links, 1)
}

func TestPartnerScopedComplianceChecksMappedWaivers(t *testing.T) {
	repos := newTestRepos(t)
	svc := newWaiverService(t, repos)
	partners := newPartnerService(t, repos)
	ctx := context.Background()
	admin := createUser(t, repos, "admin", true)
	signer := createUser(t, repos, "signer", false)

	global := createWaiverWithVersion(t, repos, svc, admin)
	_, err := svc.Accept(ctx, global.ID, signer.ID, acceptRequest(), SignatureContext{})
	require.NoError(t, err)

	partner := createPartner(t, partners, admin.ID)
	partnerWaiver, err := svc.CreateWaiver(ctx, admin.ID, &dto.CreateWaiverRequest{
		Name:            "Park District Release",
		IsWaiverEnabled: true,
	})
	require.NoError(t, err)
	_, err = svc.PublishVersion(ctx, partnerWaiver.ID, admin.ID, &dto.PublishVersionRequest{
		DocumentURL:   "https://docs.example.com/park-district-v1.pdf",
		EffectiveDate: testTime,
	})
	require.NoError(t, err)
	_, err = svc.RequireWaiverForPartner(ctx, partner.ID, partnerWaiver.ID, admin.ID)
	require.NoError(t, err)

	// Globally compliant, but the partner's mapped waiver is still unsigned.
	compliance, err := svc.IsUserCompliant(ctx, global.ID, signer.ID, nil)
	require.NoError(t, err)
	assert.True(t, compliance.IsCompliant)

	compliance, err = svc.IsUserCompliant(ctx, global.ID, signer.ID, &partner.ID)
	require.NoError(t, err)
	assert.False(t, compliance.IsCompliant)
	assert.Equal(t, partnerWaiver.ID, compliance.WaiverID)

	_, err = svc.Accept(ctx, partnerWaiver.ID, signer.ID, acceptRequest(), SignatureContext{})
	require.NoError(t, err)

	compliance, err = svc.IsUserCompliant(ctx, global.ID, signer.ID, &partner.ID)
	require.NoError(t, err)
	assert.True(t, compliance.IsCompliant)
}

func TestPartnerWithoutMappedWaiversFallsBackToGlobal(t *testing.T) {
	repos := newTestRepos(t)
	svc := newWaiverService(t, repos)
	partners := newPartnerService(t, repos)
	ctx := context.Background()
	admin := createUser(t, repos, "admin", true)
	signer := createUser(t, repos, "signer", false)

	global := createWaiverWithVersion(t, repos, svc, admin)
	partner := createPartner(t, partners, admin.ID)

	compliance, err := svc.IsUserCompliant(ctx, global.ID, signer.ID, &partner.ID)
	require.NoError(t, err)
	assert.False(t, compliance.IsCompliant)
	assert.Equal(t, global.ID, compliance.WaiverID)

	_, err = svc.Accept(ctx, global.ID, signer.ID, acceptRequest(), SignatureContext{})
	require.NoError(t, err)

	compliance, err = svc.IsUserCompliant(ctx, global.ID, signer.ID, &partner.ID)
	require.NoError(t, err)
	assert.True(t, compliance.IsCompliant)
}
