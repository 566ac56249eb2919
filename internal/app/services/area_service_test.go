package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trashmob-eco/trashmob-api/internal/app/models"
	"github.com/trashmob-eco/trashmob-api/internal/app/models/dto"
	"github.com/trashmob-eco/trashmob-api/internal/app/repositories"
	"github.com/trashmob-eco/trashmob-api/internal/pkg/apperrors"
)

func newAreaService(t *testing.T, repos *repositories.Repositories) AreaService {
	t.Helper()
	svc := NewAreaService(repos.Areas, repos.UnitOfWork, newTestAuthz(repos), testLogger())
	svc.(*areaServiceImpl).now = fixedNow
	return svc
}

func stageAreaRequest(name string, lat, lon float64) dto.StageAreaRequest {
	return dto.StageAreaRequest{
		Name:            name,
		Geometry:        json.RawMessage(`{"type":"Polygon","coordinates":[]}`),
		CenterLatitude:  lat,
		CenterLongitude: lon,
		City:            "Seattle",
		Region:          "WA",
		Country:         "USA",
	}
}

func TestStageAreasBumpsGeneratedCounter(t *testing.T) {
	repos := newTestRepos(t)
	svc := newAreaService(t, repos)
	ctx := context.Background()
	admin := createUser(t, repos, "admin", true)

	batch, err := svc.CreateBatch(ctx, admin.ID, &dto.CreateBatchRequest{Source: "osm-import", City: "Seattle"})
	require.NoError(t, err)
	assert.Zero(t, batch.GeneratedCount)

	staged, err := svc.StageAreas(ctx, batch.ID, admin.ID, []dto.StageAreaRequest{
		stageAreaRequest("I-5 Onramp Verge", 47.61, -122.32),
		stageAreaRequest("Dexter Ave Planters", 47.63, -122.34),
	})
	require.NoError(t, err)
	require.Len(t, staged, 2)
	assert.Equal(t, models.ReviewPending, staged[0].ReviewStatus)

	stored, err := repos.Areas.GetBatch(ctx, batch.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.GeneratedCount)
}

func TestPromoteStagedAreaCreatesAdoptableArea(t *testing.T) {
	repos := newTestRepos(t)
	svc := newAreaService(t, repos)
	ctx := context.Background()
	admin := createUser(t, repos, "admin", true)

	batch, err := svc.CreateBatch(ctx, admin.ID, &dto.CreateBatchRequest{Source: "osm-import"})
	require.NoError(t, err)
	staged, err := svc.StageAreas(ctx, batch.ID, admin.ID, []dto.StageAreaRequest{
		stageAreaRequest("I-5 Onramp Verge", 47.61, -122.32),
	})
	require.NoError(t, err)

	area, err := svc.PromoteStagedArea(ctx, staged[0].ID, admin.ID)
	require.NoError(t, err)
	assert.True(t, area.IsActive)
	assert.Equal(t, "I-5 Onramp Verge", area.Name)

	resolved, err := repos.Areas.GetStaged(ctx, staged[0].ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReviewApproved, resolved.ReviewStatus)
	require.NotNil(t, resolved.PromotedAreaID)
	assert.Equal(t, area.ID, *resolved.PromotedAreaID)

	stored, err := repos.Areas.GetBatch(ctx, batch.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.PromotedCount)

	// Review is final.
	_, err = svc.PromoteStagedArea(ctx, staged[0].ID, admin.ID)
	assert.ErrorIs(t, err, apperrors.ErrStagedAreaResolved)
}

func TestRejectStagedAreaIsFinal(t *testing.T) {
	repos := newTestRepos(t)
	svc := newAreaService(t, repos)
	ctx := context.Background()
	admin := createUser(t, repos, "admin", true)

	batch, err := svc.CreateBatch(ctx, admin.ID, &dto.CreateBatchRequest{Source: "osm-import"})
	require.NoError(t, err)
	staged, err := svc.StageAreas(ctx, batch.ID, admin.ID, []dto.StageAreaRequest{
		stageAreaRequest("Parking Strip", 47.61, -122.32),
	})
	require.NoError(t, err)

	require.NoError(t, svc.RejectStagedArea(ctx, staged[0].ID, admin.ID))

	_, err = svc.PromoteStagedArea(ctx, staged[0].ID, admin.ID)
	assert.ErrorIs(t, err, apperrors.ErrStagedAreaResolved)

	pending, err := svc.GetPendingStagedAreas(ctx, admin.ID)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestAreaAdminGatesAreEnforced(t *testing.T) {
	repos := newTestRepos(t)
	svc := newAreaService(t, repos)
	ctx := context.Background()
	volunteer := createUser(t, repos, "volunteer", false)

	_, err := svc.CreateBatch(ctx, volunteer.ID, &dto.CreateBatchRequest{Source: "osm-import"})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = svc.GetPendingStagedAreas(ctx, volunteer.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestFindAreasNearCutsByDistance(t *testing.T) {
	repos := newTestRepos(t)
	svc := newAreaService(t, repos)
	ctx := context.Background()

	createArea(t, repos, "Ballard Verge", true)
	far := createArea(t, repos, "Tacoma Lot", true)
	far.CenterLatitude, far.CenterLongitude = 47.25, -122.44
	require.NoError(t, repos.Areas.Update(ctx, far))

	inactive := createArea(t, repos, "Closed Lot", false)
	_ = inactive

	areas, err := svc.FindAreasNear(ctx, 47.6, -122.33, 10)
	require.NoError(t, err)
	require.Len(t, areas, 1)
	assert.Equal(t, "Ballard Verge", areas[0].Name)

	_, err = svc.FindAreasNear(ctx, 47.6, -122.33, -1)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestDeactivateAreaHidesItFromActiveListing(t *testing.T) {
	repos := newTestRepos(t)
	svc := newAreaService(t, repos)
	ctx := context.Background()
	admin := createUser(t, repos, "admin", true)
	area := createArea(t, repos, "Pine Street Median", true)

	require.NoError(t, svc.DeactivateArea(ctx, area.ID, admin.ID))

	active, err := svc.GetActiveAreas(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)
}
