package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trashmob-eco/trashmob-api/internal/app/models/dto"
	"github.com/trashmob-eco/trashmob-api/internal/app/repositories"
	"github.com/trashmob-eco/trashmob-api/internal/pkg/apperrors"
)

func newTeamService(t *testing.T, repos *repositories.Repositories) TeamService {
	t.Helper()
	svc := NewTeamService(repos.Teams, repos.TeamMembers, repos.UnitOfWork, newTestAuthz(repos), testLogger())
	svc.(*teamServiceImpl).now = fixedNow
	return svc
}

func createTeamRequest(name string) *dto.CreateTeamRequest {
	return &dto.CreateTeamRequest{
		Name:      name,
		IsPublic:  true,
		City:      "Seattle",
		Region:    "WA",
		Country:   "USA",
		Latitude:  47.6,
		Longitude: -122.3,
	}
}

func TestCreateTeamMakesCreatorLead(t *testing.T) {
	repos := newTestRepos(t)
	svc := newTeamService(t, repos)
	ctx := context.Background()
	creator := createUser(t, repos, "founder", false)

	team, err := svc.CreateTeam(ctx, creator.ID, createTeamRequest("Green Lake Crew"))
	require.NoError(t, err)

	member, err := repos.TeamMembers.GetByTeamAndUser(ctx, team.ID, creator.ID)
	require.NoError(t, err)
	assert.True(t, member.IsLead)
}

func TestTeamNameCollisionIgnoresCaseAndWhitespace(t *testing.T) {
	repos := newTestRepos(t)
	svc := newTeamService(t, repos)
	ctx := context.Background()
	creator := createUser(t, repos, "founder", false)

	_, err := svc.CreateTeam(ctx, creator.ID, createTeamRequest("Green Lake Crew"))
	require.NoError(t, err)

	_, err = svc.CreateTeam(ctx, creator.ID, createTeamRequest("  green lake crew  "))
	assert.ErrorIs(t, err, apperrors.ErrTeamNameTaken)
}

func TestIsTeamNameAvailableExcludesOwnTeamOnRename(t *testing.T) {
	repos := newTestRepos(t)
	svc := newTeamService(t, repos)
	ctx := context.Background()
	creator := createUser(t, repos, "founder", false)

	team, err := svc.CreateTeam(ctx, creator.ID, createTeamRequest("Green Lake Crew"))
	require.NoError(t, err)

	// An unchanged name does not collide with itself.
	renamed, err := svc.UpdateTeam(ctx, team.ID, creator.ID, &dto.UpdateTeamRequest{
		Name:        "Green Lake Crew",
		Description: "We meet every second Saturday",
		IsPublic:    true,
	})
	require.NoError(t, err)
	assert.Equal(t, "We meet every second Saturday", renamed.Description)
}

func TestUpdateTeamRequiresLead(t *testing.T) {
	repos := newTestRepos(t)
	svc := newTeamService(t, repos)
	ctx := context.Background()
	creator := createUser(t, repos, "founder", false)
	stranger := createUser(t, repos, "stranger", false)

	team, err := svc.CreateTeam(ctx, creator.ID, createTeamRequest("Green Lake Crew"))
	require.NoError(t, err)

	_, err = svc.UpdateTeam(ctx, team.ID, stranger.ID, &dto.UpdateTeamRequest{Name: "Taken Over"})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestDeleteTeamRemovesMemberships(t *testing.T) {
	repos := newTestRepos(t)
	svc := newTeamService(t, repos)
	ctx := context.Background()
	creator := createUser(t, repos, "founder", false)

	team, err := svc.CreateTeam(ctx, creator.ID, createTeamRequest("Green Lake Crew"))
	require.NoError(t, err)
	require.NoError(t, svc.DeleteTeam(ctx, team.ID, creator.ID))

	_, err = svc.GetTeam(ctx, team.ID)
	assert.ErrorIs(t, err, apperrors.ErrTeamNotFound)

	_, err = repos.TeamMembers.GetByTeamAndUser(ctx, team.ID, creator.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotTeamMember)
}

func TestGetPublicTeamsFiltersByRadius(t *testing.T) {
	repos := newTestRepos(t)
	svc := newTeamService(t, repos)
	ctx := context.Background()
	creator := createUser(t, repos, "founder", false)

	near := createTeamRequest("Ballard Crew")
	near.Latitude, near.Longitude = 47.66, -122.38
	_, err := svc.CreateTeam(ctx, creator.ID, near)
	require.NoError(t, err)

	far := createTeamRequest("Portland Crew")
	far.Latitude, far.Longitude = 45.52, -122.68
	_, err = svc.CreateTeam(ctx, creator.ID, far)
	require.NoError(t, err)

	private := createTeamRequest("Secret Crew")
	private.IsPublic = false
	private.Latitude, private.Longitude = 47.66, -122.38
	_, err = svc.CreateTeam(ctx, creator.ID, private)
	require.NoError(t, err)

	lat, lon, radius := 47.6, -122.33, 25.0
	teams, err := svc.GetPublicTeams(ctx, &dto.PublicTeamsFilter{
		Latitude:    &lat,
		Longitude:   &lon,
		RadiusMiles: &radius,
	})
	require.NoError(t, err)
	require.Len(t, teams, 1)
	assert.Equal(t, "Ballard Crew", teams[0].Name)
}

func TestGetPublicTeamsRejectsNonPositiveRadius(t *testing.T) {
	repos := newTestRepos(t)
	svc := newTeamService(t, repos)
	ctx := context.Background()

	lat, lon, radius := 47.6, -122.33, 0.0
	_, err := svc.GetPublicTeams(ctx, &dto.PublicTeamsFilter{
		Latitude:    &lat,
		Longitude:   &lon,
		RadiusMiles: &radius,
	})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestGetPublicTeamsWithoutFilterListsAllPublic(t *testing.T) {
	repos := newTestRepos(t)
	svc := newTeamService(t, repos)
	ctx := context.Background()
	creator := createUser(t, repos, "founder", false)

	_, err := svc.CreateTeam(ctx, creator.ID, createTeamRequest("Ballard Crew"))
	require.NoError(t, err)

	private := createTeamRequest("Secret Crew")
	private.IsPublic = false
	_, err = svc.CreateTeam(ctx, creator.ID, private)
	require.NoError(t, err)

	teams, err := svc.GetPublicTeams(ctx, nil)
	require.NoError(t, err)
	require.Len(t, teams, 1)
	assert.Equal(t, "Ballard Crew", teams[0].Name)
}
