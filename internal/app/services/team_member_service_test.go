package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trashmob-eco/trashmob-api/internal/app/models"
	"github.com/trashmob-eco/trashmob-api/internal/app/models/dto"
	"github.com/trashmob-eco/trashmob-api/internal/app/repositories"
	"github.com/trashmob-eco/trashmob-api/internal/pkg/apperrors"
)

func newTeamMemberService(t *testing.T, repos *repositories.Repositories) TeamMemberService {
	t.Helper()
	svc := NewTeamMemberService(repos.Teams, repos.TeamMembers, repos.Users, repos.UnitOfWork, newTestAuthz(repos), testLogger())
	svc.(*teamMemberServiceImpl).now = fixedNow
	return svc
}

func createTeamWithLead(t *testing.T, repos *repositories.Repositories, lead *models.User) *models.Team {
	t.Helper()
	team, err := newTeamService(t, repos).CreateTeam(context.Background(), lead.ID, createTeamRequest("Green Lake Crew"))
	require.NoError(t, err)
	return team
}

func TestAddMemberRequiresLead(t *testing.T) {
	repos := newTestRepos(t)
	svc := newTeamMemberService(t, repos)
	ctx := context.Background()
	lead := createUser(t, repos, "lead", false)
	volunteer := createUser(t, repos, "volunteer", false)
	stranger := createUser(t, repos, "stranger", false)
	team := createTeamWithLead(t, repos, lead)

	assert.ErrorIs(t, svc.AddMember(ctx, team.ID, volunteer.ID, stranger.ID), apperrors.ErrPermissionDenied)

	require.NoError(t, svc.AddMember(ctx, team.ID, volunteer.ID, lead.ID))
	members, err := svc.GetMembers(ctx, team.ID)
	require.NoError(t, err)
	assert.Len(t, members, 2)
}

func TestPromoteNonMemberFails(t *testing.T) {
	repos := newTestRepos(t)
	svc := newTeamMemberService(t, repos)
	ctx := context.Background()
	lead := createUser(t, repos, "lead", false)
	outsider := createUser(t, repos, "outsider", false)
	team := createTeamWithLead(t, repos, lead)

	err := svc.PromoteToLead(ctx, team.ID, outsider.ID, lead.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotTeamMember)
}

func TestPromoteAndDemoteLead(t *testing.T) {
	repos := newTestRepos(t)
	svc := newTeamMemberService(t, repos)
	ctx := context.Background()
	lead := createUser(t, repos, "lead", false)
	volunteer := createUser(t, repos, "volunteer", false)
	team := createTeamWithLead(t, repos, lead)

	require.NoError(t, svc.AddMember(ctx, team.ID, volunteer.ID, lead.ID))
	require.NoError(t, svc.PromoteToLead(ctx, team.ID, volunteer.ID, lead.ID))

	member, err := repos.TeamMembers.GetByTeamAndUser(ctx, team.ID, volunteer.ID)
	require.NoError(t, err)
	assert.True(t, member.IsLead)

	require.NoError(t, svc.DemoteFromLead(ctx, team.ID, lead.ID, volunteer.ID))
	member, err = repos.TeamMembers.GetByTeamAndUser(ctx, team.ID, lead.ID)
	require.NoError(t, err)
	assert.False(t, member.IsLead)
}

func TestDemoteLastLeadRefused(t *testing.T) {
	repos := newTestRepos(t)
	svc := newTeamMemberService(t, repos)
	ctx := context.Background()
	lead := createUser(t, repos, "lead", false)
	team := createTeamWithLead(t, repos, lead)

	err := svc.DemoteFromLead(ctx, team.ID, lead.ID, lead.ID)
	assert.ErrorIs(t, err, apperrors.ErrLastTeamLead)
}

func TestRemoveLastLeadRefused(t *testing.T) {
	repos := newTestRepos(t)
	svc := newTeamMemberService(t, repos)
	ctx := context.Background()
	lead := createUser(t, repos, "lead", false)
	team := createTeamWithLead(t, repos, lead)

	err := svc.RemoveMember(ctx, team.ID, lead.ID, lead.ID)
	assert.ErrorIs(t, err, apperrors.ErrLastTeamLead)
}

func TestMemberMayRemoveThemselves(t *testing.T) {
	repos := newTestRepos(t)
	svc := newTeamMemberService(t, repos)
	ctx := context.Background()
	lead := createUser(t, repos, "lead", false)
	volunteer := createUser(t, repos, "volunteer", false)
	team := createTeamWithLead(t, repos, lead)

	require.NoError(t, svc.AddMember(ctx, team.ID, volunteer.ID, lead.ID))
	require.NoError(t, svc.RemoveMember(ctx, team.ID, volunteer.ID, volunteer.ID))

	_, err := repos.TeamMembers.GetByTeamAndUser(ctx, team.ID, volunteer.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotTeamMember)
}

func TestRequestToJoinRejectsExistingMember(t *testing.T) {
	repos := newTestRepos(t)
	svc := newTeamMemberService(t, repos)
	ctx := context.Background()
	lead := createUser(t, repos, "lead", false)
	team := createTeamWithLead(t, repos, lead)

	_, err := svc.RequestToJoin(ctx, team.ID, lead.ID, &dto.JoinRequestCreate{})
	assert.ErrorIs(t, err, apperrors.ErrAlreadyTeamMember)
}

func TestApproveJoinRequestCreatesMembership(t *testing.T) {
	repos := newTestRepos(t)
	svc := newTeamMemberService(t, repos)
	ctx := context.Background()
	lead := createUser(t, repos, "lead", false)
	applicant := createUser(t, repos, "applicant", false)
	team := createTeamWithLead(t, repos, lead)

	request, err := svc.RequestToJoin(ctx, team.ID, applicant.ID, &dto.JoinRequestCreate{Message: "I live nearby"})
	require.NoError(t, err)
	assert.Equal(t, models.JoinRequestPending, request.Status)

	require.NoError(t, svc.ResolveJoinRequest(ctx, request.ID, lead.ID, true))

	member, err := repos.TeamMembers.GetByTeamAndUser(ctx, team.ID, applicant.ID)
	require.NoError(t, err)
	assert.False(t, member.IsLead)

	// A resolved request cannot be flipped.
	err = svc.ResolveJoinRequest(ctx, request.ID, lead.ID, false)
	assert.ErrorIs(t, err, apperrors.ErrJoinRequestResolved)
}

func TestRejectJoinRequestLeavesNoMembership(t *testing.T) {
	repos := newTestRepos(t)
	svc := newTeamMemberService(t, repos)
	ctx := context.Background()
	lead := createUser(t, repos, "lead", false)
	applicant := createUser(t, repos, "applicant", false)
	team := createTeamWithLead(t, repos, lead)

	request, err := svc.RequestToJoin(ctx, team.ID, applicant.ID, &dto.JoinRequestCreate{})
	require.NoError(t, err)
	require.NoError(t, svc.ResolveJoinRequest(ctx, request.ID, lead.ID, false))

	_, err = repos.TeamMembers.GetByTeamAndUser(ctx, team.ID, applicant.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotTeamMember)

	pending, err := svc.GetPendingJoinRequests(ctx, team.ID, lead.ID)
	require.NoError(t, err)
	assert.Empty(t, pending)
}
