package repositories

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/trashmob-eco/trashmob-api/internal/app/models"
	"github.com/trashmob-eco/trashmob-api/internal/pkg/apperrors"
)

func newTestRepos(t *testing.T) *Repositories {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.AllModels()...))
	return NewRepositories(db)
}

func addUser(t *testing.T, repos *Repositories, userName string) *models.User {
	t.Helper()
	user := &models.User{UserName: userName, Email: userName + "@example.com"}
	require.NoError(t, repos.Users.Add(context.Background(), user))
	return user
}

func TestAddMapsUniqueViolationToTypedError(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	addUser(t, repos, "jordan")

	dup := &models.User{UserName: "jordan", Email: "jordan@example.com"}
	err := repos.Users.Add(ctx, dup)
	assert.ErrorIs(t, err, apperrors.ErrResourceAlreadyExists)
}

func TestKeyedGetByIDMapsAbsenceToTypedError(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	_, err := repos.Users.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)

	_, err = repos.Teams.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrTeamNotFound)

	_, err = repos.Events.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
}

func TestDeleteByIDMissingRowIsNotSilent(t *testing.T) {
	repos := newTestRepos(t)

	err := repos.Events.DeleteByID(context.Background(), uuid.New())
	assert.Error(t, err)
}

func TestUserLookupsNormalizeCase(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	user := addUser(t, repos, "Jordan")

	byEmail, err := repos.Users.FindByEmail(ctx, "  JORDAN@example.com ")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	byName, err := repos.Users.FindByUserName(ctx, "jordan")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)

	count, err := repos.Users.CountByUserName(ctx, " JORDAN ")
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	_, err = repos.Users.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestLookupRepositoryOrdersAndFilters(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	rows := []models.EventType{
		{LookupModel: models.LookupModel{ID: 1, Name: "Park Cleanup", DisplayOrder: 2, IsActive: true}},
		{LookupModel: models.LookupModel{ID: 2, Name: "Beach Cleanup", DisplayOrder: 1, IsActive: true}},
		{LookupModel: models.LookupModel{ID: 3, Name: "Retired Type", DisplayOrder: 3, IsActive: false}},
	}
	require.NoError(t, repos.DB.Create(&rows).Error)

	all, err := repos.EventTypes.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Beach Cleanup", all[0].Name)

	active, err := repos.EventTypes.GetActive(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 2)

	_, err = repos.EventTypes.GetByID(ctx, 99)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestUnitOfWorkRollsBackOnError(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := repos.UnitOfWork.Do(ctx, func(tx *gorm.DB) error {
		user := &models.User{UserName: "ghost", Email: "ghost@example.com"}
		if err := repos.Users.WithTx(tx).Add(ctx, user); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = repos.Users.FindByUserName(ctx, "ghost")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestTeamMemberCountLeads(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	lead := addUser(t, repos, "lead")
	member := addUser(t, repos, "member")

	team := &models.Team{Name: "Green Lake Crew", IsPublic: true}
	team.StampCreate(lead.ID, time.Now())
	require.NoError(t, repos.Teams.Add(ctx, team))

	require.NoError(t, repos.TeamMembers.Add(ctx, &models.TeamMember{TeamID: team.ID, UserID: lead.ID, IsLead: true}))
	require.NoError(t, repos.TeamMembers.Add(ctx, &models.TeamMember{TeamID: team.ID, UserID: member.ID}))

	leads, err := repos.TeamMembers.CountLeads(ctx, team.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, leads)

	// The membership key is unique per team and user.
	err = repos.TeamMembers.Add(ctx, &models.TeamMember{TeamID: team.ID, UserID: member.ID})
	assert.ErrorIs(t, err, apperrors.ErrAlreadyTeamMember)
}
