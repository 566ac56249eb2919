package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/trashmob-eco/trashmob-api/internal/app/auth"
	"github.com/trashmob-eco/trashmob-api/internal/app/models"
	"github.com/trashmob-eco/trashmob-api/internal/app/repositories"
)

// testTime is the fixed clock injected into services under test.
var testTime = time.Date(2025, time.June, 14, 9, 30, 0, 0, time.UTC)

func fixedNow() time.Time { return testTime }

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.AllModels()...))
	return db
}

func newTestRepos(t *testing.T) *repositories.Repositories {
	t.Helper()
	return repositories.NewRepositories(newTestDB(t))
}

func newTestAuthz(repos *repositories.Repositories) *auth.AuthorizationService {
	return auth.NewAuthorizationService(repos.Users, repos.Events, repos.TeamMembers, repos.Partners)
}

func createUser(t *testing.T, repos *repositories.Repositories, userName string, isSiteAdmin bool) *models.User {
	t.Helper()
	user := &models.User{
		UserName:    userName,
		Email:       userName + "@example.com",
		IsSiteAdmin: isSiteAdmin,
		MemberSince: testTime,
	}
	require.NoError(t, repos.Users.Add(context.Background(), user))
	return user
}

// fakeEmailService records outbound mail instead of sending it.
type fakeEmailService struct {
	welcomes    []string
	invites     []string
	newsletters []string
	fail        bool
}

func (f *fakeEmailService) SendWelcomeEmail(toEmail, toName string) error {
	if f.fail {
		return errors.New("smtp unavailable")
	}
	f.welcomes = append(f.welcomes, toEmail)
	return nil
}

func (f *fakeEmailService) SendInviteEmail(toEmail, inviterName, customMessage string) error {
	if f.fail {
		return errors.New("smtp unavailable")
	}
	f.invites = append(f.invites, toEmail)
	return nil
}

func (f *fakeEmailService) SendNewsletterEmail(toEmail, title, htmlBody string) error {
	if f.fail {
		return errors.New("smtp unavailable")
	}
	f.newsletters = append(f.newsletters, toEmail)
	return nil
}

// fakeFileStorage hands out deterministic URLs and records deletions.
type fakeFileStorage struct {
	saved   int
	deleted []string
	fail    bool
}

func (f *fakeFileStorage) SaveFile(fileHeader *multipart.FileHeader, subPath string) (string, error) {
	if f.fail {
		return "", errors.New("disk full")
	}
	f.saved++
	return fmt.Sprintf("/uploads/%s/blob-%d.jpg", subPath, f.saved), nil
}

func (f *fakeFileStorage) DeleteFile(fileURL string) error {
	f.deleted = append(f.deleted, fileURL)
	return nil
}

func testLogger() zerolog.Logger { return zerolog.Nop() }
