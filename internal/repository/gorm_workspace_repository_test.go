package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/smart-todo/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type GormWorkspaceRepositoryTestSuite struct {
	suite.Suite
	db   *gorm.DB
	repo WorkspaceRepository
	ctx  context.Context
}

func (suite *GormWorkspaceRepositoryTestSuite) SetupTest() {
	var err error

	dsn := filepath.Join(suite.T().TempDir(), "workspace.db")
	suite.db, err = gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	suite.Require().NoError(err)
	suite.Require().NoError(MigrateWorkspaceTables(suite.db))

	suite.repo = NewGormWorkspaceRepository(suite.db)
	suite.ctx = context.Background()
}

func (suite *GormWorkspaceRepositoryTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *GormWorkspaceRepositoryTestSuite) TestLoad_UnknownUser() {
	ws, err := suite.repo.Load(suite.ctx, "nobody")
	suite.Require().NoError(err)
	suite.NotNil(ws.Tasks)
	suite.Empty(ws.Tasks)
	suite.Nil(ws.Notes)
}

func (suite *GormWorkspaceRepositoryTestSuite) TestSaveLoad_RoundTrip() {
	ws := sampleWorkspace()
	suite.Require().NoError(suite.repo.Save(suite.ctx, "alice", ws))

	loaded, err := suite.repo.Load(suite.ctx, "alice")
	suite.Require().NoError(err)
	suite.Equal(ws.Tasks, loaded.Tasks)
	suite.Equal(ws.Notes, loaded.Notes)
}

func (suite *GormWorkspaceRepositoryTestSuite) TestSave_ReplacesPreviousRows() {
	suite.Require().NoError(suite.repo.Save(suite.ctx, "alice", sampleWorkspace()))

	next := &models.Workspace{
		Tasks: []models.Task{{ID: "t3", Text: "Only one", Priority: models.PriorityMedium, PriorityValue: 1}},
		Notes: []models.Note{},
	}
	suite.Require().NoError(suite.repo.Save(suite.ctx, "alice", next))

	loaded, err := suite.repo.Load(suite.ctx, "alice")
	suite.Require().NoError(err)
	suite.Require().Len(loaded.Tasks, 1)
	suite.Equal("t3", loaded.Tasks[0].ID)
	suite.NotNil(loaded.Notes)
	suite.Empty(loaded.Notes)
}

func (suite *GormWorkspaceRepositoryTestSuite) TestSave_KeepsUsersApart() {
	suite.Require().NoError(suite.repo.Save(suite.ctx, "alice", sampleWorkspace()))
	suite.Require().NoError(suite.repo.Save(suite.ctx, "bob", &models.Workspace{
		Tasks: []models.Task{{ID: "b1", Text: "bob task", Priority: models.PriorityLow, PriorityValue: 2}},
	}))

	alice, err := suite.repo.Load(suite.ctx, "alice")
	suite.Require().NoError(err)
	suite.Len(alice.Tasks, 2)

	bob, err := suite.repo.Load(suite.ctx, "bob")
	suite.Require().NoError(err)
	suite.Len(bob.Tasks, 1)
}

func TestGormWorkspaceRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(GormWorkspaceRepositoryTestSuite))
}

func newMockRepository(t *testing.T) (WorkspaceRepository, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	return NewGormWorkspaceRepository(db), mock
}

func TestGormWorkspaceRepository_SaveRollsBackOnError(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `workspace_tasks`").WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := repo.Save(context.Background(), "alice", sampleWorkspace())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormWorkspaceRepository_LoadPropagatesError(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery("SELECT \\* FROM `workspaces`").WillReturnError(errors.New("connection reset"))

	_, err := repo.Load(context.Background(), "alice")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
	assert.NoError(t, mock.ExpectationsWereMet())
}
