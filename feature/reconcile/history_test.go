package reconcile

import (
	"context"
	"path/filepath"
	"testing"

	"storygrabber/core/database"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func sqliteHistoryRepo(t *testing.T) *HistoryRepo {
	db, err := database.Connect(database.Config{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "history.db"),
	})
	require.NoError(t, err)

	repo, err := NewHistoryRepo(db)
	require.NoError(t, err)
	return repo
}

func TestHistoryRepo_RecordAndRecent(t *testing.T) {
	repo := sqliteHistoryRepo(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Record(ctx, &RunRecord{
			Username: "alice",
			Trigger:  "api",
			Total:    10 + i,
			Matched:  5,
		}))
	}
	require.NoError(t, repo.Record(ctx, &RunRecord{Username: "bob", Trigger: "scheduler", Total: 1}))

	records, err := repo.Recent(ctx, "alice", 2)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Newest first.
	assert.Equal(t, 12, records[0].Total)
	assert.Equal(t, 11, records[1].Total)
	for _, rec := range records {
		assert.Equal(t, "alice", rec.Username)
	}
}

func TestHistoryRepo_RecentDefaultLimit(t *testing.T) {
	repo := sqliteHistoryRepo(t)

	records, err := repo.Recent(context.Background(), "nobody", 0)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestHistoryRepo_SchemaMatchesModel(t *testing.T) {
	repo := sqliteHistoryRepo(t)

	columns, err := database.GetTableColumns(repo.db, "run_records")
	require.NoError(t, err)

	names := make(map[string]bool, len(columns))
	for _, col := range columns {
		names[col.Field] = true
	}
	for _, want := range []string{"id", "username", "trigger", "total", "matched", "failures", "duration_ms", "created_at"} {
		assert.True(t, names[want], "missing column %s", want)
	}
}

func TestHistoryRepo_RecordSQL(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := &HistoryRepo{db: db}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `run_records`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := repo.Record(context.Background(), &RunRecord{
		Username: "alice",
		Trigger:  "cli",
		Total:    3,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHistoryRepo_RecentSQL(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := &HistoryRepo{db: db}

	rows := sqlmock.NewRows([]string{"id", "username", "trigger", "total", "matched", "failures", "duration_ms"}).
		AddRow(2, "alice", "api", 10, 4, 0, 120).
		AddRow(1, "alice", "scheduler", 10, 3, 1, 340)

	mock.ExpectQuery("SELECT \\* FROM `run_records` WHERE username = \\?").
		WillReturnRows(rows)

	records, err := repo.Recent(context.Background(), "alice", 5)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, uint(2), records[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
