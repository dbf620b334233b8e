package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTableColumns(t *testing.T) {
	cfg := Config{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "inspector.db"),
	}

	db, err := Connect(cfg)
	require.NoError(t, err)

	type runRecord struct {
		ID       uint `gorm:"primaryKey"`
		Username string
		Total    int
	}
	require.NoError(t, db.AutoMigrate(&runRecord{}))

	columns, err := GetTableColumns(db, "run_records")
	require.NoError(t, err)

	names := make([]string, 0, len(columns))
	for _, col := range columns {
		names = append(names, col.Field)
	}
	assert.Contains(t, names, "id")
	assert.Contains(t, names, "username")
	assert.Contains(t, names, "total")
}

func TestGetTableColumns_MissingTable(t *testing.T) {
	cfg := Config{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "inspector.db"),
	}

	db, err := Connect(cfg)
	require.NoError(t, err)

	columns, err := GetTableColumns(db, "does_not_exist")
	require.NoError(t, err)
	assert.Empty(t, columns)
}
