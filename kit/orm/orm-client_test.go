package orm

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noteEntity struct {
	Name  string `gorm:"primaryKey"`
	Value string
}

func TestSQLiteDB(t *testing.T) {
	db, err := CreateDB(UseSQLite(filepath.Join(t.TempDir(), "test.db")))
	require.Nil(t, err)
	defer db.Close()

	require.Nil(t, db.AutoMigrate(&noteEntity{}))

	result := db.WithContext(context.Background()).Clauses(OnConflict{DoNothing: true}).Create(&noteEntity{Name: "a", Value: "first"})
	assert.Nil(t, result.Error)
	assert.Equal(t, int64(1), result.RowsAffected)

	result = db.WithContext(context.Background()).Clauses(OnConflict{DoNothing: true}).Create(&noteEntity{Name: "a", Value: "second"})
	assert.Nil(t, result.Error)
	assert.Equal(t, int64(0), result.RowsAffected)

	var note noteEntity
	assert.Nil(t, db.WithContext(context.Background()).Where("name = ?", "a").First(&note).Error)
	assert.Equal(t, "first", note.Value)

	assert.ErrorIs(t, db.WithContext(context.Background()).Where("name = ?", "missing").First(&note).Error, ErrRecordNotFound)

	assert.Nil(t, db.Ping(context.Background()))
}

func TestNoopDB(t *testing.T) {
	db, err := CreateDB(UseNoop)
	assert.Nil(t, err)
	assert.Nil(t, db.Ping(context.Background()))
	assert.Nil(t, db.Close())
}
