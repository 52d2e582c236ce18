package database

import (
	"errors"
	"testing"

	"fun123/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type uniqueThing struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex"`
}

func TestDSN(t *testing.T) {
	cfg := &config.Config{
		DBHost:     "db",
		DBPort:     "5433",
		DBUser:     "u",
		DBPassword: "p",
		DBName:     "fun",
		DBSSLMode:  "disable",
	}
	assert.Equal(t, "host=db user=u password=p dbname=fun port=5433 sslmode=disable", DSN(cfg))
}

func TestNewSQLiteDB_TranslatesDuplicateKey(t *testing.T) {
	db, err := NewSQLiteDB("file:database_dup?mode=memory")
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&uniqueThing{}))

	require.NoError(t, db.Create(&uniqueThing{Name: "a"}).Error)
	err = db.Create(&uniqueThing{Name: "a"}).Error
	require.Error(t, err)
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey))
}
