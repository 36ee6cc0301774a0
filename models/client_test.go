package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestClientPhoneUniquePerAccountNotGlobally(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Client{}))

	first := uuid.New()
	second := uuid.New()

	require.NoError(t, db.Create(&Client{AccountID: first, Name: "Ana", Phone: "+5511987654321"}).Error)

	// Two businesses can both know the same person
	assert.NoError(t, db.Create(&Client{AccountID: second, Name: "Ana", Phone: "+5511987654321"}).Error)

	// Within one account the number stays unique
	assert.Error(t, db.Create(&Client{AccountID: first, Name: "Ana again", Phone: "+5511987654321"}).Error)
}
