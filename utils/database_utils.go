// database_utils should be the canonical place to put shared DB utils.
// It should not include:
// 1. Any util that doesn't manipulate DB
// 2. Any util that contains business logic
package utils

import (
	"fmt"
	"os"
	"testing"

	"github.com/Luismorlan/postboard/model"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	TestDBPrefix         = "testonlydb_"
	TestDBNameCharLength = 8
)

// GetDBConnection get a connection to the database specified by env
func GetDBConnection() (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"), os.Getenv("DB_USER"), os.Getenv("DB_PASS"),
		os.Getenv("DB_NAME"), os.Getenv("DB_PORT"))
	return getDB(dsn)
}

func getDB(connectionString string) (db *gorm.DB, err error) {
	return gorm.Open(postgres.Open(connectionString), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
}

// DatabaseSetupAndMigration migrates every table the service owns. Follow is
// a plain composite-key table rather than a gorm join table so that the
// duplicate-follow constraint lives in the schema itself.
func DatabaseSetupAndMigration(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Group{},
		&model.Post{},
		&model.Comment{},
		&model.Follow{},
		&model.AuthToken{},
	)
}

// NewTestDB creates an isolated in-memory database for one test case and
// migrates the full schema into it. Every call gets its own database; the
// named shared-cache DSN keeps it alive across the pooled connections gorm
// opens. Connections are closed on test cleanup, which drops the database.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dbName := TestDBPrefix + RandomAlphabetString(TestDBNameCharLength)
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", dbName)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("fail to open test DB %s: %v", dbName, err)
	}

	// sqlite ships with foreign keys off.
	db.Exec("PRAGMA foreign_keys = ON")

	if err := DatabaseSetupAndMigration(db); err != nil {
		t.Fatalf("fail to migrate test DB %s: %v", dbName, err)
	}

	t.Cleanup(func() {
		conn, _ := db.DB()
		conn.Close()
	})

	return db
}
