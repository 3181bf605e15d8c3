package repo

import (
	"fmt"
	"log"
	"sync/atomic"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

var sqliteSeq int64

// InitSqliteTest opens a fresh in-memory SQLite database for unit tests. Each
// call gets its own database; the shared-cache DSN keeps every pooled
// connection on the same one.
func InitSqliteTest() *gorm.DB {
	dsn := fmt.Sprintf("file:test%d?mode=memory&cache=shared", atomic.AddInt64(&sqliteSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("init sqlite fail", err)
	}
	AutoMigrateAll(db)
	Db = db
	return db
}
