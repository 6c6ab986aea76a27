package database

import (
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// APIKey represents the api_keys table
type APIKey struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Key        string     `gorm:"unique;not null" json:"key"`
	Name       string     `gorm:"not null" json:"name"`
	KeyPreview string     `json:"key_preview"`
	RateLimit  int        `gorm:"default:10000" json:"rate_limit"`
	CreatedAt  time.Time  `json:"created_at"`
	LastUsed   *time.Time `json:"last_used"`
}

// APIUsage represents the api_usage table, one row per key per day.
type APIUsage struct {
	ID               uint   `gorm:"primaryKey" json:"id"`
	KeyID            uint   `gorm:"uniqueIndex:idx_key_date;not null" json:"key_id"`
	Date             string `gorm:"uniqueIndex:idx_key_date;not null" json:"date"`
	RequestCount     int    `gorm:"default:0" json:"request_count"`
	TotalEmployees   int    `gorm:"default:0" json:"total_employees"`
	TotalAssignments int    `gorm:"default:0" json:"total_assignments"`
}

// MasterUser represents the master_users table
type MasterUser struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"unique;not null" json:"username"`
	PasswordHash string    `gorm:"not null" json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// ScheduleRecord persists a generated week schedule keyed by shop and
// generation id. Payload holds the full JSON response so callers can replay
// what was handed out.
type ScheduleRecord struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ShopID       string    `gorm:"index;not null" json:"shop_id"`
	GenerationID string    `gorm:"uniqueIndex;not null" json:"generation_id"`
	GeneratedAt  time.Time `json:"generated_at"`
	FullyCovered bool      `json:"fully_covered"`
	Payload      string    `gorm:"type:text" json:"payload"`
}

// PunchEvent is one QR clock-in or clock-out.
type PunchEvent struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ShopID     string    `gorm:"index;not null" json:"shop_id"`
	EmployeeID string    `gorm:"index;not null" json:"employee_id"`
	Kind       string    `gorm:"not null" json:"kind"` // "in" or "out"
	At         time.Time `json:"at"`
}

// InitDB initializes the database connection and migrates the schema
func InitDB() *gorm.DB {
	var db *gorm.DB
	var err error

	dsn := os.Getenv("DATABASE_URL")
	if dsn != "" {
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	} else {
		dbPath := os.Getenv("DATA_PATH")
		if dbPath == "" {
			dbPath = "shopshift.db"
		}
		db, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	}

	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	db.AutoMigrate(&APIKey{}, &APIUsage{}, &MasterUser{}, &ScheduleRecord{}, &PunchEvent{})

	return db
}
