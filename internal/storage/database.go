package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/rastyraw/CypherCore-Audits/internal/model"
)

const (
	// DriverNameMemory identifies the in-process store implementation.
	DriverNameMemory = "memory"
	// DriverNameSQLite identifies the SQLite driver implementation.
	DriverNameSQLite = "sqlite"
	// DriverNamePostgres identifies the PostgreSQL driver implementation.
	DriverNamePostgres = "postgres"

	errorMessageMissingDriverName     = "storage: missing store driver name"
	errorMessageUnsupportedDriver     = "storage: unsupported store driver"
	errorMessageMissingDataSourceName = "storage: missing data source name"
	errorMessageOpenDatabase          = "storage: open database"
	errorMessageOpenSQLiteDatabase    = "storage: open sqlite database"
	errorMessageOpenPostgresDatabase  = "storage: open postgres database"

	orderNewestFirst = "created_at DESC, id"
	orderOldestFirst = "created_at ASC, id"
)

var (
	// ErrMissingDriverName indicates the store driver configuration was omitted.
	ErrMissingDriverName = errors.New(errorMessageMissingDriverName)
	// ErrUnsupportedDriver indicates the provided store driver is not supported.
	ErrUnsupportedDriver = errors.New(errorMessageUnsupportedDriver)
	// ErrMissingDataSourceName indicates the data source name configuration was omitted.
	ErrMissingDataSourceName = errors.New(errorMessageMissingDataSourceName)
)

type databaseOpener func(Config) (*gorm.DB, error)

var databaseOpeners = map[string]databaseOpener{
	DriverNameSQLite:   openSQLiteDatabase,
	DriverNamePostgres: openPostgresDatabase,
}

// Config captures store connection configuration.
type Config struct {
	DriverName     string
	DataSourceName string
}

// OpenDatabase opens a database connection using the configured driver and
// data source name.
func OpenDatabase(configuration Config) (*gorm.DB, error) {
	trimmedDriverName := strings.TrimSpace(configuration.DriverName)
	if trimmedDriverName == "" {
		return nil, ErrMissingDriverName
	}

	opener, driverSupported := databaseOpeners[trimmedDriverName]
	if !driverSupported {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDriver, trimmedDriverName)
	}

	database, openErr := opener(Config{
		DriverName:     trimmedDriverName,
		DataSourceName: strings.TrimSpace(configuration.DataSourceName),
	})
	if openErr != nil {
		return nil, fmt.Errorf("%s: %w", errorMessageOpenDatabase, openErr)
	}

	return database, nil
}

func openSQLiteDatabase(configuration Config) (*gorm.DB, error) {
	if configuration.DataSourceName == "" {
		return nil, ErrMissingDataSourceName
	}

	database, openErr := gorm.Open(sqlite.Open(configuration.DataSourceName), &gorm.Config{})
	if openErr != nil {
		return nil, fmt.Errorf("%s: %w", errorMessageOpenSQLiteDatabase, openErr)
	}

	return database, nil
}

func openPostgresDatabase(configuration Config) (*gorm.DB, error) {
	if configuration.DataSourceName == "" {
		return nil, ErrMissingDataSourceName
	}

	database, openErr := gorm.Open(postgres.Open(configuration.DataSourceName), &gorm.Config{})
	if openErr != nil {
		return nil, fmt.Errorf("%s: %w", errorMessageOpenPostgresDatabase, openErr)
	}

	return database, nil
}

// AutoMigrate runs database migrations for the three record tables.
func AutoMigrate(database *gorm.DB) error {
	return database.AutoMigrate(&model.ContactMessage{}, &model.Booking{}, &model.ChatMessage{})
}

// DatabaseStore implements Store on a relational database, reproducing the
// memory store's ordering contracts with created_at ordering. Identifier
// ties on equal timestamps keep a stable order.
type DatabaseStore struct {
	database *gorm.DB
}

// NewDatabaseStore constructs a DatabaseStore over an open connection.
func NewDatabaseStore(database *gorm.DB) *DatabaseStore {
	return &DatabaseStore{database: database}
}

// CreateContactMessage inserts a contact message record.
func (store *DatabaseStore) CreateContactMessage(ctx context.Context, record model.ContactMessage) error {
	return store.database.WithContext(ctx).Create(&record).Error
}

// ListContactMessages returns all contact messages, newest first.
func (store *DatabaseStore) ListContactMessages(ctx context.Context) ([]model.ContactMessage, error) {
	records := make([]model.ContactMessage, 0)
	queryErr := store.database.WithContext(ctx).Order(orderNewestFirst).Find(&records).Error
	return records, queryErr
}

// CreateBooking inserts a consultation-booking record.
func (store *DatabaseStore) CreateBooking(ctx context.Context, record model.Booking) error {
	return store.database.WithContext(ctx).Create(&record).Error
}

// ListBookings returns all bookings, newest first.
func (store *DatabaseStore) ListBookings(ctx context.Context) ([]model.Booking, error) {
	records := make([]model.Booking, 0)
	queryErr := store.database.WithContext(ctx).Order(orderNewestFirst).Find(&records).Error
	return records, queryErr
}

// CreateChatMessage inserts a chat message record.
func (store *DatabaseStore) CreateChatMessage(ctx context.Context, record model.ChatMessage) error {
	return store.database.WithContext(ctx).Create(&record).Error
}

// ListChatMessages returns the visitor's conversation thread, oldest first.
func (store *DatabaseStore) ListChatMessages(ctx context.Context, visitorID string) ([]model.ChatMessage, error) {
	records := make([]model.ChatMessage, 0)
	queryErr := store.database.WithContext(ctx).
		Where("visitor_id = ?", visitorID).
		Order(orderOldestFirst).
		Find(&records).Error
	return records, queryErr
}
