// Package farmers provides the farmer registry backing personalization
package farmers

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/errors"
)

// Farmer is one registered user of the assistant
type Farmer struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	Name      string    `gorm:"size:128;not null" json:"name"`
	Village   string    `gorm:"size:128" json:"village,omitempty"`
	District  string    `gorm:"size:128" json:"district,omitempty"`
	State     string    `gorm:"size:64" json:"state,omitempty"`
	Phone     string    `gorm:"size:32" json:"phone,omitempty"`
	Crops     string    `gorm:"size:256" json:"crops,omitempty"`
	LandAcres float64   `json:"land_acres,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName sets the table name for Farmer
func (Farmer) TableName() string {
	return "farmers"
}

// CropList splits the comma-separated crops field
func (f *Farmer) CropList() []string {
	if strings.TrimSpace(f.Crops) == "" {
		return nil
	}
	parts := strings.Split(f.Crops, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// Registry provides data access for farmer records
type Registry struct {
	db *gorm.DB
}

// NewRegistry opens (or creates) the registry database at dbPath
func NewRegistry(dbPath string) (*Registry, error) {
	if dbPath == "" {
		return nil, errors.NewConfigInvalidError("farmer registry database path is required")
	}
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&Farmer{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Registry{db: db}, nil
}

// Create registers a new farmer. A blank ID gets a generated one.
func (r *Registry) Create(farmer *Farmer) error {
	if farmer == nil {
		return errors.NewInvalidInputError("farmer cannot be nil")
	}
	if strings.TrimSpace(farmer.Name) == "" {
		return errors.NewMissingFieldError("name")
	}
	if farmer.ID == "" {
		farmer.ID = uuid.New().String()
	}

	if err := r.db.Create(farmer).Error; err != nil {
		return fmt.Errorf("failed to create farmer: %w", err)
	}
	return nil
}

// Get returns the farmer with the given id
func (r *Registry) Get(id string) (*Farmer, error) {
	var farmer Farmer
	result := r.db.Where("id = ?", id).First(&farmer)
	if result.Error == gorm.ErrRecordNotFound {
		return nil, errors.NewNotFoundError("farmer " + id)
	}
	if result.Error != nil {
		return nil, fmt.Errorf("failed to load farmer: %w", result.Error)
	}
	return &farmer, nil
}

// Exists reports whether a farmer with the given id is registered
func (r *Registry) Exists(id string) (bool, error) {
	var count int64
	if err := r.db.Model(&Farmer{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check farmer: %w", err)
	}
	return count > 0, nil
}

// Update saves changes to an existing farmer
func (r *Registry) Update(farmer *Farmer) error {
	if farmer == nil || farmer.ID == "" {
		return errors.NewMissingFieldError("id")
	}

	result := r.db.Model(&Farmer{}).Where("id = ?", farmer.ID).Updates(farmer)
	if result.Error != nil {
		return fmt.Errorf("failed to update farmer: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("farmer " + farmer.ID)
	}
	return nil
}

// List returns all registered farmers ordered by creation time
func (r *Registry) List() ([]*Farmer, error) {
	var all []*Farmer
	if err := r.db.Order("created_at").Find(&all).Error; err != nil {
		return nil, fmt.Errorf("failed to list farmers: %w", err)
	}
	return all, nil
}

// Delete removes a farmer record
func (r *Registry) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&Farmer{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete farmer: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("farmer " + id)
	}
	return nil
}

// Close closes the underlying database connection
func (r *Registry) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
