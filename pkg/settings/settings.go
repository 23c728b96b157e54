package settings

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Setting is one keyed configuration row. The gateway owns no circulation
// data; this small table is the only thing it persists.
type Setting struct {
	ID        string `gorm:"type:uuid;primaryKey"`
	Scope     string `gorm:"size:80;not null;uniqueIndex:idx_settings_scope_key"`
	Key       string `gorm:"size:80;not null;uniqueIndex:idx_settings_scope_key"`
	Value     string `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Get(scope, key string) (*Setting, error) {
	var setting Setting
	err := s.db.Where("scope = ? AND key = ?", scope, key).First(&setting).Error
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

func (s *Store) Put(scope, key, value string) (*Setting, error) {
	setting := Setting{
		ID:    uuid.NewString(),
		Scope: scope,
		Key:   key,
		Value: value,
	}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "scope"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

func (s *Store) Delete(scope, key string) error {
	return s.db.Where("scope = ? AND key = ?", scope, key).Delete(&Setting{}).Error
}

// BoolValue reads a setting as a boolean, returning def when the row is
// absent or carries anything other than "true"/"false".
func (s *Store) BoolValue(scope, key string, def bool) bool {
	setting, err := s.Get(scope, key)
	if err != nil {
		return def
	}
	switch setting.Value {
	case "true":
		return true
	case "false":
		return false
	default:
		return def
	}
}
