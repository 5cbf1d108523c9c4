package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ridereg/internal/model"
)

// Settings rows live at a fixed primary key so reads and writes always target
// the same singleton record.
const settingsRowID = 1

// SettingsRepository defines access to the event and route settings singletons.
type SettingsRepository interface {
	GetEvent(ctx context.Context) (*model.EventSettings, error)
	SaveEvent(ctx context.Context, s *model.EventSettings) error
	GetLocation(ctx context.Context) (*model.LocationSettings, error)
	SaveLocation(ctx context.Context, s *model.LocationSettings) error
}

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new settings repository.
func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) GetEvent(ctx context.Context) (*model.EventSettings, error) {
	var s model.EventSettings
	if err := r.db.WithContext(ctx).Where("id = ?", settingsRowID).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *settingsRepository) SaveEvent(ctx context.Context, s *model.EventSettings) error {
	s.ID = settingsRowID
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(s).Error
}

func (r *settingsRepository) GetLocation(ctx context.Context) (*model.LocationSettings, error) {
	var s model.LocationSettings
	if err := r.db.WithContext(ctx).Where("id = ?", settingsRowID).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *settingsRepository) SaveLocation(ctx context.Context, s *model.LocationSettings) error {
	s.ID = settingsRowID
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(s).Error
}
