package repository

import (
	"context"
	"time"

	"github.com/heytrackid/heytrack-umkm-sub013/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingRepository interface {
	Get(ctx context.Context, userID uuid.UUID, key string) (*model.Setting, error)
	Upsert(ctx context.Context, userID uuid.UUID, key, value string) error
}

type settingRepo struct{ db *gorm.DB }

func NewSettingRepository(db *gorm.DB) SettingRepository { return &settingRepo{db: db} }

func (r *settingRepo) Get(ctx context.Context, userID uuid.UUID, key string) (*model.Setting, error) {
	var s model.Setting
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND key = ?", userID, key).
		First(&s).Error
	return &s, err
}

func (r *settingRepo) Upsert(ctx context.Context, userID uuid.UUID, key, value string) error {
	s := model.Setting{UserID: userID, Key: key, Value: value}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"value":      value,
			"updated_at": time.Now(),
		}),
	}).Create(&s).Error
}
