package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/heytrackid/heytrack-umkm-sub013/internal/dto"
	"github.com/heytrackid/heytrack-umkm-sub013/internal/model"
	"github.com/heytrackid/heytrack-umkm-sub013/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var settingKeys = map[string]bool{
	model.SettingBusiness:    true,
	model.SettingPreferences: true,
	model.SettingProfile:     true,
}

type SettingsService interface {
	Get(ctx context.Context, userID uuid.UUID, key string) (*dto.SettingResponse, error)
	Update(ctx context.Context, userID uuid.UUID, key string, req dto.UpdateSettingRequest) (*dto.SettingResponse, error)
}

type settingsService struct {
	repo repository.SettingRepository
}

func NewSettingsService(repo repository.SettingRepository) SettingsService {
	return &settingsService{repo: repo}
}

// Get returns the stored document, or an empty object for a key that has
// never been written.
func (s *settingsService) Get(ctx context.Context, userID uuid.UUID, key string) (*dto.SettingResponse, error) {
	if !settingKeys[key] {
		return nil, ErrNotFound
	}
	setting, err := s.repo.Get(ctx, userID, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dto.SettingResponse{Key: key, Value: json.RawMessage("{}")}, nil
		}
		return nil, err
	}
	return &dto.SettingResponse{Key: key, Value: json.RawMessage(setting.Value)}, nil
}

func (s *settingsService) Update(ctx context.Context, userID uuid.UUID, key string, req dto.UpdateSettingRequest) (*dto.SettingResponse, error) {
	if !settingKeys[key] {
		return nil, ErrNotFound
	}
	if !json.Valid(req.Value) {
		return nil, fmt.Errorf("settings value must be valid JSON")
	}
	if err := s.repo.Upsert(ctx, userID, key, string(req.Value)); err != nil {
		return nil, err
	}
	return &dto.SettingResponse{Key: key, Value: req.Value}, nil
}
