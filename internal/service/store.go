package service

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jwlee-dev/blogpilot/internal/models"
)

var (
	ErrDraftNotFound = errors.New("draft not found")
	ErrInvalidStatus = errors.New("invalid draft status")
)

// DraftStore owns all record-level access to drafts, publish history and
// settings. Other services depend on it through narrow interfaces so they
// can be tested without a database.
type DraftStore struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewDraftStore(db *gorm.DB, logger *zap.Logger) *DraftStore {
	return &DraftStore{db: db, logger: logger}
}

func (s *DraftStore) CreateDraft(draft *models.Draft) error {
	if draft.Title == "" || draft.Content == "" {
		return fmt.Errorf("draft title or content is missing")
	}
	if draft.Status == "" {
		draft.Status = models.StatusPending
	}

	if err := s.db.Create(draft).Error; err != nil {
		return fmt.Errorf("failed to create draft: %w", err)
	}

	s.logger.Info("Draft created",
		zap.Uint("draft_id", draft.ID),
		zap.String("title", draft.Title),
		zap.String("category", draft.Category))
	return nil
}

func (s *DraftStore) GetDraft(id uint) (*models.Draft, error) {
	var draft models.Draft
	if err := s.db.First(&draft, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDraftNotFound
		}
		return nil, fmt.Errorf("failed to load draft %d: %w", id, err)
	}
	return &draft, nil
}

func (s *DraftStore) ListDrafts(status string) ([]models.Draft, error) {
	query := s.db.Order("created_at DESC")
	if status != "" {
		if !models.ValidStatus(status) {
			return nil, ErrInvalidStatus
		}
		query = query.Where("status = ?", status)
	}

	var drafts []models.Draft
	if err := query.Find(&drafts).Error; err != nil {
		return nil, fmt.Errorf("failed to list drafts: %w", err)
	}
	return drafts, nil
}

// DraftUpdate carries an edit payload. Nil fields keep the stored value,
// so partial payloads merge instead of overwriting.
type DraftUpdate struct {
	Title    *string
	Content  *string
	Status   *string
	Keywords *string
}

func (s *DraftStore) UpdateDraft(id uint, update DraftUpdate) (*models.Draft, error) {
	if _, err := s.GetDraft(id); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if update.Title != nil {
		fields["title"] = *update.Title
	}
	if update.Content != nil {
		fields["content"] = *update.Content
	}
	if update.Status != nil {
		if !models.ValidStatus(*update.Status) {
			return nil, ErrInvalidStatus
		}
		fields["status"] = *update.Status
	}
	if update.Keywords != nil {
		fields["keywords"] = *update.Keywords
	}

	if len(fields) > 0 {
		if err := s.db.Model(&models.Draft{}).Where("id = ?", id).Updates(fields).Error; err != nil {
			return nil, fmt.Errorf("failed to update draft %d: %w", id, err)
		}
	}

	return s.GetDraft(id)
}

// UpdateStatus flips a draft's status, bumping the updated timestamp.
func (s *DraftStore) UpdateStatus(id uint, status string) error {
	if !models.ValidStatus(status) {
		return ErrInvalidStatus
	}
	result := s.db.Model(&models.Draft{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update draft %d status: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrDraftNotFound
	}
	return nil
}

// DeleteDraft is a reviewer-initiated administrative action; the pipeline
// itself never deletes drafts.
func (s *DraftStore) DeleteDraft(id uint) error {
	result := s.db.Delete(&models.Draft{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete draft %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrDraftNotFound
	}
	return nil
}

// SeedExists reports whether a draft already references the given source
// video. Used to skip videos that were already turned into drafts.
func (s *DraftStore) SeedExists(videoID string) (bool, error) {
	var count int64
	err := s.db.Model(&models.Draft{}).Where("source_video_id = ?", videoID).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check seed %s: %w", videoID, err)
	}
	return count > 0, nil
}

func (s *DraftStore) GetSetting(key string) (string, error) {
	var setting models.Setting
	if err := s.db.First(&setting, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to load setting %s: %w", key, err)
	}
	return setting.Value, nil
}

func (s *DraftStore) SetSetting(key, value string) error {
	setting := models.Setting{Key: key, Value: value}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
	if err != nil {
		return fmt.Errorf("failed to save setting %s: %w", key, err)
	}
	return nil
}

func (s *DraftStore) AllSettings() (map[string]string, error) {
	var settings []models.Setting
	if err := s.db.Find(&settings).Error; err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}

	result := make(map[string]string, len(settings))
	for _, setting := range settings {
		result[setting.Key] = setting.Value
	}
	return result, nil
}

func (s *DraftStore) CreateHistory(record *models.PublishHistory) error {
	if err := s.db.Create(record).Error; err != nil {
		return fmt.Errorf("failed to record publish history: %w", err)
	}
	return nil
}

func (s *DraftStore) ListHistory() ([]models.PublishHistory, error) {
	var history []models.PublishHistory
	err := s.db.Preload("Draft").Order("published_at DESC").Find(&history).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list publish history: %w", err)
	}
	return history, nil
}
