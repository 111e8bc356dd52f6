package repositories

import (
	"errors"

	"jigz_backend/internal/models"

	"gorm.io/gorm"
)

var ErrEndorsementNotFound = errors.New("endorsement not found")

type EndorsementRepository interface {
	Create(tx *gorm.DB, endorsement *models.SkillEndorsement) error
	Find(db *gorm.DB, endorserID, userID, skill string) (*models.SkillEndorsement, error)
	ListByUser(db *gorm.DB, userID string) ([]models.SkillEndorsement, error)
	CountBySkill(db *gorm.DB, userID string) (map[string]int64, error)
}

type EndorsementRepositoryImpl struct{}

func NewEndorsementRepository() EndorsementRepository {
	return &EndorsementRepositoryImpl{}
}

func (r *EndorsementRepositoryImpl) Create(tx *gorm.DB, endorsement *models.SkillEndorsement) error {
	return tx.Create(endorsement).Error
}

func (r *EndorsementRepositoryImpl) Find(db *gorm.DB, endorserID, userID, skill string) (*models.SkillEndorsement, error) {
	var endorsement models.SkillEndorsement
	err := db.Where("endorser_id = ? AND user_id = ? AND skill = ?", endorserID, userID, skill).
		First(&endorsement).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEndorsementNotFound
		}
		return nil, err
	}
	return &endorsement, nil
}

func (r *EndorsementRepositoryImpl) ListByUser(db *gorm.DB, userID string) ([]models.SkillEndorsement, error) {
	var endorsements []models.SkillEndorsement
	err := db.Where("user_id = ?", userID).Order("created_at DESC").Find(&endorsements).Error
	return endorsements, err
}

func (r *EndorsementRepositoryImpl) CountBySkill(db *gorm.DB, userID string) (map[string]int64, error) {
	var rows []struct {
		Skill string
		Count int64
	}
	err := db.Model(&models.SkillEndorsement{}).
		Select("skill, COUNT(*) AS count").
		Where("user_id = ?", userID).
		Group("skill").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Skill] = row.Count
	}
	return counts, nil
}
