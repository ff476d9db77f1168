package dao

import (
	"errors"
	"symposium-agent-backend/model"

	"gorm.io/gorm"
)

func CreateConsultant(consultant *model.Consultant) error {
	return DB.Create(consultant).Error
}

func GetConsultantsBySymposiumID(symposiumID string) ([]model.Consultant, error) {
	var consultants []model.Consultant
	if err := DB.Where("symposium_id = ?", symposiumID).
		Order("created_at ASC").
		Find(&consultants).Error; err != nil {
		return nil, err
	}
	return consultants, nil
}

// GetOwnedConsultant 返回属于该用户研讨会的顾问，他人研讨会的顾问视同不存在
func GetOwnedConsultant(email string, consultantID uint) (*model.Consultant, error) {
	var consultant model.Consultant
	if err := DB.Joins("JOIN symposium ON symposium.symposium_id = consultant.symposium_id").
		Where("consultant.id = ? AND symposium.user_email = ?", consultantID, email).
		First(&consultant).Error; err != nil {
		return nil, err
	}
	return &consultant, nil
}

func GetConsultantByID(consultantID uint) (*model.Consultant, error) {
	var consultant model.Consultant
	if err := DB.Where("id = ?", consultantID).
		First(&consultant).Error; err != nil {
		return nil, err
	}
	return &consultant, nil
}

// UpdateConsultant 更新顾问的展示信息，类型标签创建后不可变更
func UpdateConsultant(consultantID uint, name, modelID, systemPrompt string) error {
	return DB.Model(&model.Consultant{}).
		Where("id = ?", consultantID).
		Updates(map[string]any{
			"name":          name,
			"model":         modelID,
			"system_prompt": systemPrompt,
		}).Error
}

func DeleteConsultant(consultantID uint) error {
	return DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", consultantID).
			Delete(&model.Consultant{}).Error; err != nil {
			return err
		}
		if err := tx.Where("consultant_id = ?", consultantID).
			Delete(&model.APIConfig{}).Error; err != nil {
			return err
		}
		return tx.Where("consultant_id = ?", consultantID).
			Delete(&model.MessageVisibility{}).Error
	})
}

func SaveAPIConfig(consultantID uint, payload string) error {
	var existing model.APIConfig
	err := DB.Where("consultant_id = ?", consultantID).First(&existing).Error
	if err == nil {
		return DB.Model(&existing).Update("payload", payload).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return DB.Create(&model.APIConfig{
		ConsultantID: consultantID,
		Payload:      payload,
	}).Error
}

// GetAPIConfig 无配置时返回 (nil, nil)
func GetAPIConfig(consultantID uint) (*model.APIConfig, error) {
	var cfg model.APIConfig
	if err := DB.Where("consultant_id = ?", consultantID).First(&cfg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cfg, nil
}
