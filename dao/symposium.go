package dao

import (
	"symposium-agent-backend/model"

	"gorm.io/gorm"
)

func CreateSymposium(symposium *model.Symposium) error {
	return DB.Create(symposium).Error
}

func GetSymposiumsByEmail(email string) ([]model.Symposium, error) {
	var symposiums []model.Symposium
	if err := DB.Where("user_email = ?", email).
		Order("created_at DESC").
		Find(&symposiums).Error; err != nil {
		return nil, err
	}
	return symposiums, nil
}

func GetSymposium(email, symposiumID string) (*model.Symposium, error) {
	var symposium model.Symposium
	if err := DB.Where("user_email = ? AND symposium_id = ?", email, symposiumID).
		First(&symposium).Error; err != nil {
		return nil, err
	}
	return &symposium, nil
}

func UpdateSymposium(email, symposiumID, name, description string) error {
	return DB.Model(&model.Symposium{}).
		Where("user_email = ? AND symposium_id = ?", email, symposiumID).
		Updates(map[string]any{
			"name":        name,
			"description": description,
		}).Error
}

// DeleteSymposium 删除研讨会并级联删除顾问、消息、可见性标记和卡片固定记录
func DeleteSymposium(email, symposiumID string) error {
	return DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_email = ? AND symposium_id = ?", email, symposiumID).
			Delete(&model.Symposium{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		var consultantIDs []uint
		if err := tx.Model(&model.Consultant{}).
			Where("symposium_id = ?", symposiumID).
			Pluck("id", &consultantIDs).Error; err != nil {
			return err
		}

		if len(consultantIDs) > 0 {
			if err := tx.Where("consultant_id IN ?", consultantIDs).
				Delete(&model.APIConfig{}).Error; err != nil {
				return err
			}
			if err := tx.Where("consultant_id IN ?", consultantIDs).
				Delete(&model.MessageVisibility{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("symposium_id = ?", symposiumID).
			Delete(&model.Consultant{}).Error; err != nil {
			return err
		}

		if err := tx.Where("symposium_id = ?", symposiumID).
			Delete(&model.Message{}).Error; err != nil {
			return err
		}

		return tx.Where("symposium_id = ?", symposiumID).
			Delete(&model.SymposiumCard{}).Error
	})
}
