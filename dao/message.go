package dao

import (
	"symposium-agent-backend/model"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func CreateMessage(message *model.Message) error {
	return DB.Create(message).Error
}

func GetMessagesBySymposiumID(symposiumID string) ([]model.Message, error) {
	var messages []model.Message
	if err := DB.Where("symposium_id = ?", symposiumID).
		Order("created_at ASC").
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

// GetVisibleMessages 返回对指定顾问可见的消息，时间正序，最多limit条（取最近的）
func GetVisibleMessages(symposiumID string, consultantID uint, limit int) ([]model.Message, error) {
	var hiddenIDs []uint
	if err := DB.Model(&model.MessageVisibility{}).
		Where("consultant_id = ? AND hidden = ?", consultantID, true).
		Pluck("message_id", &hiddenIDs).Error; err != nil {
		return nil, err
	}

	query := DB.Where("symposium_id = ?", symposiumID)
	if len(hiddenIDs) > 0 {
		query = query.Where("id NOT IN ?", hiddenIDs)
	}

	var messages []model.Message
	if err := query.Order("created_at DESC").
		Limit(limit).
		Find(&messages).Error; err != nil {
		return nil, err
	}

	// 倒序查询取最近的limit条，返回前恢复时间正序
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

// GetOwnedMessage 返回属于该用户研讨会的消息，他人研讨会的消息视同不存在
func GetOwnedMessage(email string, messageID uint) (*model.Message, error) {
	var message model.Message
	if err := DB.Joins("JOIN symposium ON symposium.symposium_id = chat_message.symposium_id").
		Where("chat_message.id = ? AND symposium.user_email = ?", messageID, email).
		First(&message).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

func UpdateMessageContent(messageID uint, content string) error {
	now := time.Now()
	return DB.Model(&model.Message{}).
		Where("id = ?", messageID).
		Updates(map[string]any{
			"content":   content,
			"edited_at": &now,
		}).Error
}

func DeleteMessage(messageID uint) error {
	return DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", messageID).
			Delete(&model.Message{}).Error; err != nil {
			return err
		}
		return tx.Where("message_id = ?", messageID).
			Delete(&model.MessageVisibility{}).Error
	})
}

// SetMessageVisibility 设置消息对某位顾问的可见性，同一 (消息, 顾问) 记录幂等覆盖
func SetMessageVisibility(messageID, consultantID uint, hidden bool) error {
	visibility := model.MessageVisibility{
		MessageID:    messageID,
		ConsultantID: consultantID,
		Hidden:       hidden,
	}
	return DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "message_id"}, {Name: "consultant_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"hidden"}),
	}).Create(&visibility).Error
}
