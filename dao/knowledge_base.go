package dao

import (
	"errors"
	"symposium-agent-backend/model"

	"gorm.io/gorm"
)

func CreateKnowledgeCard(card *model.KnowledgeCard) error {
	return DB.Create(card).Error
}

func GetKnowledgeCardsByEmail(email string) ([]model.KnowledgeCard, error) {
	var cards []model.KnowledgeCard
	if err := DB.Preload("Tags").
		Where("user_email = ?", email).
		Order("created_at DESC").
		Find(&cards).Error; err != nil {
		return nil, err
	}
	return cards, nil
}

func GetKnowledgeCardByID(cardID uint) (*model.KnowledgeCard, error) {
	var card model.KnowledgeCard
	if err := DB.Preload("Tags").
		Where("id = ?", cardID).
		First(&card).Error; err != nil {
		return nil, err
	}
	return &card, nil
}

func GetKnowledgeCardsByIDs(cardIDs []uint) ([]model.KnowledgeCard, error) {
	if len(cardIDs) == 0 {
		return nil, nil
	}
	var cards []model.KnowledgeCard
	if err := DB.Preload("Tags").
		Where("id IN ?", cardIDs).
		Find(&cards).Error; err != nil {
		return nil, err
	}
	return cards, nil
}

func UpdateKnowledgeCard(cardID uint, title, content string) error {
	return DB.Model(&model.KnowledgeCard{}).
		Where("id = ?", cardID).
		Updates(map[string]any{
			"title":   title,
			"content": content,
		}).Error
}

func DeleteKnowledgeCard(email string, cardID uint) error {
	return DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_email = ? AND id = ?", email, cardID).
			Delete(&model.KnowledgeCard{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("card_id = ?", cardID).
			Delete(&model.SymposiumCard{}).Error
	})
}

// SearchKnowledgeCardsByTitle 基于MySQL全文索引（ngram分词）的标题检索
func SearchKnowledgeCardsByTitle(email, keyword string) ([]model.KnowledgeCard, error) {
	var cards []model.KnowledgeCard
	if err := DB.Preload("Tags").
		Where("user_email = ? AND MATCH(title) AGAINST(? IN NATURAL LANGUAGE MODE)", email, keyword).
		Find(&cards).Error; err != nil {
		return nil, err
	}
	return cards, nil
}

func SetCardTags(card *model.KnowledgeCard, tagNames []string) error {
	var tags []model.Tag
	for _, name := range tagNames {
		var tag model.Tag
		err := DB.Where("name = ?", name).First(&tag).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			tag = model.Tag{Name: name}
			if err := DB.Create(&tag).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
		tags = append(tags, tag)
	}
	return DB.Model(card).Association("Tags").Replace(tags)
}

func PinCardToSymposium(symposiumID string, cardID uint) error {
	var existing model.SymposiumCard
	err := DB.Where("symposium_id = ? AND card_id = ?", symposiumID, cardID).
		First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return DB.Create(&model.SymposiumCard{
		SymposiumID: symposiumID,
		CardID:      cardID,
	}).Error
}

func UnpinCardFromSymposium(symposiumID string, cardID uint) error {
	return DB.Where("symposium_id = ? AND card_id = ?", symposiumID, cardID).
		Delete(&model.SymposiumCard{}).Error
}

func GetPinnedCards(symposiumID string) ([]model.KnowledgeCard, error) {
	var cardIDs []uint
	if err := DB.Model(&model.SymposiumCard{}).
		Where("symposium_id = ?", symposiumID).
		Pluck("card_id", &cardIDs).Error; err != nil {
		return nil, err
	}
	return GetKnowledgeCardsByIDs(cardIDs)
}
