package model

import "time"

// KnowledgeCard 知识卡片，可复用的上下文片段
// 建立联合索引 (user_email, created_at)，在 title 上建立全文索引
type KnowledgeCard struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `gorm:"not null;index:idx_email_created" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
	UserEmail string    `gorm:"not null;index:idx_email_created" json:"user_email"`
	Title     string    `gorm:"not null;index:idx_fulltext_title,class:FULLTEXT,option:WITH PARSER ngram" json:"title"`
	Content   string    `gorm:"type:text" json:"content"`
	Tags      []Tag     `gorm:"many2many:knowledge_card_tag" json:"tags"`

	// 卡片来源的OSS对象，手动创建的卡片为空
	SourceObject string `json:"source_object"`
}

func (KnowledgeCard) TableName() string {
	return "knowledge_card"
}

type Tag struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Name      string    `gorm:"not null;uniqueIndex" json:"name"`
}

func (Tag) TableName() string {
	return "tag"
}

// SymposiumCard 将知识卡片固定到研讨会，固定的卡片会注入对话上下文
type SymposiumCard struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	SymposiumID string    `gorm:"not null;index:idx_symposium_card,unique" json:"symposium_id"`
	CardID      uint      `gorm:"not null;index:idx_symposium_card,unique" json:"card_id"`
}

func (SymposiumCard) TableName() string {
	return "symposium_card"
}
