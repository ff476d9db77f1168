package dao

import (
	"encoding/json"
	"errors"
	"symposium-agent-backend/model"

	"gorm.io/gorm"
)

// 顾问模板种子数据，只读
var templateSeeds = []model.Template{
	{
		Name:                 "通用顾问",
		APIType:              string(model.ConsultantTypePureLLM),
		DefaultSystemPrompt:  "你是一位知识渊博、表达严谨的顾问，请直接回答用户的问题。",
		RequiredConfigFields: json.RawMessage(`[]`),
		Icon:                 "chat",
	},
	{
		Name:                 "数据分析顾问",
		APIType:              string(model.ConsultantTypeTabular),
		DefaultSystemPrompt:  "你是一位数据分析顾问，基于外部表格中的真实记录回答问题，引用数据时保持准确。",
		RequiredConfigFields: json.RawMessage(`["base_id", "api_key", "table_name"]`),
		Icon:                 "table",
	},
	{
		Name:                 "联网搜索顾问",
		APIType:              string(model.ConsultantTypeWebSearch),
		DefaultSystemPrompt:  "你是一位调研顾问，结合实时搜索结果回答问题，并注明信息来源。",
		RequiredConfigFields: json.RawMessage(`["search_api_key"]`),
		Icon:                 "globe",
	},
}

func seedTemplates() error {
	for _, seed := range templateSeeds {
		var existing model.Template
		err := DB.Where("name = ?", seed.Name).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := DB.Create(&seed).Error; err != nil {
			return err
		}
	}
	return nil
}

func GetTemplates() ([]model.Template, error) {
	var templates []model.Template
	if err := DB.Order("id ASC").Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

func GetTemplateByID(id uint) (*model.Template, error) {
	var template model.Template
	if err := DB.Where("id = ?", id).First(&template).Error; err != nil {
		return nil, err
	}
	return &template, nil
}
