package dao

import "symposium-agent-backend/model"

func CreateAPICallLogs(logs []*model.APICallLog) error {
	if len(logs) == 0 {
		return nil
	}
	return DB.CreateInBatches(logs, 100).Error
}

func GetAPICallLogsByConsultantID(consultantID uint, limit int) ([]model.APICallLog, error) {
	var logs []model.APICallLog
	if err := DB.Where("consultant_id = ?", consultantID).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
