package consultant

import (
	"encoding/json"
	"fmt"
	"symposium-agent-backend/dao"
	"symposium-agent-backend/model"
	"symposium-agent-backend/utils"
)

// ConfigLoader 按顾问ID加载外部数据源配置，无配置时返回 (nil, nil)
type ConfigLoader interface {
	LoadAPIConfig(consultantID uint) (*model.APIConfigPayload, error)
}

// DAOConfigLoader 从数据库加载并解码APIConfig
type DAOConfigLoader struct{}

var _ ConfigLoader = DAOConfigLoader{}

func (DAOConfigLoader) LoadAPIConfig(consultantID uint) (*model.APIConfigPayload, error) {
	cfg, err := dao.GetAPIConfig(consultantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load api config: %v", err)
	}
	if cfg == nil {
		return nil, nil
	}

	plain, err := utils.DecodeSecret(cfg.Payload)
	if err != nil {
		return nil, fmt.Errorf("failed to decode api config payload: %v", err)
	}

	var payload model.APIConfigPayload
	if err := json.Unmarshal([]byte(plain), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse api config payload: %v", err)
	}
	return &payload, nil
}
