package consultant

import (
	"symposium-agent-backend/model"
	"symposium-agent-backend/service/llm"
)

// Factory 依据顾问配置解析策略变体
// 每轮对话重新解析，解析本身无I/O（模板行由调用方读出后传入）
type Factory struct {
	llm          llm.Chatter
	configLoader ConfigLoader
}

func NewFactory(chatter llm.Chatter, loader ConfigLoader) *Factory {
	return &Factory{
		llm:          chatter,
		configLoader: loader,
	}
}

// ResolveType 类型标签的解析规则：模板标签优先，其次顾问自身标签，
// 两者皆缺省或标签未知时回落到纯对话类型（宽松默认，不报错）
func ResolveType(consultant *model.Consultant, template *model.Template) model.ConsultantType {
	tag := ""
	if template != nil && template.APIType != "" {
		tag = template.APIType
	} else if consultant.ConsultantType != "" {
		tag = string(consultant.ConsultantType)
	}

	switch model.ConsultantType(tag) {
	case model.ConsultantTypeTabular:
		return model.ConsultantTypeTabular
	case model.ConsultantTypeWebSearch:
		return model.ConsultantTypeWebSearch
	default:
		return model.ConsultantTypePureLLM
	}
}

func (f *Factory) New(consultant *model.Consultant, template *model.Template) Strategy {
	switch ResolveType(consultant, template) {
	case model.ConsultantTypeTabular:
		return NewTabularStrategy(consultant, f.llm, f.configLoader)
	case model.ConsultantTypeWebSearch:
		return NewWebSearchStrategy(consultant, f.llm, f.configLoader)
	default:
		return NewPlainStrategy(consultant, f.llm)
	}
}
