package controller

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"symposium-agent-backend/dao"
	"symposium-agent-backend/model"
	"symposium-agent-backend/request"
	"symposium-agent-backend/response"
	"symposium-agent-backend/utils"

	"github.com/gin-gonic/gin"
)

func CreateConsultant(c *gin.Context) {
	var req request.CreateConsultantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error(ErrParseRequest.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusBadRequest, response.Response{
			Msg: ErrParseRequest.Error(),
		})
		return
	}

	email := c.GetString("email")
	if _, err := dao.GetSymposium(email, req.SymposiumID); err != nil {
		slog.Error(ErrCreateConsultant.Error(), "symposium_id", req.SymposiumID, "err", err)
		c.AbortWithStatusJSON(http.StatusNotFound, response.Response{
			Msg: ErrCreateConsultant.Error(),
		})
		return
	}

	consultantType := model.ConsultantType(req.ConsultantType)
	systemPrompt := req.SystemPrompt

	// 选择模板时，类型标签以模板为准，系统提示词缺省取模板默认值
	if req.TemplateID != nil {
		template, err := dao.GetTemplateByID(*req.TemplateID)
		if err != nil {
			slog.Error(ErrCreateConsultant.Error(), "template_id", *req.TemplateID, "err", err)
			c.AbortWithStatusJSON(http.StatusNotFound, response.Response{
				Msg: ErrCreateConsultant.Error(),
			})
			return
		}
		consultantType = model.ConsultantType(template.APIType)
		if systemPrompt == "" {
			systemPrompt = template.DefaultSystemPrompt
		}
	}

	if consultantType == "" {
		consultantType = model.ConsultantTypePureLLM
	}

	consultant := model.Consultant{
		SymposiumID:    req.SymposiumID,
		Name:           req.Name,
		Model:          req.Model,
		SystemPrompt:   systemPrompt,
		ConsultantType: consultantType,
		TemplateID:     req.TemplateID,
	}
	if err := dao.CreateConsultant(&consultant); err != nil {
		slog.Error(ErrCreateConsultant.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrCreateConsultant.Error(),
		})
		return
	}

	if len(req.APIConfig) > 0 {
		if err := saveAPIConfig(consultant.ID, req.APIConfig); err != nil {
			slog.Error(ErrCreateConsultant.Error(), "consultant_id", consultant.ID, "err", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
				Msg: ErrCreateConsultant.Error(),
			})
			return
		}
	}

	c.JSON(http.StatusCreated, response.Response{
		Data: response.ConsultantResponse{
			ID:             consultant.ID,
			Name:           consultant.Name,
			Model:          consultant.Model,
			SystemPrompt:   consultant.SystemPrompt,
			ConsultantType: string(consultant.ConsultantType),
			TemplateID:     consultant.TemplateID,
			HasAPIConfig:   len(req.APIConfig) > 0,
		},
	})
}

// saveAPIConfig 编码并存储顾问的外部数据源配置
func saveAPIConfig(consultantID uint, fields map[string]string) error {
	payload := model.APIConfigPayload{
		BaseID:       fields["base_id"],
		APIKey:       fields["api_key"],
		TableName:    fields["table_name"],
		SearchAPIKey: fields["search_api_key"],
	}
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return dao.SaveAPIConfig(consultantID, utils.EncodeSecret(string(payloadJSON)))
}

func GetConsultants(c *gin.Context) {
	email := c.GetString("email")
	symposiumID := c.Param("id")
	if _, err := dao.GetSymposium(email, symposiumID); err != nil {
		slog.Error(ErrGetConsultants.Error(), "symposium_id", symposiumID, "err", err)
		c.AbortWithStatusJSON(http.StatusNotFound, response.Response{
			Msg: ErrGetConsultants.Error(),
		})
		return
	}

	consultants, err := dao.GetConsultantsBySymposiumID(symposiumID)
	if err != nil {
		slog.Error(ErrGetConsultants.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrGetConsultants.Error(),
		})
		return
	}

	var resp response.GetConsultantsResponse
	for _, consultant := range consultants {
		apiConfig, err := dao.GetAPIConfig(consultant.ID)
		if err != nil {
			slog.Error(ErrGetConsultants.Error(), "consultant_id", consultant.ID, "err", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
				Msg: ErrGetConsultants.Error(),
			})
			return
		}

		resp.Consultants = append(resp.Consultants, response.ConsultantResponse{
			ID:             consultant.ID,
			Name:           consultant.Name,
			Model:          consultant.Model,
			SystemPrompt:   consultant.SystemPrompt,
			ConsultantType: string(consultant.ConsultantType),
			TemplateID:     consultant.TemplateID,
			HasAPIConfig:   apiConfig != nil,
		})
	}

	c.JSON(http.StatusOK, response.Response{
		Data: resp,
	})
}

func UpdateConsultant(c *gin.Context) {
	var req request.UpdateConsultantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error(ErrParseRequest.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusBadRequest, response.Response{
			Msg: ErrParseRequest.Error(),
		})
		return
	}

	consultantID, ok := parseIDParam(c)
	if !ok {
		return
	}
	if _, ok := ownedConsultant(c, consultantID, ErrUpdateConsultant); !ok {
		return
	}

	if err := dao.UpdateConsultant(consultantID, req.Name, req.Model, req.SystemPrompt); err != nil {
		slog.Error(ErrUpdateConsultant.Error(), "consultant_id", consultantID, "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrUpdateConsultant.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response.Response{})
}

func DeleteConsultant(c *gin.Context) {
	consultantID, ok := parseIDParam(c)
	if !ok {
		return
	}
	if _, ok := ownedConsultant(c, consultantID, ErrDeleteConsultant); !ok {
		return
	}

	if err := dao.DeleteConsultant(consultantID); err != nil {
		slog.Error(ErrDeleteConsultant.Error(), "consultant_id", consultantID, "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrDeleteConsultant.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response.Response{})
}

func GetTemplates(c *gin.Context) {
	templates, err := dao.GetTemplates()
	if err != nil {
		slog.Error(ErrGetTemplates.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrGetTemplates.Error(),
		})
		return
	}

	var resp response.GetTemplatesResponse
	for _, t := range templates {
		resp.Templates = append(resp.Templates, response.TemplateResponse{
			ID:                   t.ID,
			Name:                 t.Name,
			APIType:              t.APIType,
			DefaultSystemPrompt:  t.DefaultSystemPrompt,
			RequiredConfigFields: t.RequiredConfigFields,
			Icon:                 t.Icon,
		})
	}

	c.JSON(http.StatusOK, response.Response{
		Data: resp,
	})
}
