package controller

import (
	"log/slog"
	"net/http"
	"symposium-agent-backend/dao"
	"symposium-agent-backend/model"
	"symposium-agent-backend/request"
	"symposium-agent-backend/response"
	"symposium-agent-backend/service/audit"
	"symposium-agent-backend/service/chat"
	"symposium-agent-backend/service/consultant"
	"symposium-agent-backend/service/llm"

	"github.com/gin-gonic/gin"
)

// ConsultantChat 处理一轮对话：
// 持久化用户消息 → 工厂解析策略 → 组装上下文 → 执行流水线 → 持久化顾问回复
// 流水线各阶段的降级与传播策略见 service/consultant
func ConsultantChat(c *gin.Context) {
	var req request.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error(ErrParseRequest.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusBadRequest, response.Response{
			Msg: ErrParseRequest.Error(),
		})
		return
	}

	email := c.GetString("email")
	if _, err := dao.GetSymposium(email, req.SymposiumID); err != nil {
		slog.Error(ErrChatTurn.Error(), "symposium_id", req.SymposiumID, "err", err)
		c.AbortWithStatusJSON(http.StatusNotFound, response.Response{
			Msg: ErrChatTurn.Error(),
		})
		return
	}

	consultantModel, err := dao.GetConsultantByID(req.ConsultantID)
	if err != nil || consultantModel.SymposiumID != req.SymposiumID {
		slog.Error(ErrChatTurn.Error(), "consultant_id", req.ConsultantID, "err", err)
		c.AbortWithStatusJSON(http.StatusNotFound, response.Response{
			Msg: ErrChatTurn.Error(),
		})
		return
	}

	var template *model.Template
	if consultantModel.TemplateID != nil {
		template, err = dao.GetTemplateByID(*consultantModel.TemplateID)
		if err != nil {
			slog.Error(ErrChatTurn.Error(), "template_id", *consultantModel.TemplateID, "err", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
				Msg: ErrChatTurn.Error(),
			})
			return
		}
	}

	// 上下文在持久化本条用户消息之前组装，当前消息单独传入流水线
	conversationContext, err := chat.BuildContext(req.SymposiumID, consultantModel.ID)
	if err != nil {
		slog.Error(ErrChatTurn.Error(), "symposium_id", req.SymposiumID, "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrChatTurn.Error(),
		})
		return
	}

	userMessage := model.Message{
		SymposiumID: req.SymposiumID,
		Content:     req.Content,
		IsUser:      true,
	}
	if err := dao.CreateMessage(&userMessage); err != nil {
		slog.Error(ErrChatTurn.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrChatTurn.Error(),
		})
		return
	}

	factory := consultant.NewFactory(llm.NewClient(), consultant.DAOConfigLoader{})
	strategy := factory.New(consultantModel, template)
	pipeline := consultant.NewPipeline(consultantModel, strategy, audit.RecorderInstance)

	reply, err := pipeline.Process(c.Request.Context(), req.Content, conversationContext)
	if err != nil {
		slog.Error(ErrChatTurn.Error(), "consultant_id", consultantModel.ID, "err", err)
		c.AbortWithStatusJSON(http.StatusBadGateway, response.Response{
			Msg: err.Error(),
		})
		return
	}

	consultantMessage := model.Message{
		SymposiumID:  req.SymposiumID,
		ConsultantID: &consultantModel.ID,
		Content:      reply,
		IsUser:       false,
	}
	if err := dao.CreateMessage(&consultantMessage); err != nil {
		slog.Error(ErrChatTurn.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrChatTurn.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response.Response{
		Data: response.ChatResponse{
			UserMessage:       toMessageResponse(userMessage),
			ConsultantMessage: toMessageResponse(consultantMessage),
		},
	})
}

func toMessageResponse(msg model.Message) response.MessageResponse {
	return response.MessageResponse{
		ID:           msg.ID,
		CreatedAt:    msg.CreatedAt,
		ConsultantID: msg.ConsultantID,
		Content:      msg.Content,
		IsUser:       msg.IsUser,
		EditedAt:     msg.EditedAt,
	}
}
