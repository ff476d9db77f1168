package controller

import (
	"log/slog"
	"net/http"
	"symposium-agent-backend/dao"
	"symposium-agent-backend/request"
	"symposium-agent-backend/response"

	"github.com/gin-gonic/gin"
)

func GetMessages(c *gin.Context) {
	email := c.GetString("email")
	symposiumID := c.Param("id")
	if _, err := dao.GetSymposium(email, symposiumID); err != nil {
		slog.Error(ErrGetMessages.Error(), "symposium_id", symposiumID, "err", err)
		c.AbortWithStatusJSON(http.StatusNotFound, response.Response{
			Msg: ErrGetMessages.Error(),
		})
		return
	}

	messages, err := dao.GetMessagesBySymposiumID(symposiumID)
	if err != nil {
		slog.Error(ErrGetMessages.Error(), "symposium_id", symposiumID, "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrGetMessages.Error(),
		})
		return
	}

	var resp response.GetMessagesResponse
	for _, msg := range messages {
		resp.Messages = append(resp.Messages, toMessageResponse(msg))
	}

	c.JSON(http.StatusOK, response.Response{
		Data: resp,
	})
}

func UpdateMessage(c *gin.Context) {
	var req request.UpdateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error(ErrParseRequest.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusBadRequest, response.Response{
			Msg: ErrParseRequest.Error(),
		})
		return
	}

	messageID, ok := parseIDParam(c)
	if !ok {
		return
	}
	if _, ok := ownedMessage(c, messageID, ErrUpdateMessage); !ok {
		return
	}

	if err := dao.UpdateMessageContent(messageID, req.Content); err != nil {
		slog.Error(ErrUpdateMessage.Error(), "message_id", messageID, "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrUpdateMessage.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response.Response{})
}

func DeleteMessage(c *gin.Context) {
	messageID, ok := parseIDParam(c)
	if !ok {
		return
	}
	if _, ok := ownedMessage(c, messageID, ErrDeleteMessage); !ok {
		return
	}

	if err := dao.DeleteMessage(messageID); err != nil {
		slog.Error(ErrDeleteMessage.Error(), "message_id", messageID, "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrDeleteMessage.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response.Response{})
}

// SetMessageVisibility 控制单条消息对某位顾问隐藏或恢复可见
func SetMessageVisibility(c *gin.Context) {
	var req request.SetMessageVisibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error(ErrParseRequest.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusBadRequest, response.Response{
			Msg: ErrParseRequest.Error(),
		})
		return
	}

	messageID, ok := parseIDParam(c)
	if !ok {
		return
	}
	message, ok := ownedMessage(c, messageID, ErrSetMessageVisibility)
	if !ok {
		return
	}

	// 目标顾问必须属于消息所在的研讨会
	consultant, err := dao.GetConsultantByID(req.ConsultantID)
	if err != nil || consultant.SymposiumID != message.SymposiumID {
		slog.Error(ErrSetMessageVisibility.Error(),
			"message_id", messageID,
			"consultant_id", req.ConsultantID,
			"err", err,
		)
		c.AbortWithStatusJSON(http.StatusNotFound, response.Response{
			Msg: ErrSetMessageVisibility.Error(),
		})
		return
	}

	if err := dao.SetMessageVisibility(messageID, req.ConsultantID, req.Hidden); err != nil {
		slog.Error(ErrSetMessageVisibility.Error(),
			"message_id", messageID,
			"consultant_id", req.ConsultantID,
			"err", err,
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrSetMessageVisibility.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response.Response{})
}
