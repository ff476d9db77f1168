package controller

import (
	"log/slog"
	"net/http"
	"strconv"
	"symposium-agent-backend/dao"
	"symposium-agent-backend/model"
	"symposium-agent-backend/response"

	"github.com/gin-gonic/gin"
)

// parseIDParam 解析路径中的数字ID，失败时直接写错误响应
func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		slog.Error(ErrParseRequest.Error(), "id", c.Param("id"), "err", err)
		c.AbortWithStatusJSON(http.StatusBadRequest, response.Response{
			Msg: ErrParseRequest.Error(),
		})
		return 0, false
	}
	return uint(id), true
}

// ownedConsultant 校验顾问属于当前用户的研讨会，校验失败时直接写错误响应
func ownedConsultant(c *gin.Context, consultantID uint, sentinel error) (*model.Consultant, bool) {
	email := c.GetString("email")
	consultant, err := dao.GetOwnedConsultant(email, consultantID)
	if err != nil {
		slog.Error(sentinel.Error(), "consultant_id", consultantID, "err", err)
		c.AbortWithStatusJSON(http.StatusNotFound, response.Response{
			Msg: sentinel.Error(),
		})
		return nil, false
	}
	return consultant, true
}

// ownedMessage 校验消息属于当前用户的研讨会，校验失败时直接写错误响应
func ownedMessage(c *gin.Context, messageID uint, sentinel error) (*model.Message, bool) {
	email := c.GetString("email")
	message, err := dao.GetOwnedMessage(email, messageID)
	if err != nil {
		slog.Error(sentinel.Error(), "message_id", messageID, "err", err)
		c.AbortWithStatusJSON(http.StatusNotFound, response.Response{
			Msg: sentinel.Error(),
		})
		return nil, false
	}
	return message, true
}
