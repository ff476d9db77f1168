package controller

import (
	"log/slog"
	"net/http"
	"strconv"
	"symposium-agent-backend/dao"
	"symposium-agent-backend/response"

	"github.com/gin-gonic/gin"
)

const defaultAuditLogLimit = 50

// GetAPICallLogs 返回某位顾问最近的外部调用审计记录，时间倒序
func GetAPICallLogs(c *gin.Context) {
	consultantID, ok := parseIDParam(c)
	if !ok {
		return
	}
	if _, ok := ownedConsultant(c, consultantID, ErrGetAPICallLogs); !ok {
		return
	}

	limit := defaultAuditLogLimit
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	logs, err := dao.GetAPICallLogsByConsultantID(consultantID, limit)
	if err != nil {
		slog.Error(ErrGetAPICallLogs.Error(), "consultant_id", consultantID, "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrGetAPICallLogs.Error(),
		})
		return
	}

	var resp response.GetAPICallLogsResponse
	for _, entry := range logs {
		resp.Logs = append(resp.Logs, response.APICallLogResponse{
			CreatedAt:    entry.CreatedAt,
			AdapterType:  entry.AdapterType,
			Request:      entry.Request,
			Response:     entry.Response,
			Success:      entry.Success,
			ErrorMessage: entry.ErrorMessage,
			ElapsedMs:    entry.ElapsedMs,
		})
	}

	c.JSON(http.StatusOK, response.Response{
		Data: resp,
	})
}
