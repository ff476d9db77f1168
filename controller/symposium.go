package controller

import (
	"log/slog"
	"net/http"
	"symposium-agent-backend/dao"
	"symposium-agent-backend/model"
	"symposium-agent-backend/request"
	"symposium-agent-backend/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func CreateSymposium(c *gin.Context) {
	var req request.CreateSymposiumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error(ErrParseRequest.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusBadRequest, response.Response{
			Msg: ErrParseRequest.Error(),
		})
		return
	}

	name := req.Name
	if name == "" {
		name = model.DefaultSymposiumName
	}

	email := c.GetString("email")
	symposium := model.Symposium{
		UserEmail:   email,
		SymposiumID: uuid.New().String(),
		Name:        name,
		Description: req.Description,
	}
	if err := dao.CreateSymposium(&symposium); err != nil {
		slog.Error(ErrCreateSymposium.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrCreateSymposium.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, response.Response{
		Data: response.SymposiumResponse{
			SymposiumID: symposium.SymposiumID,
			Name:        symposium.Name,
			Description: symposium.Description,
			CreatedAt:   symposium.CreatedAt,
		},
	})
}

func GetSymposiums(c *gin.Context) {
	email := c.GetString("email")
	symposiums, err := dao.GetSymposiumsByEmail(email)
	if err != nil {
		slog.Error(ErrGetSymposiums.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrGetSymposiums.Error(),
		})
		return
	}

	var resp response.GetSymposiumsResponse
	for _, s := range symposiums {
		resp.Symposiums = append(resp.Symposiums, response.SymposiumResponse{
			SymposiumID: s.SymposiumID,
			Name:        s.Name,
			Description: s.Description,
			CreatedAt:   s.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, response.Response{
		Data: resp,
	})
}

func UpdateSymposium(c *gin.Context) {
	var req request.UpdateSymposiumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error(ErrParseRequest.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusBadRequest, response.Response{
			Msg: ErrParseRequest.Error(),
		})
		return
	}

	email := c.GetString("email")
	symposiumID := c.Param("id")
	if err := dao.UpdateSymposium(email, symposiumID, req.Name, req.Description); err != nil {
		slog.Error(ErrUpdateSymposium.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrUpdateSymposium.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response.Response{})
}

func DeleteSymposium(c *gin.Context) {
	email := c.GetString("email")
	symposiumID := c.Param("id")
	if err := dao.DeleteSymposium(email, symposiumID); err != nil {
		slog.Error(ErrDeleteSymposium.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrDeleteSymposium.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response.Response{})
}
