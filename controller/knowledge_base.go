package controller

import (
	"log/slog"
	"net/http"
	"symposium-agent-backend/dao"
	"symposium-agent-backend/model"
	"symposium-agent-backend/request"
	"symposium-agent-backend/response"
	knowledgebase "symposium-agent-backend/service/knowledge-base"
	"symposium-agent-backend/service/knowledge-base/etl"
	"symposium-agent-backend/service/mq"

	"github.com/gin-gonic/gin"
)

const semanticSearchTopK = 10

func CreateKnowledgeCard(c *gin.Context) {
	var req request.CreateKnowledgeCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error(ErrParseRequest.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusBadRequest, response.Response{
			Msg: ErrParseRequest.Error(),
		})
		return
	}

	email := c.GetString("email")
	card := model.KnowledgeCard{
		UserEmail: email,
		Title:     req.Title,
		Content:   req.Content,
	}
	if err := dao.CreateKnowledgeCard(&card); err != nil {
		slog.Error(ErrCreateKnowledgeCard.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrCreateKnowledgeCard.Error(),
		})
		return
	}

	if len(req.Tags) > 0 {
		if err := dao.SetCardTags(&card, req.Tags); err != nil {
			slog.Error(ErrCreateKnowledgeCard.Error(), "card_id", card.ID, "err", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
				Msg: ErrCreateKnowledgeCard.Error(),
			})
			return
		}
	}

	// 向量化异步执行，发送失败不影响卡片创建
	enqueueEmbedCard(c, card.ID)

	c.JSON(http.StatusCreated, response.Response{
		Data: toKnowledgeCardResponse(card),
	})
}

// enqueueEmbedCard 投递卡片向量化任务
func enqueueEmbedCard(c *gin.Context, cardID uint) {
	err := mq.SendMessage(c.Request.Context(), &mq.Message{
		Topic: mq.TopicKnowledgeBase,
		Tag:   mq.TagEmbedCard,
		Payload: etl.EmbedCardMessage{
			CardID: cardID,
		},
	})
	if err != nil {
		slog.Warn("Failed to enqueue card embedding task",
			"card_id", cardID,
			"err", err)
	}
}

func GetKnowledgeCards(c *gin.Context) {
	email := c.GetString("email")
	cards, err := dao.GetKnowledgeCardsByEmail(email)
	if err != nil {
		slog.Error(ErrGetKnowledgeCards.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrGetKnowledgeCards.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response.Response{
		Data: toGetKnowledgeCardsResponse(cards),
	})
}

func UpdateKnowledgeCard(c *gin.Context) {
	var req request.UpdateKnowledgeCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error(ErrParseRequest.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusBadRequest, response.Response{
			Msg: ErrParseRequest.Error(),
		})
		return
	}

	cardID, ok := parseIDParam(c)
	if !ok {
		return
	}

	email := c.GetString("email")
	card, err := dao.GetKnowledgeCardByID(cardID)
	if err != nil || card.UserEmail != email {
		slog.Error(ErrUpdateKnowledgeCard.Error(), "card_id", cardID, "err", err)
		c.AbortWithStatusJSON(http.StatusNotFound, response.Response{
			Msg: ErrUpdateKnowledgeCard.Error(),
		})
		return
	}

	if err := dao.UpdateKnowledgeCard(cardID, req.Title, req.Content); err != nil {
		slog.Error(ErrUpdateKnowledgeCard.Error(), "card_id", cardID, "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrUpdateKnowledgeCard.Error(),
		})
		return
	}

	if req.Tags != nil {
		if err := dao.SetCardTags(card, req.Tags); err != nil {
			slog.Error(ErrUpdateKnowledgeCard.Error(), "card_id", cardID, "err", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
				Msg: ErrUpdateKnowledgeCard.Error(),
			})
			return
		}
	}

	// 内容变更后重建向量
	enqueueEmbedCard(c, cardID)

	c.JSON(http.StatusOK, response.Response{})
}

func DeleteKnowledgeCard(c *gin.Context) {
	cardID, ok := parseIDParam(c)
	if !ok {
		return
	}

	email := c.GetString("email")
	if err := dao.DeleteKnowledgeCard(email, cardID); err != nil {
		slog.Error(ErrDeleteKnowledgeCard.Error(), "card_id", cardID, "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrDeleteKnowledgeCard.Error(),
		})
		return
	}

	if knowledgebase.IndexerInstance != nil {
		if err := knowledgebase.IndexerInstance.DeleteCardVectors(c.Request.Context(), cardID); err != nil {
			slog.Warn("Failed to delete card vectors",
				"card_id", cardID,
				"err", err)
		}
	}

	c.JSON(http.StatusOK, response.Response{})
}

// SearchKnowledgeCards 按标题关键词检索，走MySQL全文索引
func SearchKnowledgeCards(c *gin.Context) {
	keyword := c.Query("keyword")
	if keyword == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, response.Response{
			Msg: ErrParseRequest.Error(),
		})
		return
	}

	email := c.GetString("email")
	cards, err := dao.SearchKnowledgeCardsByTitle(email, keyword)
	if err != nil {
		slog.Error(ErrSearchKnowledgeCard.Error(), "keyword", keyword, "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrSearchKnowledgeCard.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response.Response{
		Data: toGetKnowledgeCardsResponse(cards),
	})
}

// SemanticSearchKnowledgeCards 基于Milvus向量检索的语义搜索
func SemanticSearchKnowledgeCards(c *gin.Context) {
	query := c.Query("query")
	if query == "" || knowledgebase.IndexerInstance == nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, response.Response{
			Msg: ErrParseRequest.Error(),
		})
		return
	}

	email := c.GetString("email")
	cardIDs, err := knowledgebase.IndexerInstance.SearchCards(c.Request.Context(), email, query, semanticSearchTopK)
	if err != nil {
		slog.Error(ErrSearchKnowledgeCard.Error(), "query", query, "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrSearchKnowledgeCard.Error(),
		})
		return
	}

	cards, err := dao.GetKnowledgeCardsByIDs(cardIDs)
	if err != nil {
		slog.Error(ErrSearchKnowledgeCard.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrSearchKnowledgeCard.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response.Response{
		Data: toGetKnowledgeCardsResponse(cards),
	})
}

func PinCard(c *gin.Context) {
	var req request.PinCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error(ErrParseRequest.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusBadRequest, response.Response{
			Msg: ErrParseRequest.Error(),
		})
		return
	}

	email := c.GetString("email")
	if _, err := dao.GetSymposium(email, req.SymposiumID); err != nil {
		slog.Error(ErrPinKnowledgeCard.Error(), "symposium_id", req.SymposiumID, "err", err)
		c.AbortWithStatusJSON(http.StatusNotFound, response.Response{
			Msg: ErrPinKnowledgeCard.Error(),
		})
		return
	}

	if err := dao.PinCardToSymposium(req.SymposiumID, req.CardID); err != nil {
		slog.Error(ErrPinKnowledgeCard.Error(), "card_id", req.CardID, "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrPinKnowledgeCard.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response.Response{})
}

func UnpinCard(c *gin.Context) {
	var req request.PinCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error(ErrParseRequest.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusBadRequest, response.Response{
			Msg: ErrParseRequest.Error(),
		})
		return
	}

	if err := dao.UnpinCardFromSymposium(req.SymposiumID, req.CardID); err != nil {
		slog.Error(ErrUnpinKnowledgeCard.Error(), "card_id", req.CardID, "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrUnpinKnowledgeCard.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response.Response{})
}

// ImportMarkdown 前端完成OSS上传后触发，文件的切分与向量化由MQ消费者异步处理
func ImportMarkdown(c *gin.Context) {
	var req request.ImportMarkdownRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error(ErrParseRequest.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusBadRequest, response.Response{
			Msg: ErrParseRequest.Error(),
		})
		return
	}

	email := c.GetString("email")
	err := mq.SendMessage(c.Request.Context(), &mq.Message{
		Topic: mq.TopicKnowledgeBase,
		Tag:   mq.TagImportMarkdown,
		Payload: etl.ImportMarkdownMessage{
			UserEmail:  email,
			ObjectName: req.ObjectName,
			FileName:   req.FileName,
		},
	})
	if err != nil {
		slog.Error(ErrImportMarkdown.Error(), "object_name", req.ObjectName, "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrImportMarkdown.Error(),
		})
		return
	}

	c.JSON(http.StatusAccepted, response.Response{})
}

func toKnowledgeCardResponse(card model.KnowledgeCard) response.KnowledgeCardResponse {
	var tags []string
	for _, tag := range card.Tags {
		tags = append(tags, tag.Name)
	}
	return response.KnowledgeCardResponse{
		ID:        card.ID,
		CreatedAt: card.CreatedAt,
		Title:     card.Title,
		Content:   card.Content,
		Tags:      tags,
	}
}

func toGetKnowledgeCardsResponse(cards []model.KnowledgeCard) response.GetKnowledgeCardsResponse {
	var resp response.GetKnowledgeCardsResponse
	for _, card := range cards {
		resp.Cards = append(resp.Cards, toKnowledgeCardResponse(card))
	}
	return resp
}
