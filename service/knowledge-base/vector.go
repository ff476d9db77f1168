package knowledgebase

import (
	"context"
	"fmt"
	"symposium-agent-backend/config"
	"symposium-agent-backend/model"
	"symposium-agent-backend/utils"

	"github.com/milvus-io/milvus/client/v2/column"
	"github.com/milvus-io/milvus/client/v2/entity"
	client "github.com/milvus-io/milvus/client/v2/milvusclient"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"
)

const (
	// CollectionName 知识卡片向量集合
	CollectionName = "knowledge_card"

	// VectorDim 向量维度，与embedding模型输出保持一致
	VectorDim = 1024

	defaultSearchTopK = 5
)

// Indexer 知识卡片的向量化与检索服务
type Indexer struct {
	embedder     embeddings.Embedder
	milvusClient *client.Client
}

// IndexerInstance Indexer单例实例，Init后可用
var IndexerInstance *Indexer

func Init(ctx context.Context) error {
	llm, err := openai.New(
		openai.WithEmbeddingModel(config.Cfg.Model.EmbeddingModel),
		openai.WithToken(config.Cfg.Model.APIKey),
		openai.WithBaseURL(config.Cfg.Model.BaseURL),
		openai.WithHTTPClient(utils.DefaultHTTPClient()),
	)
	if err != nil {
		return fmt.Errorf("failed to create embedding client: %v", err)
	}

	embedder, err := embeddings.NewEmbedder(llm)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %v", err)
	}

	milvusClient, err := client.New(ctx, &client.ClientConfig{
		Address: config.Cfg.Milvus.Endpoint,
		APIKey:  config.Cfg.Milvus.APIKey,
	})
	if err != nil {
		return fmt.Errorf("failed to create milvus client: %v", err)
	}

	IndexerInstance = &Indexer{
		embedder:     embedder,
		milvusClient: milvusClient,
	}
	return nil
}

// IndexCard 向量化卡片内容并写入Milvus，重复索引前先清理旧向量
func (idx *Indexer) IndexCard(ctx context.Context, card *model.KnowledgeCard) error {
	if err := idx.DeleteCardVectors(ctx, card.ID); err != nil {
		return err
	}

	text := card.Title + "\n" + card.Content
	vectors, err := idx.embedder.EmbedDocuments(ctx, []string{text})
	if err != nil {
		return fmt.Errorf("error embedding card %d: %v", card.ID, err)
	}

	columns := []column.Column{
		column.NewColumnVarChar("text", []string{text}),
		column.NewColumnFloatVector("vector", VectorDim, vectors),
		column.NewColumnInt64("card_id", []int64{int64(card.ID)}),
		column.NewColumnVarChar("user_email", []string{card.UserEmail}),
	}

	insertOption := client.NewColumnBasedInsertOption(CollectionName).WithColumns(columns...)
	if _, err := idx.milvusClient.Insert(ctx, insertOption); err != nil {
		return fmt.Errorf("error inserting card vectors: %v", err)
	}
	return nil
}

func (idx *Indexer) DeleteCardVectors(ctx context.Context, cardID uint) error {
	deleteOption := client.NewDeleteOption(CollectionName).
		WithExpr(fmt.Sprintf("card_id == %d", cardID))
	if _, err := idx.milvusClient.Delete(ctx, deleteOption); err != nil {
		return fmt.Errorf("error deleting card vectors: %v", err)
	}
	return nil
}

// SearchCards 语义检索当前用户的知识卡片，返回按相似度排序的卡片ID
func (idx *Indexer) SearchCards(ctx context.Context, email, query string, topK int) ([]uint, error) {
	if topK <= 0 {
		topK = defaultSearchTopK
	}

	vector, err := idx.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error embedding query: %v", err)
	}

	searchOption := client.NewSearchOption(CollectionName, topK, []entity.Vector{
		entity.FloatVector(vector),
	}).
		WithANNSField("vector").
		WithFilter(fmt.Sprintf(`user_email == "%s"`, email)).
		WithOutputFields("card_id")

	results, err := idx.milvusClient.Search(ctx, searchOption)
	if err != nil {
		return nil, fmt.Errorf("error searching card vectors: %v", err)
	}

	var cardIDs []uint
	seen := make(map[uint]bool)
	for _, result := range results {
		col := result.GetColumn("card_id")
		if col == nil {
			continue
		}
		for i := 0; i < col.Len(); i++ {
			id, err := col.GetAsInt64(i)
			if err != nil {
				continue
			}
			// 同一张卡片可能存在多个chunk向量，去重
			if !seen[uint(id)] {
				seen[uint(id)] = true
				cardIDs = append(cardIDs, uint(id))
			}
		}
	}
	return cardIDs, nil
}
