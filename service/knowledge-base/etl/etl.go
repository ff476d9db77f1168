package etl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"symposium-agent-backend/config"
	"symposium-agent-backend/dao"
	"symposium-agent-backend/model"
	knowledgebase "symposium-agent-backend/service/knowledge-base"

	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss"
	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss/credentials"
	"github.com/apache/rocketmq-client-go/v2/primitive"
	"github.com/tmc/langchaingo/documentloaders"
	"github.com/tmc/langchaingo/textsplitter"
)

const (
	chunkSize    = 800
	chunkOverlap = 100
)

// EmbedCardMessage 卡片向量化任务
type EmbedCardMessage struct {
	CardID uint `json:"card_id"`
}

// ImportMarkdownMessage markdown文件导入任务
// 前端将文件传至OSS后投递，文件被切分为多张知识卡片并向量化
type ImportMarkdownMessage struct {
	UserEmail  string `json:"user_email"`
	ObjectName string `json:"object_name"`
	FileName   string `json:"file_name"`
}

func HandleEmbedCardMessage(ctx context.Context, msg *primitive.MessageExt) error {
	var embedMessage EmbedCardMessage
	if err := json.Unmarshal(msg.Body, &embedMessage); err != nil {
		return fmt.Errorf("failed to unmarshal message body: %v", err)
	}

	card, err := dao.GetKnowledgeCardByID(embedMessage.CardID)
	if err != nil {
		return fmt.Errorf("failed to load card %d: %v", embedMessage.CardID, err)
	}

	if err := knowledgebase.IndexerInstance.IndexCard(ctx, card); err != nil {
		return fmt.Errorf("failed to index card %d: %v", card.ID, err)
	}

	slog.Debug("indexed knowledge card", "card_id", card.ID)
	return nil
}

func HandleImportMarkdownMessage(ctx context.Context, msg *primitive.MessageExt) error {
	var importMessage ImportMarkdownMessage
	if err := json.Unmarshal(msg.Body, &importMessage); err != nil {
		return fmt.Errorf("failed to unmarshal message body: %v", err)
	}

	object, err := getObjectFromOSS(ctx, importMessage.ObjectName)
	if err != nil {
		return fmt.Errorf("failed to get object from oss: %v", err)
	}

	chunks, err := splitMarkdown(ctx, object)
	if err != nil {
		return fmt.Errorf("failed to split markdown: %v", err)
	}

	slog.Debug("split markdown successfully",
		"object_name", importMessage.ObjectName,
		"chunks_num", len(chunks),
	)

	title := strings.TrimSuffix(importMessage.FileName, ".md")
	for i, chunk := range chunks {
		card := &model.KnowledgeCard{
			UserEmail:    importMessage.UserEmail,
			Title:        fmt.Sprintf("%s（%d/%d）", title, i+1, len(chunks)),
			Content:      chunk,
			SourceObject: importMessage.ObjectName,
		}
		if err := dao.CreateKnowledgeCard(card); err != nil {
			return fmt.Errorf("failed to create card from chunk %d: %v", i, err)
		}
		if err := knowledgebase.IndexerInstance.IndexCard(ctx, card); err != nil {
			return fmt.Errorf("failed to index card %d: %v", card.ID, err)
		}
	}

	return nil
}

func splitMarkdown(ctx context.Context, object []byte) ([]string, error) {
	separators := []string{"\n\n", "\n", "。", "！", "？", "；", "，", " ", ""}
	splitter := textsplitter.NewMarkdownTextSplitter(
		textsplitter.WithChunkSize(chunkSize),
		textsplitter.WithChunkOverlap(chunkOverlap),
		textsplitter.WithHeadingHierarchy(true), // 保留父级标题信息
		textsplitter.WithSecondSplitter(textsplitter.NewRecursiveCharacter(
			textsplitter.WithChunkSize(chunkSize),
			textsplitter.WithChunkOverlap(chunkOverlap),
			textsplitter.WithSeparators(separators),
		)),
	)

	reader := bytes.NewReader(object)
	loader := documentloaders.NewText(reader)

	docs, err := loader.LoadAndSplit(ctx, splitter)
	if err != nil {
		return nil, err
	}

	var chunks []string
	for _, doc := range docs {
		content := strings.TrimSpace(doc.PageContent)
		if content == "" {
			continue
		}
		chunks = append(chunks, content)
	}
	return chunks, nil
}

func getObjectFromOSS(ctx context.Context, objectName string) ([]byte, error) {
	cfg := &oss.Config{
		Region: oss.Ptr(config.Cfg.OSS.Region),
		CredentialsProvider: credentials.NewStaticCredentialsProvider(
			config.Cfg.OSS.AccessKeyID,
			config.Cfg.OSS.AccessKeySecret,
		),
	}
	client := oss.NewClient(cfg)

	result, err := client.GetObject(ctx, &oss.GetObjectRequest{
		Bucket: oss.Ptr(config.Cfg.OSS.BucketName),
		Key:    oss.Ptr(objectName),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get object from oss: %v", err)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read object: %v", err)
	}

	return data, nil
}
