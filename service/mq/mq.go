package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"symposium-agent-backend/config"
	"symposium-agent-backend/service/knowledge-base/etl"

	"github.com/apache/rocketmq-client-go/v2"
	c "github.com/apache/rocketmq-client-go/v2/consumer"
	"github.com/apache/rocketmq-client-go/v2/primitive"
	"github.com/apache/rocketmq-client-go/v2/producer"
	"github.com/apache/rocketmq-client-go/v2/rlog"
	"github.com/avast/retry-go/v4"
)

const (
	TopicKnowledgeBase = "topic_knowledge_base"

	// 卡片内容向量化任务
	TagEmbedCard = "tag_embed_card"

	// OSS上的markdown文件导入任务
	TagImportMarkdown = "tag_import_markdown"

	consumeGroupKnowledgeBase = "cg_knowledge_base"

	sendMessageAttempts  = 3
	maxReconsumeTimes    = 5
	consumeGoroutineNums = 10
)

var (
	// 全局生产者
	producerInstance rocketmq.Producer

	// 知识库业务消费者
	consumerKnowledgeBase rocketmq.PushConsumer

	// 消息处理器表，按 topic/tag 索引
	handlers = make(map[string]MessageHandler)
)

type MessageHandler func(context.Context, *primitive.MessageExt) error

type Message struct {
	Topic   string
	Tag     string
	Payload any
}

func init() {
	// 设置RocketMQ客户端（使用rlog）的日志级别
	rlog.SetLogLevel("warn")

	var err error
	consumerKnowledgeBase, err = rocketmq.NewPushConsumer(
		c.WithNameServer(config.Cfg.MQ.NameServer),
		c.WithGroupName(consumeGroupKnowledgeBase),
		c.WithConsumerModel(c.Clustering),
		c.WithConsumeFromWhere(c.ConsumeFromLastOffset),
		c.WithMaxReconsumeTimes(maxReconsumeTimes),
		c.WithConsumeGoroutineNums(consumeGoroutineNums),
	)
	if err != nil {
		panic(fmt.Sprintf("Failed to create consumer: %v", err))
	}

	producerInstance, err = rocketmq.NewProducer(
		producer.WithNameServer(config.Cfg.MQ.NameServer),
	)
	if err != nil {
		panic(fmt.Sprintf("Failed to create producer: %v", err))
	}
}

func Run() error {
	// 注册消息处理器
	handlers[handlerKey(TopicKnowledgeBase, TagEmbedCard)] = etl.HandleEmbedCardMessage
	handlers[handlerKey(TopicKnowledgeBase, TagImportMarkdown)] = etl.HandleImportMarkdownMessage

	if err := subscribe(consumerKnowledgeBase, TopicKnowledgeBase, TagEmbedCard+" || "+TagImportMarkdown); err != nil {
		return fmt.Errorf("failed to subscribe, topic: %s, err: %v", TopicKnowledgeBase, err)
	}

	if err := producerInstance.Start(); err != nil {
		return fmt.Errorf("failed to start producer: %v", err)
	}

	if err := consumerKnowledgeBase.Start(); err != nil {
		return fmt.Errorf("failed to start consumer: %v", err)
	}
	return nil
}

func handlerKey(topic, tag string) string {
	return topic + "/" + tag
}

func subscribe(consumer rocketmq.PushConsumer, topic string, tagExpression string) error {
	selector := c.MessageSelector{
		Type:       c.TAG,
		Expression: tagExpression,
	}

	return consumer.Subscribe(topic, selector, func(ctx context.Context, messages ...*primitive.MessageExt) (c.ConsumeResult, error) {
		for _, msg := range messages {
			h := handlers[handlerKey(msg.Topic, msg.GetTags())]
			if h == nil {
				slog.Warn("No message handler found",
					"topic", msg.Topic,
					"tag", msg.GetTags())
				continue
			}

			if err := h(ctx, msg); err != nil {
				slog.Error("Failed to process message",
					"topic", msg.Topic,
					"tag", msg.GetTags(),
					"msg_id", msg.MsgId,
					"error", err)
				return c.ConsumeRetryLater, err
			}
		}
		return c.ConsumeSuccess, nil
	})
}

// SendMessage 向MQ发送消息
func SendMessage(ctx context.Context, message *Message) error {
	payloadJSON, err := json.Marshal(message.Payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %v", err)
	}

	msg := primitive.NewMessage(message.Topic, payloadJSON)
	if message.Tag != "" {
		msg = msg.WithTag(message.Tag)
	}

	err = retry.Do(
		func() error {
			_, err := producerInstance.SendSync(ctx, msg)
			return err
		},
		retry.Attempts(sendMessageAttempts),
		retry.DelayType(retry.BackOffDelay),
		retry.OnRetry(func(n uint, err error) {
			slog.Warn("Retrying to send message",
				"attempt", n+1,
				"topic", msg.Topic,
				"err", err)
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to send message to topic %s after retries: %v", msg.Topic, err)
	}

	return nil
}

// Shutdown 关闭MQ服务
func Shutdown() {
	if producerInstance != nil {
		producerInstance.Shutdown()
	}
	if consumerKnowledgeBase != nil {
		consumerKnowledgeBase.Shutdown()
	}
}
