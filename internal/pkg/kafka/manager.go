package kafka

import (
	"Harbor/internal/api/config"
	"Harbor/internal/service"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// ConsumerManager 管理所有 Kafka 消费者
type ConsumerManager struct {
	entityEventConsumer sarama.ConsumerGroup
	entityEventHandler  sarama.ConsumerGroupHandler
}

// NewConsumerManager 构造函数
func NewConsumerManager(cfg *config.Config, notificationService service.NotificationService) (*ConsumerManager, error) {
	saramaCfg := newSaramaConfig(cfg.Kafka)

	entityEventConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaEntityEvents.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}

	return &ConsumerManager{
		entityEventConsumer: entityEventConsumer,
		entityEventHandler:  NewEntityEventHandler(notificationService),
	}, nil
}

// Start 启动所有消费者，阻塞到上下文取消
func (m *ConsumerManager) Start(ctx context.Context, cfg *config.Config) error {
	go func() {
		topic := cfg.KafkaEntityEvents.Topic
		log.Info("Entity event consumer started", "topic", topic)
		for {
			if err := m.entityEventConsumer.Consume(ctx, []string{topic}, m.entityEventHandler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	<-ctx.Done()
	log.Info("Kafka Manager shutting down...")

	if err := m.entityEventConsumer.Close(); err != nil {
		log.Error("Failed to close entity event consumer", "err", err)
	}

	return nil
}
