package kafka

import (
	mongoPkg "Harbor/internal/pkg/mongo"
	"Harbor/internal/service"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// EntityEvent 其他业务域发来的实体事件，统一转成站内通知
type EntityEvent struct {
	RecipientID uint64 `json:"recipient_id"`
	SenderID    uint64 `json:"sender_id"`
	Type        string `json:"type"`
	AboutKind   string `json:"about_kind"`
	AboutID     string `json:"about_id"`
	Message     string `json:"message"`
}

type EntityEventHandler struct {
	notificationService service.NotificationService
}

func NewEntityEventHandler(notificationService service.NotificationService) *EntityEventHandler {
	return &EntityEventHandler{notificationService: notificationService}
}

func (s *EntityEventHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("entity event consumer setup")
	return nil
}

func (s *EntityEventHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("entity event consumer cleanup")
	return nil
}

func (s *EntityEventHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("entity event consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("entity event process batch error", "err", err)
		return err
	}
	log.Info("entity event consume claim end")
	return nil
}

// logic 单条事件的处理逻辑
// 解析失败的脏数据跳过并提交，重试也不会变好；派发失败返回错误交给批处理重试
func (s *EntityEventHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	var event EntityEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Error("unmarshal entity event error", "err", err, "offset", msg.Offset)
		return nil
	}
	if !mongoPkg.ValidNotifyType(event.Type) {
		log.Warn("unknown entity event type, skipping", "type", event.Type, "offset", msg.Offset)
		return nil
	}

	err := s.notificationService.Dispatch(ctx, &mongoPkg.Notification{
		RecipientID: event.RecipientID,
		SenderID:    event.SenderID,
		Type:        event.Type,
		About:       mongoPkg.About{Kind: event.AboutKind, ID: event.AboutID},
		Message:     event.Message,
	})
	if err != nil {
		return errors.Wrap(err, "dispatch entity event notification")
	}
	return nil
}
