package wire

import (
	"Harbor/internal/api"
	"Harbor/internal/api/config"
	"Harbor/internal/api/handler"
	"Harbor/internal/job"
	"Harbor/internal/pkg/cron"
	"Harbor/internal/pkg/hub"
	"Harbor/internal/pkg/kafka"
	mongoPkg "Harbor/internal/pkg/mongo"
	"Harbor/internal/repository"
	"Harbor/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router       *gin.Engine
	DB           *gorm.DB
	KafkaManager *kafka.ConsumerManager
	CronMgr      *cron.Manager
}

func BuildApplication(db *gorm.DB, mongoDB *mongo.Database, cfg *config.Config) (*ApplicationContainer, error) {
	convRepo := repository.NewConversationRepo(db)
	friendRepo := repository.NewFriendRepo(db)
	reactionRepo := repository.NewReactionRepo(db)
	postRepo := repository.NewPostRepo(db)
	messageRepo := mongoPkg.NewMessageRepo(mongoDB)
	notifRepo := mongoPkg.NewNotificationRepo(mongoDB)

	h := hub.NewHub()

	presenceService := service.NewPresenceService(convRepo, h, service.NewRedisPresenceMirror())
	chatService := service.NewChatService(convRepo, messageRepo, h)
	notificationService := service.NewNotificationService(notifRepo, h)
	friendService := service.NewFriendService(friendRepo, notifRepo, notificationService)
	reactionService := service.NewReactionService(reactionRepo, postRepo, notificationService)

	handlers := &api.HandlersGroup{
		WsHandler:           handler.NewWsHandler(h, presenceService),
		ChatHandler:         handler.NewChatHandler(chatService),
		NotificationHandler: handler.NewNotificationHandler(notificationService),
		FriendHandler:       handler.NewFriendHandler(friendService),
		ReactionHandler:     handler.NewReactionHandler(reactionService),
		MediaHandler:        handler.NewMediaHandler(),
	}

	router := api.SetupRouter(handlers)

	kafkaMgr, err := kafka.NewConsumerManager(cfg, notificationService)
	if err != nil {
		return nil, err
	}

	cronMgr := cron.NewCronManager(job.NewMediaCleanupJob())

	return &ApplicationContainer{
		Router:       router,
		DB:           db,
		KafkaManager: kafkaMgr,
		CronMgr:      cronMgr,
	}, nil
}
