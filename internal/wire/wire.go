package wire

import (
	"Folioforge/internal/api"
	"Folioforge/internal/api/config"
	"Folioforge/internal/api/handler"
	"Folioforge/internal/job"
	"Folioforge/internal/pkg/cache"
	"Folioforge/internal/pkg/cron"
	"Folioforge/internal/pkg/es"
	"Folioforge/internal/pkg/identity"
	"Folioforge/internal/pkg/kafka"
	pkgmongo "Folioforge/internal/pkg/mongo"
	"Folioforge/internal/pkg/payment"
	"Folioforge/internal/pkg/ratelimit"
	"Folioforge/internal/pkg/redis"
	"Folioforge/internal/repository"
	"Folioforge/internal/service"
	"time"

	"github.com/gin-gonic/gin"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router       *gin.Engine
	DB           *gorm.DB
	KafkaManager *kafka.ConsumerManager
	CronMgr      *cron.Manager
}

func BuildApplication(db *gorm.DB, mongoDB *mongodriver.Database, cfg *config.Config) (*ApplicationContainer, error) {
	portfolioRepo := repository.NewPortfolioRepository(db)
	templateRepo := repository.NewTemplateRepository(db)
	contactRepo := repository.NewContactRepository(db)
	userRepo := repository.NewUserRepository(db)
	analyticRepo := pkgmongo.NewPortfolioAnalyticRepo(mongoDB, cfg.Analytics.DedupDaily)
	esRepo := es.NewPortfolioRepo(es.Client)

	capabilityCache := cache.New(redis.GetRdbClient(), time.Duration(cfg.Identity.CacheTTL)*time.Minute)
	identityProvider := identity.NewClerkProvider(cfg.Identity)
	contactLimiter := ratelimit.NewFixedWindowLimiter(time.Duration(cfg.RateLimit.Window)*time.Second, cfg.RateLimit.Limit)
	stripeVerifier := payment.NewVerifier(cfg.Stripe.WebhookSecret)

	accountSvc := service.NewAccountService(identityProvider, capabilityCache, userRepo)
	portfolioSvc := service.NewPortfolioService(portfolioRepo, templateRepo, analyticRepo, esRepo, accountSvc)
	templateSvc := service.NewTemplateService(templateRepo)
	contactSvc := service.NewContactService(contactRepo, portfolioRepo, contactLimiter)
	analyticsSvc := service.NewAnalyticsService(analyticRepo, portfolioRepo)
	paymentSvc := service.NewPaymentService(stripeVerifier, userRepo, identityProvider, accountSvc)
	mediaSvc := service.NewMediaService()
	aiSvc := service.NewAIService()

	handlers := &api.HandlersGroup{
		PortfolioHandler: handler.NewPortfolioHandler(portfolioSvc, analyticsSvc),
		TemplateHandler:  handler.NewTemplateHandler(templateSvc),
		ContactHandler:   handler.NewContactHandler(contactSvc),
		AnalyticsHandler: handler.NewAnalyticsHandler(analyticsSvc),
		AccountHandler:   handler.NewAccountHandler(accountSvc),
		PaymentHandler:   handler.NewPaymentHandler(paymentSvc),
		MediaHandler:     handler.NewMediaHandler(mediaSvc),
		AIHandler:        handler.NewAIHandler(aiSvc),
		AccountSvc:       accountSvc,
	}

	router := api.SetupRouter(handlers)

	kafkaMgr, err := kafka.NewConsumerManager(cfg, analyticsSvc)
	if err != nil {
		return nil, err
	}

	viewCountJob := job.NewViewCountJob(portfolioRepo, analyticRepo, esRepo)
	cronMgr := cron.NewCronManager(viewCountJob)

	return &ApplicationContainer{
		Router:       router,
		DB:           db,
		KafkaManager: kafkaMgr,
		CronMgr:      cronMgr,
	}, nil
}
