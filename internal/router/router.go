package router

import (
	"Gather_Hub/internal/handler"
	"Gather_Hub/internal/middleware"
	"Gather_Hub/internal/pkg"
	"Gather_Hub/internal/repository/mysql"
	"Gather_Hub/internal/repository/redis"
	"Gather_Hub/internal/service"

	"github.com/gin-gonic/gin"
)

func InitRouter(emailCfg pkg.SMTPConfig) *gin.Engine {
	r := gin.Default()

	clock := pkg.SystemClock{}
	userRepo := &mysql.UserRepository{DB: mysql.DB}
	gatheringRepo := &mysql.GatheringRepository{DB: mysql.DB}
	subscriptionRepo := &mysql.SubscriptionRepository{DB: mysql.DB}
	gatheringCache := &redis.GatheringRepository{}

	emailSvc := service.NewEmailService(emailCfg)
	userSvc := service.NewUserService(userRepo, emailSvc)
	gatheringSvc := service.NewGatheringService(gatheringRepo, gatheringCache, clock)
	subscriptionSvc := service.NewSubscriptionService(
		subscriptionRepo, gatheringSvc, userRepo, service.NewSMTPNotifier(emailCfg), clock)

	user := handler.NewUserHandler(userSvc)
	email := handler.NewEmailHandler(emailSvc)
	gathering := handler.NewGatheringHandler(gatheringSvc)
	subscription := handler.NewSubscriptionHandler(subscriptionSvc)

	// 邮件相关接口
	emailGroup := r.Group("/api/email")
	{
		emailGroup.POST("/code", email.SendCode)
	}

	// 用户相关接口
	userGroup := r.Group("/api/user")
	{
		userGroup.POST("/register", user.Register)
		userGroup.POST("/login", user.Login)
		userGroup.POST("/logout", user.Logout)
		userGroup.POST("/reset", user.ResetPassword)
	}

	// token相关接口
	tokenGroup := r.Group("/api/token")
	{
		tokenGroup.POST("/refresh", user.TokenRefresh)
	}

	// 登录态接口
	authGroup := r.Group("/api/auth")
	authGroup.Use(middleware.AuthMiddleware())
	{
		authGroup.POST("/change-password", user.ChangePassword)
	}

	// 活动相关接口
	gatheringGroup := r.Group("/api/gatherings")
	gatheringGroup.Use(middleware.AuthMiddleware())
	{
		gatheringGroup.GET("", gathering.List)
		gatheringGroup.GET("/day", gathering.ListByDate)
		gatheringGroup.POST("", gathering.Create)
		gatheringGroup.PUT("/:id", gathering.Update)
		gatheringGroup.DELETE("/:id", gathering.Destroy)
	}

	// 组织者自己的活动
	myGroup := r.Group("/api/my-gatherings")
	myGroup.Use(middleware.AuthMiddleware())
	{
		myGroup.GET("", gathering.MyGatherings)
	}

	// 订阅相关接口
	subGroup := r.Group("/api/subscriptions")
	subGroup.Use(middleware.AuthMiddleware())
	{
		subGroup.GET("", subscription.List)
		subGroup.POST("/:id", subscription.Subscribe)
		subGroup.DELETE("/:id", subscription.Unsubscribe)
	}

	return r
}
