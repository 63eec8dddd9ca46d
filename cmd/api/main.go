package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"strings"

	"Gather_Hub/internal/model"
	"Gather_Hub/internal/pkg"
	"Gather_Hub/internal/repository/mysql"
	"Gather_Hub/internal/repository/redis"
	"Gather_Hub/internal/router"
	"Gather_Hub/internal/service"

	"github.com/joho/godotenv"
)

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func main() {
	// .env 可选，没有就用默认值
	_ = godotenv.Load()

	dsn := envOr("MYSQL_DSN", "user:password@tcp(127.0.0.1:3306)/gatherhub?charset=utf8mb4&parseTime=True")
	if err := mysql.InitDB(dsn); err != nil {
		panic(err)
	}

	// 连接redis
	redisDB, _ := strconv.Atoi(envOr("REDIS_DB", "0"))
	if err := redis.Init(envOr("REDIS_ADDR", "127.0.0.1:6379"), os.Getenv("REDIS_PASSWORD"), redisDB); err != nil {
		panic(err)
	}
	defer redis.Close()

	// 自动建表（开发阶段 OK）
	mysql.DB.AutoMigrate(
		&model.User{},
		&model.Gathering{},
		&model.Subscription{},
		&model.NotifyOutbox{},
	)

	smtpPort, _ := strconv.Atoi(envOr("SMTP_PORT", "587"))
	emailCfg := pkg.SMTPConfig{
		Host:     envOr("SMTP_HOST", "127.0.0.1"),
		Port:     smtpPort,
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     envOr("SMTP_FROM", "NoReply <no-reply@example.com>"),
	}

	// outbox 投递：配了 kafka 用 kafka，否则退回日志 sender
	sender := service.LogSender
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		producer, err := pkg.NewKafkaProducer(pkg.KafkaConfig{
			Brokers: strings.Split(brokers, ","),
			Topic:   envOr("KAFKA_TOPIC", "gathering-subscriptions"),
		})
		if err != nil {
			panic(err)
		}
		defer producer.Close()
		sender = service.KafkaSender(producer)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	relayer := service.NewOutboxRelayer(&mysql.OutboxRepository{DB: mysql.DB}, sender)
	go relayer.Run(ctx)

	// Gin
	r := router.InitRouter(emailCfg)
	if err := r.Run(envOr("LISTEN_ADDR", ":8080")); err != nil {
		log.Fatal(err)
	}
}
