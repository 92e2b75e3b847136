package config

import (
	"context"
	"time"

	"github.com/chenson2018/website/global"
	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

// initRedis connects the home listing cache. An empty address leaves
// global.RedisDB nil and every request goes to the database.
func initRedis() {
	RedisConf := AppConfig.Redis
	if RedisConf.Addr == "" {
		log.Info("redis cache disabled")
		return
	}

	RedisClient := redis.NewClient(&redis.Options{
		Addr:     RedisConf.Addr,
		Password: RedisConf.Password,
		DB:       RedisConf.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := RedisClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	log.WithFields(log.Fields{
		"addr": RedisConf.Addr,
		"ttl":  RedisConf.TTL,
	}).Info("redis cache enabled")

	global.RedisDB = RedisClient
}

func CloseRedis() error {
	if global.RedisDB == nil {
		return nil
	}
	return global.RedisDB.Close()
}
