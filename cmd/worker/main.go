package main

import (
	"ModelFlow/config"
	"ModelFlow/internal/repo"
	"ModelFlow/internal/storage"
	"ModelFlow/internal/worker"
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	config.InitConfig()
	repo.InitMysql()
	repo.InitRedis()
	storage.InitMinio()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := repo.EnableKeyspaceNotifications(ctx); err != nil {
		log.Printf("enable redis keyspace notifications failed: %v", err)
	} else {
		ready := make(chan struct{})
		go repo.ListenRedisExpired(ctx, repo.Redis, ready)
		<-ready
	}

	scheduler := worker.StartHousekeeping(ctx)
	defer scheduler.Stop()

	log.Println("email worker started")
	if err := worker.RunEmailWorker(ctx); err != nil {
		log.Fatalf("email worker stopped: %v", err)
	}
}
