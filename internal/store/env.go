package store

import (
	"context"
	"log"
	"os"

	"go-pos-ws/pkg/database"

	"github.com/go-redis/redis/v8"
)

// FromEnv picks the snapshot backend from POS_STORE:
// file (default), postgres, or redis.
func FromEnv() SnapshotStore {
	switch os.Getenv("POS_STORE") {
	case "postgres":
		db := database.ConnectDB()
		snaps, err := NewPostgresStore(db)
		if err != nil {
			log.Fatal("Failed to prepare snapshot table. \n", err)
		}
		log.Println("Using postgres snapshot store")
		return snaps
	case "redis":
		addr := os.Getenv("REDIS_ADDR")
		if addr == "" {
			addr = "localhost:6379"
		}
		client := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: os.Getenv("REDIS_PASSWORD"),
		})
		if err := client.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to connect to redis. \n", err)
		}
		log.Println("Using redis snapshot store")
		return NewRedisStore(client)
	default:
		path := os.Getenv("POS_STATE_FILE")
		if path == "" {
			path = "pos-state.json"
		}
		log.Println("Using file snapshot store:", path)
		return NewFileStore(path)
	}
}
