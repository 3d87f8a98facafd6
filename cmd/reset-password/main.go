package main

import (
	"context"
	"log"
	"time"

	"go-pos-ws/internal/state"
	"go-pos-ws/internal/store"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, replying on system env")
	}

	// 2. Load the state snapshot
	snaps := store.FromEnv()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	doc, err := snaps.Load(ctx)
	if err != nil {
		log.Fatalf("❌ Failed to load state snapshot: %v", err)
	}
	appState := state.Decode(doc)

	// 3. Find Admin
	username := state.DefaultAdminUsername
	user := appState.FindUserByUsername(username)
	if user == nil {
		log.Fatalf("❌ User %s not found in snapshot", username)
	}

	// 4. Hash new password
	newPassword := state.DefaultAdminPassword
	if err := user.SetPassword(newPassword); err != nil {
		log.Fatalf("❌ Failed to hash password: %v", err)
	}

	// 5. Save the snapshot back
	out, err := appState.Encode()
	if err != nil {
		log.Fatalf("❌ Failed to encode state: %v", err)
	}
	if err := snaps.Save(ctx, out); err != nil {
		log.Fatalf("❌ Failed to save state snapshot: %v", err)
	}

	log.Printf("✅ Success! Password for %s has been reset to: %s", username, newPassword)
	log.Printf("Current Hash in snapshot: %s", user.Password)
}
