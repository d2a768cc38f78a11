package main

import (
	"os"

	"uf-ai/backend/internal/app"
)

// @title        UF AI API
// @version      1.0
// @description  Chat engine for UF AI: sessions, streamed responses, avatars and background enrichment.
// @BasePath     /api
func main() {
	os.Exit(app.Run())
}
