package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"poi-radar/internal/database"
	"poi-radar/internal/domain/repository"
	"poi-radar/internal/domain/service"
	"poi-radar/internal/handler"
	pgdb "poi-radar/internal/infrastructure/database"
	fsinfra "poi-radar/internal/infrastructure/firestore"
	"poi-radar/internal/infrastructure/overpass"
	repoimpl "poi-radar/internal/repository"
	"poi-radar/internal/usecase"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found, using system environment variables")
	}

	// POIリポジトリの選択（Supabase設定があれば永続、なければインメモリ）
	poiRepo := buildPOIRepository()

	// セッション永続化（Firestore設定があれば有効）
	sessionRepo := buildSessionRepository()

	overpassClient := overpass.NewClient(os.Getenv("OVERPASS_ENDPOINT"))
	proximityEngine := service.NewProximityService()

	importUseCase := usecase.NewImportUseCase(poiRepo, overpassClient)
	poisUseCase := usecase.NewPOIsUseCase(poiRepo)
	proximityUseCase := usecase.NewProximityUseCase(poiRepo, proximityEngine, sessionRepo)

	importHandler := handler.NewImportHandler(importUseCase)
	poisHandler := handler.NewPOIsHandler(importUseCase, proximityUseCase, poisUseCase)
	positionHandler := handler.NewPositionHandler(proximityUseCase)

	r := gin.Default()

	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy", "service": "poi-radar"})
	})

	pois := r.Group("/pois")
	{
		pois.GET("", poisHandler.GetPOIs)
		pois.POST("", poisHandler.CreatePOI)
		pois.GET("/nearby", poisHandler.GetNearby)
		pois.GET("/stats", poisHandler.GetStats)
		pois.POST("/:id/visited", poisHandler.MarkVisited)
		pois.DELETE("/source/:source", poisHandler.DeleteSource)
		pois.POST("/import/gpx", importHandler.ImportGPX)
		pois.POST("/import/bikeshare", importHandler.ImportBikeShare)
		pois.POST("/import/overpass", importHandler.ImportOverpass)
	}

	r.POST("/position", positionHandler.PostPosition)

	session := r.Group("/session")
	{
		session.POST("/reset", positionHandler.ResetSession)
		session.POST("/save", positionHandler.SaveSession)
		session.POST("/restore/:id", positionHandler.RestoreSession)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	fmt.Printf("poi-radar server starting on :%s...\n", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("サーバー起動失敗: %v", err)
	}
}

// buildPOIRepository は環境変数に応じてPOIリポジトリを構築する
// 優先順位: PostgreSQL → Supabase → インメモリ
func buildPOIRepository() repository.POIsRepository {
	if os.Getenv("DATABASE_URL") != "" {
		client, err := pgdb.NewPostgreSQLClient()
		if err != nil {
			log.Fatalf("PostgreSQLクライアント初期化失敗: %v", err)
		}
		fmt.Println("✅ PostgreSQL POI repository enabled")
		return repoimpl.NewPostgresPOIsRepository(client)
	}

	if os.Getenv("SUPABASE_URL") != "" {
		supabaseClient, err := database.NewSupabaseClient()
		if err != nil {
			log.Fatalf("Supabaseクライアント初期化失敗: %v", err)
		}
		if err := supabaseClient.HealthCheck(); err != nil {
			log.Fatalf("Supabaseヘルスチェック失敗: %v", err)
		}
		fmt.Println("✅ Supabase POI repository enabled")
		return repoimpl.NewSupabasePOIsRepository(supabaseClient)
	}

	fmt.Println("⚠️  永続ストレージ未設定: インメモリレジストリのみで起動します")
	return repoimpl.NewMemoryPOIsRepository()
}

// buildSessionRepository はFirestore設定があればセッションリポジトリを構築する
func buildSessionRepository() repository.SessionStateRepository {
	projectID := os.Getenv("FIRESTORE_PROJECT_ID")
	if projectID == "" {
		fmt.Println("⚠️  FIRESTORE_PROJECT_ID未設定: セッション永続化は無効です")
		return nil
	}

	client, err := fsinfra.NewFirestoreClient(context.Background(), projectID)
	if err != nil {
		log.Fatalf("Firestoreクライアント初期化失敗: %v", err)
	}

	fmt.Println("✅ Firestore session repository enabled")
	return repoimpl.NewFirestoreSessionRepository(client.GetClient())
}
