package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"DensityMap-App/internal/application"
	restdb "DensityMap-App/internal/database"
	domainrepo "DensityMap-App/internal/domain/repository"
	"DensityMap-App/internal/handler"
	"DensityMap-App/internal/infrastructure/database"
	firestoreinfra "DensityMap-App/internal/infrastructure/firestore"
	"DensityMap-App/internal/infrastructure/h3"
	repoimpl "DensityMap-App/internal/repository"
	"DensityMap-App/internal/usecase"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found, using system environment variables")
	}

	projectID := os.Getenv("GOOGLE_CLOUD_PROJECT")
	supabaseURL := os.Getenv("SUPABASE_URL")
	supabasePassword := os.Getenv("SUPABASE_DB_PASSWORD")

	if projectID == "" || supabaseURL == "" || supabasePassword == "" {
		fmt.Println("⚠️  環境変数が設定されていません:")
		fmt.Println("必要な環境変数:")
		fmt.Println("  - GOOGLE_CLOUD_PROJECT")
		fmt.Println("  - SUPABASE_URL")
		fmt.Println("  - SUPABASE_DB_PASSWORD")
		fmt.Println("\n.envファイルを作成するか、環境変数を設定してください")
		log.Fatal("Environment variables not set")
	}

	ctx := context.Background()

	fmt.Println("Initializing Firestore client...")
	firestoreClient, err := firestoreinfra.NewFirestoreClient(ctx, projectID)
	if err != nil {
		log.Fatalf("Firestoreクライアント初期化失敗: %v", err)
	}
	defer firestoreClient.Close()

	// セル集計の永続化先を選択（SUPABASE_ANON_KEYがあればREST API、無ければ直接接続）
	var aggregatesRepo domainrepo.CellAggregatesRepository
	if os.Getenv("SUPABASE_ANON_KEY") != "" {
		fmt.Println("Initializing Supabase client...")
		supabaseClient, err := restdb.NewSupabaseClient()
		if err != nil {
			log.Fatalf("Supabaseクライアント初期化失敗: %v", err)
		}

		fmt.Println("Performing Supabase health check...")
		if err := supabaseClient.HealthCheck(); err != nil {
			log.Fatalf("Supabaseヘルスチェック失敗: %v", err)
		}
		fmt.Println("✅ Supabase connection successful!")

		aggregatesRepo = repoimpl.NewSupabaseCellAggregatesRepository(supabaseClient)
	} else {
		fmt.Println("Initializing PostgreSQL client...")
		postgresClient, err := database.NewPostgreSQLClient()
		if err != nil {
			log.Fatalf("PostgreSQLクライアント初期化失敗: %v", err)
		}
		defer postgresClient.Close()

		fmt.Println("Performing PostgreSQL health check...")
		if err := postgresClient.HealthCheck(); err != nil {
			log.Fatalf("PostgreSQLヘルスチェック失敗: %v", err)
		}
		fmt.Println("✅ PostgreSQL connection successful!")

		aggregatesRepo = repoimpl.NewPostgresCellAggregatesRepository(postgresClient)
	}

	// 依存関係の組み立て
	indexProvider := h3.NewH3IndexProvider()
	snapshotRepo := repoimpl.NewFirestoreDensitySnapshotRepository(firestoreClient.GetClient())

	densityUseCase := usecase.NewDensityUseCase(indexProvider, snapshotRepo)
	densitiesService := application.NewDensitiesService(snapshotRepo, aggregatesRepo)

	densityHandler := handler.NewDensityHandler(densityUseCase)
	aggregatesHandler := handler.NewCellAggregatesHandler(densitiesService)

	// ルーティングの設定
	r := gin.Default()

	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy", "service": "DensityMap-App"})
	})

	r.POST("/densities/compute", densityHandler.PostDensityCompute)
	r.GET("/densities/:id", densityHandler.GetDensitySnapshot)
	r.GET("/densities/:id/geojson", densityHandler.GetDensityGeoJSON)

	r.POST("/densities/:id/persist", aggregatesHandler.PostPersistSnapshot)
	r.GET("/densities/:id/cells", aggregatesHandler.GetCellsByBoundingBox)
	r.DELETE("/densities/:id/cells", aggregatesHandler.DeleteSnapshot)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	fmt.Printf("DensityMap-App server starting on :%s...\n", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("サーバーの起動に失敗: %v", err)
	}
}
