package main

import (
	"log"
	"os"

	"emoguchi/config"
	_ "emoguchi/config/swagger"
	"emoguchi/middleware"
	"emoguchi/routes"
	"emoguchi/services/game"
	"emoguchi/services/phrases"
	redis_services "emoguchi/services/redis"
	"emoguchi/services/registry"
	"emoguchi/services/socket_io"
	socketio_types "emoguchi/services/socket_io/types"
	sync_services "emoguchi/services/sync"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"gorm.io/gorm"
)

// @title EMOGUCHI API
// @version 1.0
// @description Gin-Gonic server for the EMOGUCHI voice emotion party game
// @host localhost:8080
// @BasePath /
func main() {
	godotenv.Load()
	log.Println("Setting up server...")

	if os.Getenv("PROD") == "true" {
		gin.SetMode(gin.ReleaseMode)
	}

	// PostgreSQL is the optional durable mirror for finished sessions. The
	// game itself is fully in-memory, so a missing database only disables
	// score history.
	var gormDB *gorm.DB
	if os.Getenv("POSTGRES_DISABLED") != "true" {
		db, err := config.ConnectGORM()
		if err != nil {
			log.Printf("Warning: PostgreSQL unavailable, session history disabled: %v", err)
		} else {
			gormDB = db
			log.Println("GORM Connected")

			if os.Getenv("MIGRATE_POSTGRES") == "true" {
				log.Println("Migrating PostgreSQL database...")
				if err := config.MigrateDatabase(gormDB); err != nil {
					log.Printf("Warning: Database migration failed: %v", err)
				} else {
					log.Println("Database migrated successfully")
				}
			}
			sqlDB, err := gormDB.DB()
			if err != nil {
				log.Fatalf("Error reading GORM PostgreSQL instance: %v", err)
			}
			defer sqlDB.Close()
		}
	}

	// Redis holds room snapshots and the phrase prefetch cache, also
	// optional for the same reason.
	redisClient, err := config.Connect_redis()
	if err != nil {
		log.Printf("Warning: Redis unavailable, snapshots and phrase cache disabled: %v", err)
		redisClient = nil
	} else {
		log.Println("Connection to Redis successful")
		defer redis_services.CloseRedis(redisClient)
	}

	r := gin.Default()

	middleware.SetUpMiddleware(r)

	var sio socket_io.MySocketServer

	var supplier phrases.Supplier
	if httpSupplier := phrases.NewHTTPSupplier(); httpSupplier != nil {
		supplier = httpSupplier
	} else {
		log.Println("PHRASE_API_URL not set, using built-in phrases")
		supplier = &phrases.StaticSupplier{}
	}

	service := game.NewService(
		registry.New(),
		supplier,
		sync_services.NewSyncManager(redisClient, gormDB),
		redisClient,
		(*socketio_types.SocketServer)(&sio),
		os.Getenv("HOST_TOKEN_SECRET"),
	)

	routes.SetupRoutes(r, service)
	sio.Start(r, service)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if os.Getenv("USE_HTTPS") == "true" {
		certFile := os.Getenv("TLS_CERT_FILE")
		keyFile := os.Getenv("TLS_KEY_FILE")
		if err := r.RunTLS(":"+port, certFile, keyFile); err != nil {
			log.Fatalf("Error starting server: %v", err)
		}
	} else {
		if err := r.Run(":" + port); err != nil {
			log.Fatalf("Error starting server: %v", err)
		}
	}
}
