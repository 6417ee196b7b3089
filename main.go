// main.go
package main

import (
	"context"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"munchmarket/blob"
	"munchmarket/cart"
	"munchmarket/catalog"
	"munchmarket/controllers"
	"munchmarket/directory"
	"munchmarket/routes"
	"munchmarket/utils"
	"munchmarket/vendorstore"
)

const databaseName = "munchmarket"

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file found, proceeding with environment variables")
	}

	// Set the JWT secret key
	utils.JwtKey = []byte(os.Getenv("JWT_SECRET"))

	// Connect to MongoDB and Redis
	client, err := utils.ConnectDB()
	if err != nil {
		logger.Fatal("mongo connection failed", zap.Error(err))
	}
	defer func() {
		if err := client.Disconnect(context.TODO()); err != nil {
			logger.Error("mongo disconnect failed", zap.Error(err))
		}
	}()

	redisClient, err := utils.ConnectRedis()
	if err != nil {
		logger.Fatal("redis connection failed", zap.Error(err))
	}
	defer redisClient.Close()

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8000"
	}

	// Storage layers
	blobStorage, err := blob.NewGridFSStorage(client.Database(databaseName), baseURL)
	if err != nil {
		logger.Fatal("blob storage init failed", zap.Error(err))
	}
	vendors := vendorstore.NewStore(client, databaseName, blobStorage)
	users := directory.NewMongoUsers(client, databaseName)
	carts := cart.NewRedisStore(redisClient)
	orders := cart.NewMongoOrders(client, databaseName)
	snapshots := catalog.NewRedisSnapshotCache(redisClient)

	// Services
	emailService := utils.NewEmailService()
	provider := directory.NewMongoProvider(client, databaseName, emailService)
	dir := directory.NewClient(provider, users, vendors, logger)
	catalogService := catalog.NewService(vendors, snapshots, logger)

	// Initialize controllers
	authController := controllers.NewAuthController(dir, carts, logger)
	catalogController := controllers.NewCatalogController(catalogService, logger)
	cartController := controllers.NewCartController(carts, orders, logger)
	vendorController := controllers.NewVendorController(vendors, logger)
	filesController := controllers.NewFilesController(blobStorage, logger)

	// Set up the router
	router := mux.NewRouter()
	routes.RegisterRoutes(router, authController, catalogController, cartController, vendorController, filesController)

	// Start the server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	logger.Info("server starting", zap.String("port", port))
	if err := http.ListenAndServe(":"+port, router); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
