package main

import (
	"context"
	"database/sql"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"
	"google.golang.org/grpc"

	"github.com/veloshop/storefront/internal/adapter/handler"
	"github.com/veloshop/storefront/internal/adapter/handler/pb"
	"github.com/veloshop/storefront/internal/adapter/storage"
	"github.com/veloshop/storefront/internal/core/domain"
	"github.com/veloshop/storefront/internal/core/service"
	"github.com/veloshop/storefront/internal/port"
)

const (
	defaultHTTPAddr  = ":8080"
	defaultGRPCAddr  = ":50051"
	defaultMySQLDSN  = "root:root@tcp(localhost:3306)/storefront?parseTime=true"
	defaultRedisAddr = "localhost:6379"
	workerCount      = 10
	queueSize        = 10000
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	httpAddr := envOr("HTTP_ADDR", defaultHTTPAddr)
	grpcAddr := envOr("GRPC_ADDR", defaultGRPCAddr)
	mysqlDSN := envOr("MYSQL_DSN", defaultMySQLDSN)
	redisAddr := envOr("REDIS_ADDR", defaultRedisAddr)

	// Initialize MySQL
	db, err := sql.Open("mysql", mysqlDSN)
	if err != nil {
		log.Fatalf("failed to connect mysql: %v", err)
	}
	db.SetMaxOpenConns(50)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("failed to ping mysql: %v", err)
	}
	log.Println("connected to mysql")

	// Initialize Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		PoolSize: 100,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("failed to connect redis: %v", err)
	}
	log.Println("connected to redis")

	// Initialize adapters
	redisAdapter := storage.NewRedisAdapter(rdb)
	mysqlAdapter := storage.NewMySQLAdapter(db)

	// Initialize services
	catalogService := service.NewCatalogService(mysqlAdapter)
	stockService := service.NewStockService(mysqlAdapter, redisAdapter)
	cartService := service.NewCartService(stockService, redisAdapter)
	checkoutService := service.NewCheckoutService(redisAdapter, cartService, queueSize)

	// Start worker pool persisting accepted orders
	var wg sync.WaitGroup
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			workerLoop(id, checkoutService.GetOrderQueue(), mysqlAdapter, redisAdapter)
		}(i)
	}
	log.Printf("started %d workers", workerCount)

	// Initialize gRPC server
	grpcServer := grpc.NewServer()
	grpcHandler := handler.NewGRPCHandler(stockService)
	pb.RegisterStockServiceServer(grpcServer, grpcHandler)

	// Start gRPC server
	lis, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		log.Fatalf("failed to listen: %v", err)
	}

	go func() {
		log.Printf("gRPC server listening on %s", grpcAddr)
		if err := grpcServer.Serve(lis); err != nil {
			log.Printf("gRPC server error: %v", err)
		}
	}()

	// Initialize HTTP server
	httpHandler := handler.NewHTTPHandler(catalogService, stockService, cartService, checkoutService)
	mux := http.NewServeMux()
	httpHandler.Register(mux)

	httpServer := &http.Server{
		Addr:    httpAddr,
		Handler: mux,
	}

	go func() {
		log.Printf("HTTP server listening on %s", httpAddr)
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			log.Printf("HTTP server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	// Stop HTTP server
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	httpServer.Shutdown(shutdownCtx)
	log.Println("HTTP server stopped")

	// Stop gRPC server
	grpcServer.GracefulStop()
	log.Println("gRPC server stopped")

	// Close order queue and wait for workers
	checkoutService.Close()
	wg.Wait()
	log.Println("workers stopped")

	// Close connections
	rdb.Close()
	db.Close()
	log.Println("connections closed")
}

func workerLoop(id int, queue <-chan domain.Order, db port.DatabaseRepository, cache port.CacheRepository) {
	for order := range queue {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)

		if err := db.CreateOrder(ctx, order); err != nil {
			log.Printf("worker %d: failed to save order %s: %v", id, order.ID, err)

			// Return the Redis reservations taken at checkout
			for _, line := range order.Lines {
				if rollbackErr := cache.IncrementStock(ctx, line.ProductID, line.Quantity); rollbackErr != nil {
					log.Printf("worker %d: CRITICAL rollback failed for order %s product %d: %v",
						id, order.ID, line.ProductID, rollbackErr)
				}
			}
			log.Printf("worker %d: rolled back stock for order %s", id, order.ID)
		} else {
			log.Printf("worker %d: saved order %s", id, order.ID)
		}

		cancel()
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
