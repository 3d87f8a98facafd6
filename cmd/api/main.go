package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-pos-ws/internal/handler"
	"go-pos-ws/internal/middleware"
	"go-pos-ws/internal/model"
	"go-pos-ws/internal/service"
	"go-pos-ws/internal/state"
	"go-pos-ws/internal/store"
	"go-pos-ws/internal/ws"
	"go-pos-ws/pkg/jwt"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup snapshot store and load state
	snaps := store.FromEnv()
	appState := loadState(snaps)

	// 3. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 4. Dependency Injection (Wiring Layers)
	posService := service.NewPOSService(appState, snaps, wsHub)
	authService := service.NewAuthService(posService)
	reportService := service.NewReportService(posService)

	authHandler := handler.NewAuthHandler(authService)
	productHandler := handler.NewProductHandler(posService)
	cartHandler := handler.NewCartHandler(posService)
	saleHandler := handler.NewSaleHandler(posService)
	shiftHandler := handler.NewShiftHandler(posService)
	customerHandler := handler.NewCustomerHandler(posService)
	reportHandler := handler.NewReportHandler(reportService)
	adminHandler := handler.NewAdminHandler(posService)

	// 5. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "POS Core v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 6. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	api.Post("/auth/login", authHandler.Login)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(authService))

	// Catalog
	protected.Get("/products", productHandler.GetProducts)
	protected.Get("/products/:id", productHandler.GetProduct)
	protected.Post("/products", middleware.RequireRole(model.RoleAdmin), productHandler.CreateProduct)
	protected.Put("/products/:id", middleware.RequireRole(model.RoleAdmin), productHandler.UpdateProduct)
	protected.Delete("/products/:id", middleware.RequireRole(model.RoleAdmin), productHandler.DeleteProduct)

	// Cart
	protected.Get("/cart", cartHandler.GetCart)
	protected.Post("/cart/items", cartHandler.AddItem)
	protected.Put("/cart/items/:productId", cartHandler.UpdateItem)
	protected.Delete("/cart/items/:productId", cartHandler.RemoveItem)
	protected.Delete("/cart", cartHandler.ClearCart)

	// Checkout and sales
	protected.Post("/checkout", saleHandler.Checkout)
	protected.Get("/sales", saleHandler.GetSales)
	protected.Get("/sales/:id", saleHandler.GetSale)
	protected.Post("/sales/:id/void", saleHandler.VoidSale)

	// Shifts
	protected.Post("/shifts", shiftHandler.StartShift)
	protected.Get("/shifts", shiftHandler.GetShifts)
	protected.Get("/shifts/current", shiftHandler.GetCurrentShift)
	protected.Get("/shifts/:id", shiftHandler.GetShift)
	protected.Post("/shifts/:id/close", shiftHandler.EndShift)

	// Customers
	protected.Get("/customers", customerHandler.GetCustomers)
	protected.Post("/customers", customerHandler.CreateCustomer)
	protected.Put("/customers/:id", customerHandler.UpdateCustomer)
	protected.Delete("/customers/:id", customerHandler.DeleteCustomer)

	// Reports
	protected.Get("/reports/sales", reportHandler.GetSalesSummary)
	protected.Get("/reports/shifts/:id", reportHandler.GetShiftReport)

	// Users / settings / ops (admin only)
	protected.Get("/users", middleware.RequireRole(model.RoleAdmin), adminHandler.GetUsers)
	protected.Post("/users", middleware.RequireRole(model.RoleAdmin), adminHandler.CreateUser)
	protected.Get("/settings", adminHandler.GetSettings)
	protected.Put("/settings", middleware.RequireRole(model.RoleAdmin), adminHandler.UpdateSettings)
	protected.Post("/admin/flush", middleware.RequireRole(model.RoleAdmin), adminHandler.Flush)

	// WebSocket Route (token passed as query param by the terminal)
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			claims, err := jwt.ValidateToken(c.Query("token"))
			if err != nil {
				return c.SendStatus(fiber.StatusUnauthorized)
			}
			c.Locals("ws_user_id", claims.UserID)
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		userID, _ := c.Locals("ws_user_id").(string)
		client := &ws.Client{Conn: c, UserID: userID}
		wsHub.Register <- client
		defer func() { wsHub.Unregister <- client }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 7. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	// Final synchronous flush so in-flight mutations land on disk.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := posService.Flush(ctx); err != nil {
		log.Println("Warning: final snapshot flush failed:", err)
	}

	log.Println("Server exited")
}

// loadState reads the stored snapshot. A missing or corrupt document
// falls back to the default state with the seeded admin user.
func loadState(snaps store.SnapshotStore) *state.AppState {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	doc, err := snaps.Load(ctx)
	if err != nil {
		if !errors.Is(err, store.ErrNoSnapshot) {
			log.Println("Warning: snapshot load failed, starting from defaults:", err)
		}
		appState := state.New()
		log.Printf("✅ Seeded default admin user: %s / %s", state.DefaultAdminUsername, state.DefaultAdminPassword)
		return appState
	}

	appState := state.Decode(doc)
	log.Printf("Loaded state: %d products, %d sales, %d shifts, %d users",
		len(appState.Products), len(appState.Sales), len(appState.Shifts), len(appState.Users))
	return appState
}
