package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"storefront/internal/config"
	"storefront/internal/domain/model"
	"storefront/internal/handler"
	"storefront/internal/infra/db"
	infraRepo "storefront/internal/infra/repository"
	"storefront/internal/notify"
	"storefront/internal/server"
	"storefront/internal/usecase"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	//.envは無ければ環境変数だけで動く
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := newLogger(cfg.GoEnv)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		logger.Fatal("db connect failed", zap.Error(err))
	}
	if err := gormDB.AutoMigrate(
		&model.Product{},
		&model.Cart{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.Address{},
		&model.WishlistItem{},
		&model.StoreSettings{},
		&model.InventoryAdjustment{},
		&model.OutboxEvent{},
	); err != nil {
		logger.Fatal("migrate failed", zap.Error(err))
	}

	//Repository（GORM実装）生成
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	cartItemRepo := infraRepo.NewCartItemGormRepository(gormDB)
	addressRepo := infraRepo.NewAddressGormRepository(gormDB)
	wishlistRepo := infraRepo.NewWishlistGormRepository(gormDB)
	settingsRepo := infraRepo.NewSettingsGormRepository(gormDB)
	outboxRepo := infraRepo.NewOutboxGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//Usecase生成
	productUC := usecase.NewProductUsecase(productRepo, txManager)
	cartUC := usecase.NewCartUsecase(cartRepo, cartItemRepo, productRepo)
	orderUC := usecase.NewOrderUsecase(txManager)
	adminOrderUC := usecase.NewAdminOrderUsecase(txManager)
	addressUC := usecase.NewAddressUsecase(addressRepo)
	wishlistUC := usecase.NewWishlistUsecase(wishlistRepo, productRepo)
	settingsUC := usecase.NewSettingsUsecase(settingsRepo)

	//Handler生成
	productH := handler.NewProductHandler(productUC)
	cartH := handler.NewCartHandler(cartUC)
	orderH := handler.NewOrderHandler(orderUC)
	addressH := handler.NewAddressHandler(addressUC)
	wishlistH := handler.NewWishlistHandler(wishlistUC)
	settingsH := handler.NewSettingsHandler(settingsUC)
	adminOrderH := handler.NewAdminOrderHandler(adminOrderUC)
	adminProductH := handler.NewAdminProductHandler(productUC)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	//通知のポーラー（ブローカー未設定ならイベントはDBに溜まるだけ）
	if len(cfg.KafkaBrokers) > 0 {
		publisher := notify.NewKafkaPublisher(cfg.KafkaTopic, cfg.KafkaBrokers...)
		defer publisher.Close()

		poller := notify.NewOutboxPoller(outboxRepo, publisher, logger)
		go poller.Run(ctx)
	} else {
		logger.Warn("KAFKA_BROKERS not set, outbox poller disabled")
	}

	e := server.New(cfg, logger)
	server.RegisterRoutes(e, cfg,
		productH, cartH, orderH, addressH, wishlistH, settingsH,
		adminOrderH, adminProductH,
	)

	addr := cfg.Port
	if addr[0] != ':' {
		addr = ":" + addr
	}

	go func() {
		<-ctx.Done()
		_ = e.Shutdown(context.Background())
	}()

	if err := server.Start(e, addr); err != nil {
		logger.Info("server stopped", zap.Error(err))
	}
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "prod" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
