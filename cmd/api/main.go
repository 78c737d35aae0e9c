package main

import (
	"log"

	"agrosoft/internal/config"
	"agrosoft/internal/domain/model"
	"agrosoft/internal/handler"
	"agrosoft/internal/infra/db"
	infraRepo "agrosoft/internal/infra/repository"
	"agrosoft/internal/server"
	"agrosoft/internal/usecase"

	"github.com/joho/godotenv"
)

func main() {
	//.envは無くても動く（本番は環境変数直接）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		log.Fatal(err)
	}

	if err := gormDB.AutoMigrate(
		&model.Role{},
		&model.User{},
		&model.Category{},
		&model.Subcategory{},
		&model.Product{},
		&model.Inventory{},
		&model.InventoryMovement{},
		&model.Cart{},
		&model.CartItem{},
		&model.OrderStatus{},
		&model.PaymentMethod{},
		&model.Order{},
		&model.OrderItem{},
		&model.Discount{},
		&model.ProductDiscount{},
		&model.Review{},
		&model.PQRSType{},
		&model.PQRS{},
	); err != nil {
		log.Fatal(err)
	}

	//ルックアップ行（estados, métodos, roles, tipos）を冪等に投入
	if err := db.Seed(gormDB); err != nil {
		log.Fatal(err)
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	inventoryRepo := infraRepo.NewInventoryGormRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	subcategoryRepo := infraRepo.NewSubcategoryGormRepository(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	cartItemRepo := infraRepo.NewCartItemGormRepository(gormDB)
	discountRepo := infraRepo.NewDiscountGormRepository(gormDB)
	lookupRepo := infraRepo.NewLookupGormRepository(gormDB)
	reviewRepo := infraRepo.NewReviewGormRepository(gormDB)
	pqrsRepo := infraRepo.NewPQRSGormRepository(gormDB)
	reportRepo := infraRepo.NewReportGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//Usecase生成
	authUC := usecase.NewAuthUsecase(cfg, userRepo)
	productUC := usecase.NewProductUsecase(txManager, productRepo, inventoryRepo, discountRepo)
	catalogUC := usecase.NewCatalogUsecase(categoryRepo, subcategoryRepo, lookupRepo)
	cartUC := usecase.NewCartUsecase(cartRepo, cartItemRepo, productRepo, inventoryRepo)
	orderUC := usecase.NewOrderUsecase(txManager)
	discountUC := usecase.NewDiscountUsecase(txManager, discountRepo)
	pqrsUC := usecase.NewPQRSUsecase(pqrsRepo)
	reviewUC := usecase.NewReviewUsecase(reviewRepo, productRepo)
	reportUC := usecase.NewReportUsecase(reportRepo)

	//Handler生成
	h := server.Handlers{
		Auth:     handler.NewAuthHandler(authUC),
		Product:  handler.NewProductHandler(productUC),
		Category: handler.NewCategoryHandler(catalogUC),
		Cart:     handler.NewCartHandler(cartUC),
		Order:    handler.NewOrderHandler(orderUC),
		Discount: handler.NewDiscountHandler(discountUC),
		PQRS:     handler.NewPQRSHandler(pqrsUC),
		Review:   handler.NewReviewHandler(reviewUC),
		Report:   handler.NewReportHandler(reportUC),
	}

	//Server起動
	e := server.New(cfg, h)
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
