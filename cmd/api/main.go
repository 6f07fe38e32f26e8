package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	appbook "github.com/xiebiao/bookcatalog/internal/application/book"
	appcategory "github.com/xiebiao/bookcatalog/internal/application/category"
	apprental "github.com/xiebiao/bookcatalog/internal/application/rental"
	appuser "github.com/xiebiao/bookcatalog/internal/application/user"
	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/domain/category"
	"github.com/xiebiao/bookcatalog/internal/domain/rental"
	"github.com/xiebiao/bookcatalog/internal/domain/user"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/memory"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookcatalog/internal/interface/http/handler"
	"github.com/xiebiao/bookcatalog/internal/interface/http/middleware"
	"github.com/xiebiao/bookcatalog/pkg/circuitbreaker"
	"github.com/xiebiao/bookcatalog/pkg/jwt"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
	"github.com/xiebiao/bookcatalog/pkg/mq"
	"github.com/xiebiao/bookcatalog/pkg/response"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

// txManager 事务管理统一接口
// memory.Store和mysql.TxManager都满足该接口,
// 各领域服务的TxManager接口也都是这个方法集
type txManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// repositories 按存储驱动组装好的仓储集合
type repositories struct {
	userRepo     user.Repository
	bookRepo     book.Repository
	categoryRepo category.Repository
	rentalRepo   rental.Repository
	tx           txManager
}

// main 主程序入口
// 说明：手动依赖注入（wire.go提供Wire版本的MySQL装配）
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	fmt.Printf("✓ 配置加载成功\n")
	fmt.Printf("  - 服务端口: %d\n", cfg.Server.Port)
	fmt.Printf("  - 运行模式: %s\n", cfg.Server.Mode)
	fmt.Printf("  - 存储驱动: %s\n", cfg.Storage.Driver)

	// 2. 初始化Prometheus指标
	metrics.InitMetrics()

	// 3. 初始化链路追踪（可选）
	if cfg.Tracing.Enabled {
		shutdown, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.Endpoint)
		if err != nil {
			log.Fatalf("初始化Tracer失败: %v", err)
		}
		defer shutdown(context.Background())
		fmt.Printf("  - 链路追踪: %s\n", cfg.Tracing.Endpoint)
	}

	// 4. 按配置组装仓储层
	repos, err := buildRepositories(cfg)
	if err != nil {
		log.Fatalf("初始化存储失败: %v", err)
	}

	// 5. 初始化Redis（可选,未启用时client为nil,相关组件自动降级）
	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		log.Fatalf("初始化Redis失败: %v", err)
	}
	sessionStore := redis.NewSessionStore(redisClient)

	if redisClient != nil {
		// 图书详情读缓存:cache-aside + 熔断器保护
		// Redis故障时熔断器打开,读请求直接落到底层仓储
		cache := redis.NewBookCache(redisClient, cfg.Redis.CacheTTL)
		cb := circuitbreaker.NewCircuitBreaker("redis-cache", circuitbreaker.Config{
			MaxRequests: 3,
			Interval:    60 * time.Second,
			Timeout:     10 * time.Second,
			ReadyToTrip: func(counts circuitbreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		})
		repos.bookRepo = redis.NewCachedBookRepository(repos.bookRepo, cache, cb)
		fmt.Printf("  - Redis缓存: %s\n", cfg.Redis.Addr())
	}

	// 6. 初始化消息队列（可选）
	var publisher apprental.EventPublisher
	if cfg.MQ.Enabled {
		p, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, "topic")
		if err != nil {
			log.Fatalf("初始化消息队列失败: %v", err)
		}
		defer p.Close()
		publisher = p

		// 借阅事件审计消费者(演示用途,生产环境应是独立进程)
		go runAuditConsumer(cfg)
	}

	// 7. 依赖注入（手动组装）
	// 学习要点：依赖注入链
	// Repository ← Service ← UseCase ← Handler
	jwtManager := jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)

	// 领域层
	userService := user.NewService(repos.userRepo)
	bookService := book.NewService(repos.bookRepo, repos.tx)
	rentalService := rental.NewService(repos.rentalRepo, repos.userRepo, repos.bookRepo, repos.tx)
	categoryService := category.NewService(repos.categoryRepo, repos.bookRepo, repos.tx)

	// 应用层
	registerUseCase := appuser.NewRegisterUseCase(userService)
	loginUseCase := appuser.NewLoginUseCase(userService, jwtManager, sessionStore)
	getUserUseCase := appuser.NewGetUserUseCase(userService)
	logoutUseCase := appuser.NewLogoutUseCase(sessionStore)

	createBookUseCase := appbook.NewCreateBookUseCase(bookService)
	getBookUseCase := appbook.NewGetBookUseCase(bookService)
	listBooksUseCase := appbook.NewListBooksUseCase(bookService)
	searchBooksUseCase := appbook.NewSearchBooksUseCase(bookService)
	sortBooksUseCase := appbook.NewSortBooksUseCase(bookService)
	updateBookUseCase := appbook.NewUpdateBookUseCase(bookService)
	patchBookUseCase := appbook.NewPatchBookUseCase(bookService)
	deleteBookUseCase := appbook.NewDeleteBookUseCase(bookService)

	rentBookUseCase := apprental.NewRentBookUseCase(rentalService, publisher)
	returnBookUseCase := apprental.NewReturnBookUseCase(rentalService, publisher)
	getRentalUseCase := apprental.NewGetRentalUseCase(rentalService)
	listRentalsUseCase := apprental.NewListRentalsUseCase(rentalService)

	createCategoryUseCase := appcategory.NewCreateCategoryUseCase(categoryService)
	listCategoriesUseCase := appcategory.NewListCategoriesUseCase(categoryService)
	assignCategoryUseCase := appcategory.NewAssignCategoryUseCase(categoryService)
	removeCategoryUseCase := appcategory.NewRemoveCategoryUseCase(categoryService)
	listBookCategoriesUseCase := appcategory.NewListBookCategoriesUseCase(categoryService)

	// 接口层
	userHandler := handler.NewUserHandler(registerUseCase, loginUseCase, getUserUseCase, logoutUseCase)
	bookHandler := handler.NewBookHandler(
		createBookUseCase, getBookUseCase, listBooksUseCase, searchBooksUseCase,
		sortBooksUseCase, updateBookUseCase, patchBookUseCase, deleteBookUseCase,
	)
	rentalHandler := handler.NewRentalHandler(
		rentBookUseCase, returnBookUseCase, getRentalUseCase, listRentalsUseCase,
	)
	categoryHandler := handler.NewCategoryHandler(
		createCategoryUseCase, listCategoriesUseCase, assignCategoryUseCase,
		removeCategoryUseCase, listBookCategoriesUseCase,
	)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, sessionStore)

	// 8. 初始化Gin引擎
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS([]string{"*"}))
	r.Use(middleware.Metrics())

	// 9. 注册路由
	registerRoutes(r, userHandler, bookHandler, rentalHandler, categoryHandler, authMiddleware)

	// 10. 启动服务
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	fmt.Printf("\n🚀 服务启动成功！\n")
	fmt.Printf("   访问地址: http://localhost%s\n", addr)
	fmt.Printf("   健康检查: http://localhost%s/ping\n", addr)
	fmt.Printf("   指标采集: http://localhost%s/metrics\n", addr)
	fmt.Printf("   API文档:  http://localhost%s/swagger/index.html\n", addr)
	fmt.Printf("   图书登记: POST http://localhost%s/api/v1/books\n", addr)
	fmt.Printf("   图书检索: GET  http://localhost%s/api/v1/books/search?author=...\n", addr)
	fmt.Printf("   借阅图书: POST http://localhost%s/api/v1/rentals\n", addr)
	fmt.Printf("\n按Ctrl+C停止服务\n\n")

	if err := r.Run(addr); err != nil {
		log.Fatalf("启动服务失败: %v", err)
	}
}

// buildRepositories 按存储驱动组装仓储
// memory: 进程内存储,重启丢失,适合开发和测试
// mysql:  GORM持久化存储
func buildRepositories(cfg *config.Config) (*repositories, error) {
	switch cfg.Storage.Driver {
	case config.StorageMySQL:
		db, err := mysql.NewDB(cfg)
		if err != nil {
			return nil, err
		}
		return &repositories{
			userRepo:     mysql.NewUserRepository(db),
			bookRepo:     mysql.NewBookRepository(db),
			categoryRepo: mysql.NewCategoryRepository(db),
			rentalRepo:   mysql.NewRentalRepository(db),
			tx:           mysql.NewTxManager(db),
		}, nil

	default: // config.StorageMemory
		store := memory.NewStore()
		return &repositories{
			userRepo:     memory.NewUserRepository(store),
			bookRepo:     memory.NewBookRepository(store),
			categoryRepo: memory.NewCategoryRepository(store),
			rentalRepo:   memory.NewRentalRepository(store),
			tx:           store,
		}, nil
	}
}

// runAuditConsumer 借阅事件审计消费者
// 订阅rental.*事件并打印审计日志
func runAuditConsumer(cfg *config.Config) {
	consumer, err := mq.NewConsumer(
		cfg.MQ.URL,
		cfg.MQ.Exchange,
		"topic",
		"bookcatalog.audit",
		[]string{"rental.*"},
	)
	if err != nil {
		log.Printf("启动审计消费者失败: %v", err)
		return
	}
	defer consumer.Close()

	err = consumer.Consume(context.Background(), func(body []byte) error {
		var event map[string]interface{}
		if err := json.Unmarshal(body, &event); err != nil {
			metrics.IncCounterVec(metrics.MessagesConsumedTotal, map[string]string{
				"routing_key": "rental", "result": "failure",
			})
			return err
		}

		log.Printf("[AUDIT] 借阅事件: %v", event)
		metrics.IncCounterVec(metrics.MessagesConsumedTotal, map[string]string{
			"routing_key": "rental", "result": "success",
		})
		return nil
	})
	if err != nil {
		log.Printf("审计消费者退出: %v", err)
	}
}

// registerRoutes 注册路由
func registerRoutes(
	r *gin.Engine,
	userHandler *handler.UserHandler,
	bookHandler *handler.BookHandler,
	rentalHandler *handler.RentalHandler,
	categoryHandler *handler.CategoryHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Prometheus指标
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger文档
	// 访问 http://localhost:8080/swagger/index.html 查看API文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API路由组
	v1 := r.Group("/api/v1")
	{
		// 用户模块
		users := v1.Group("/users")
		{
			users.POST("/register", userHandler.Register) // 注册
			users.POST("/login", userHandler.Login)       // 登录
			users.GET("/:id", userHandler.GetUser)        // 用户详情
		}

		// 个人信息（需要登录,演示认证中间件）
		authorized := v1.Group("")
		authorized.Use(authMiddleware.RequireAuth())
		{
			authorized.POST("/users/logout", userHandler.Logout) // 登出
			authorized.GET("/profile", func(c *gin.Context) {
				response.Success(c, gin.H{
					"user_id": middleware.GetUserID(c),
					"email":   middleware.GetEmail(c),
				})
			})
		}

		// 图书模块
		books := v1.Group("/books")
		{
			books.POST("", bookHandler.CreateBook)                // 登记
			books.GET("", bookHandler.ListBooks)                  // 列表/排序
			books.GET("/search", bookHandler.SearchBooks)         // 检索
			books.GET("/filter", bookHandler.SearchBooks)         // 检索(别名)
			books.GET("/:id", bookHandler.GetBook)                // 详情
			books.PUT("/:id", bookHandler.UpdateBook)             // 全量更新
			books.PATCH("/:id", bookHandler.PatchBook)            // 部分更新
			books.DELETE("/:id", bookHandler.DeleteBook)          // 删除

			// 图书分类关联
			books.GET("/:id/categories", categoryHandler.ListBookCategories)
			books.POST("/:id/categories", categoryHandler.AssignCategory)
			books.DELETE("/:id/categories/:categoryID", categoryHandler.RemoveCategory)
		}

		// 分类模块
		categories := v1.Group("/categories")
		{
			categories.POST("", categoryHandler.CreateCategory)
			categories.GET("", categoryHandler.ListCategories)
		}

		// 借阅模块
		rentals := v1.Group("/rentals")
		{
			rentals.POST("", rentalHandler.RentBook)              // 借书
			rentals.GET("", rentalHandler.ListRentals)            // 列表
			rentals.GET("/:id", rentalHandler.GetRental)          // 详情
			rentals.POST("/:id/return", rentalHandler.ReturnBook) // 还书
		}
	}
}
