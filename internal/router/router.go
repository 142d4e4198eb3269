package router

import (
	"noticegen-web/internal/config"
	"noticegen-web/internal/middleware"
	"noticegen-web/internal/models"
	"noticegen-web/internal/repository"
	"noticegen-web/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

func Setup(app *fiber.App, db *sqlx.DB, redis *redis.Client, cfg *config.Config) {
	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"app":    cfg.AppName,
		})
	})

	// Web routes (HTML)
	web := app.Group("")
	setupWebRoutes(web, db, cfg)

	// API routes (JSON)
	api := app.Group("/api/v1")
	SetupAPIRoutes(api, db, redis, cfg)
}

func setupWebRoutes(router fiber.Router, db *sqlx.DB, cfg *config.Config) {
	userRepo := repository.NewUserRepository(db)
	authService := service.NewAuthService(userRepo, cfg)
	store := session.New()

	// Authentication pages
	router.Get("/login", middleware.GuestMiddleware(store), func(c *fiber.Ctx) error {
		return c.Render("auth/login", fiber.Map{
			"Title": "Login",
		})
	})

	router.Post("/login", func(c *fiber.Ctx) error {
		req := models.LoginRequest{
			Username: c.FormValue("username"),
			Password: c.FormValue("password"),
		}
		if _, err := authService.WebLogin(req, c, store); err != nil {
			return c.Render("auth/login", fiber.Map{
				"Title": "Login",
				"Error": "Invalid username or password",
			})
		}
		return c.Redirect("/")
	})

	router.Get("/register", middleware.GuestMiddleware(store), func(c *fiber.Ctx) error {
		return c.Render("auth/register", fiber.Map{
			"Title": "Register",
		})
	})

	router.Post("/register", func(c *fiber.Ctx) error {
		req := models.RegisterRequest{
			Name:     c.FormValue("name"),
			Username: c.FormValue("username"),
			Email:    c.FormValue("email"),
			Password: c.FormValue("password"),
		}
		if _, err := authService.Register(req); err != nil {
			return c.Render("auth/register", fiber.Map{
				"Title": "Register",
				"Error": err.Error(),
			})
		}
		return c.Redirect("/login")
	})

	router.Get("/logout", func(c *fiber.Ctx) error {
		authService.WebLogout(c, store)
		return c.Redirect("/login")
	})

	// Application pages (session protected). Every page gets the logged-in
	// user and the API token; page scripts call /api/v1 with the token.
	pages := router.Group("", middleware.WebAuthMiddleware(store))

	pageData := func(c *fiber.Ctx, title string) fiber.Map {
		user, _ := authService.GetCurrentUser(c, store)
		return fiber.Map{
			"Title": title,
			"User":  user,
			"Token": authService.APIToken(c, store),
		}
	}

	pages.Get("/", func(c *fiber.Ctx) error {
		return c.Render("dashboard/index", pageData(c, "Dashboard"))
	})

	pages.Get("/batches", func(c *fiber.Ctx) error {
		return c.Render("batches/index", pageData(c, "Notice Batches"))
	})

	pages.Get("/batches/:batch_code", func(c *fiber.Ctx) error {
		data := pageData(c, "Batch Detail")
		data["BatchCode"] = c.Params("batch_code")
		return c.Render("batches/detail", data)
	})

	pages.Get("/upload", func(c *fiber.Ctx) error {
		return c.Render("batches/upload", pageData(c, "New Batch"))
	})

	pages.Get("/templates", func(c *fiber.Ctx) error {
		return c.Render("templates/index", pageData(c, "Notice Templates"))
	})

	pages.Get("/banks", func(c *fiber.Ctx) error {
		return c.Render("banks/index", pageData(c, "Banks"))
	})
}
