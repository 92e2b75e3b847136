package router

import (
	"os"
	"strings"
	"time"

	"github.com/chenson2018/website/config"
	"github.com/chenson2018/website/controllers"
	"github.com/chenson2018/website/middlewares"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/secure"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func InitRouter() *gin.Engine {
	appConf := config.AppConfig.App

	if appConf.Mode != "" {
		gin.SetMode(appConf.Mode)
	}

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.RedirectTrailingSlash = false
	r.Use(middlewares.Logger(), middlewares.Recovery())

	secureConfig := secure.Config{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}
	if appConf.SSL {
		secureConfig.SSLRedirect = true
		secureConfig.STSSeconds = 31536000
		secureConfig.STSIncludeSubdomains = true
	}
	r.Use(secure.New(secureConfig))

	if len(appConf.AllowOrigins) > 0 {
		r.Use(cors.New(corsConfig(appConf.AllowOrigins)))
	}

	templates, err := LoadTemplates(appConf.TemplateDir)
	if err != nil {
		log.Fatalf("Failed to load templates: %v", err)
	}
	r.SetHTMLTemplate(templates)

	if info, err := os.Stat(appConf.StaticDir); err == nil && info.IsDir() {
		r.Static("/static", appConf.StaticDir)
	} else {
		log.WithField("dir", appConf.StaticDir).Warn("static directory not found, /static disabled")
	}

	r.GET("/healthz", controllers.Health)

	r.GET("/", controllers.GetHome)
	r.GET("/about", controllers.About)
	r.GET("/subscribe", controllers.SubscribeForm)
	r.POST("/subscribe", controllers.Subscribe)
	r.GET("/unsubscribe", controllers.UnsubscribeForm)
	r.POST("/unsubscribe", controllers.Unsubscribe)
	r.GET("/article/:filename", controllers.GetArticle)

	r.NoRoute(controllers.NotFound)
	r.NoMethod(controllers.MethodNotAllowed)

	return r
}

func corsConfig(origins []string) cors.Config {
	allowedOrigins := make([]string, 0, len(origins))
	for _, v := range origins {
		trimmed := strings.TrimSpace(v)
		if trimmed != "" {
			allowedOrigins = append(allowedOrigins, trimmed)
		}
	}
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(allowedOrigins) == 1 && allowedOrigins[0] == "*" {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = allowedOrigins
		cfg.AllowCredentials = true
	}
	return cfg
}
