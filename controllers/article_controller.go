package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"

	"github.com/chenson2018/website/config"
	"github.com/chenson2018/website/global"
	"github.com/chenson2018/website/models"
	"github.com/chenson2018/website/utils"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	msgListFailed       = "Error loading articles, please try again later."
	msgArticleNotFound  = "Article not found."
	msgArticleLoadError = "Error loading article, please try again later."
)

var cacheKey = "articles"

// GetHome renders the home page with every article, newest first. Drafts are
// listed too; the published flag is only passed through to the template.
func GetHome(c *gin.Context) {
	articles, err := listArticles(c.Request.Context())
	if err != nil {
		log.WithFields(log.Fields{
			"kind":  utils.ClassifyDBError(err),
			"error": err,
		}).Error("listing articles failed")
		RenderError(c, http.StatusInternalServerError, msgListFailed)
		return
	}
	c.HTML(http.StatusOK, "index.html", gin.H{"articles": articles})
}

func listArticles(ctx context.Context) ([]models.Article, error) {
	var articles []models.Article

	if global.RedisDB != nil {
		cachedData, err := global.RedisDB.Get(ctx, cacheKey).Result()
		switch {
		case err == nil:
			decodeErr := json.Unmarshal([]byte(cachedData), &articles)
			if decodeErr == nil {
				return articles, nil
			}
			articles = nil
			log.WithField("error", decodeErr).Warn("discarding unreadable article cache")
		case err != redis.Nil:
			log.WithField("error", err).Warn("article cache read failed")
		}
	}

	err := global.DB.WithContext(ctx).
		Select("filename", "title", "published", "publish_date").
		Order("publish_date DESC").
		Find(&articles).Error
	if err != nil {
		return nil, utils.WrapDBError("list articles", err)
	}

	if global.RedisDB != nil {
		if articlesJSON, err := json.Marshal(articles); err == nil {
			if err := global.RedisDB.Set(ctx, cacheKey, articlesJSON, config.AppConfig.Redis.TTL).Err(); err != nil {
				log.WithField("error", err).Warn("article cache write failed")
			}
		}
	}
	return articles, nil
}

// GetArticle renders one article. The heading comes from the database row and
// the body is the stored HTML file, inserted without escaping.
func GetArticle(c *gin.Context) {
	filename := c.Param("filename")
	if !utils.ValidArticleFilename(filename) {
		NotFound(c)
		return
	}

	var article models.Article
	if err := global.DB.WithContext(c.Request.Context()).Where("filename = ?", filename).First(&article).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			RenderError(c, http.StatusNotFound, msgArticleNotFound)
			return
		}
		log.WithFields(log.Fields{
			"filename": filename,
			"kind":     utils.ClassifyDBError(err),
			"error":    err,
		}).Error("article lookup failed")
		RenderError(c, http.StatusInternalServerError, msgArticleLoadError)
		return
	}

	body, err := utils.ReadArticleBody(config.AppConfig.App.ArticleDir, article.Filename)
	if err != nil {
		log.WithFields(log.Fields{
			"filename": article.Filename,
			"error":    err,
		}).Error("article body unreadable")
		RenderError(c, http.StatusInternalServerError, msgArticleLoadError)
		return
	}

	c.HTML(http.StatusOK, "article.html", gin.H{
		"heading": article.Title,
		"body":    template.HTML(body),
	})
}
