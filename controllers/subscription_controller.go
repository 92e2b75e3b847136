package controllers

import (
	"net/http"

	"github.com/chenson2018/website/global"
	"github.com/chenson2018/website/models"
	"github.com/chenson2018/website/utils"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

const (
	msgSubscribeFailed   = "Error subscribing. Most likely your email is already registered, otherwise please contact me."
	msgUnsubscribeFailed = "Error unsubscribing, please contact me to resolve."
)

func SubscribeForm(c *gin.Context) {
	c.HTML(http.StatusOK, "subscribe.html", gin.H{"post": false})
}

// Subscribe stores the submitted address as is. Every insert failure gets
// the same page; the log records which kind it was.
func Subscribe(c *gin.Context) {
	subscriber := models.Subscriber{Email: utils.PostFormPtr(c, "email")}

	if err := global.DB.WithContext(c.Request.Context()).Create(&subscriber).Error; err != nil {
		err = utils.WrapDBError("subscribe", err)
		log.WithFields(log.Fields{
			"kind":  utils.ClassifyDBError(err),
			"error": err,
		}).Warn("subscribe failed")
		RenderError(c, http.StatusInternalServerError, msgSubscribeFailed)
		return
	}

	c.HTML(http.StatusOK, "subscribe.html", gin.H{"post": true})
}

func UnsubscribeForm(c *gin.Context) {
	c.HTML(http.StatusOK, "unsubscribe.html", gin.H{"post": false})
}

// Unsubscribe removes every row matching the submitted address. Removing
// nothing still counts as success.
func Unsubscribe(c *gin.Context) {
	email := utils.PostFormPtr(c, "email")

	result := global.DB.WithContext(c.Request.Context()).
		Where("email = ?", email).
		Delete(&models.Subscriber{})
	if result.Error != nil {
		err := utils.WrapDBError("unsubscribe", result.Error)
		log.WithFields(log.Fields{
			"kind":  utils.ClassifyDBError(err),
			"error": err,
		}).Warn("unsubscribe failed")
		RenderError(c, http.StatusInternalServerError, msgUnsubscribeFailed)
		return
	}

	log.WithField("rows", result.RowsAffected).Debug("unsubscribe completed")
	c.HTML(http.StatusOK, "unsubscribe.html", gin.H{"post": true})
}
