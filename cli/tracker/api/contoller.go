package api

import (
	"fmt"
	"net/http"

	"github.com/daniil11ru/trail/cli/tracker/domain"
	"github.com/gin-gonic/gin"
)

const contextUserID = "uid"

type Controller struct {
	Handler *Handler

	router *gin.Engine
}

func NewController(handler *Handler, resolveCredential *domain.ResolveCredential) (*Controller, error) {
	if handler == nil || resolveCredential == nil {
		return nil, fmt.Errorf("обработчик и резолвер учётных данных не могут быть nil")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	loc := router.Group("/loc", authenticate(resolveCredential))
	{
		loc.PUT("", handler.PutLocation)
		loc.GET("", handler.GetLocation)
	}

	return &Controller{Handler: handler, router: router}, nil
}

func (c *Controller) Run(port int32) error {
	return c.router.Run(fmt.Sprintf(":%d", port))
}

// authenticate извлекает заголовок x-api-key и кладёт идентификатор
// пользователя в контекст запроса. Любая ошибка разбора — клиентская.
func authenticate(resolveCredential *domain.ResolveCredential) gin.HandlerFunc {
	return func(c *gin.Context) {
		values := c.Request.Header.Values("x-api-key")

		uid, err := resolveCredential.Run(values)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		c.Set(contextUserID, uid)
		c.Next()
	}
}
