package api

import (
	"net/http"
	"time"

	"github.com/daniil11ru/trail/cli/tracker/domain"
	"github.com/daniil11ru/trail/cli/tracker/dto/request"
	"github.com/daniil11ru/trail/cli/tracker/dto/response"
	"github.com/daniil11ru/trail/cli/tracker/types"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	UpdateLocation *domain.UpdateLocation
	QueryLocation  *domain.QueryLocation
}

func NewHandler(updateLocation *domain.UpdateLocation, queryLocation *domain.QueryLocation) *Handler {
	return &Handler{UpdateLocation: updateLocation, QueryLocation: queryLocation}
}

func (h *Handler) PutLocation(c *gin.Context) {
	uid := c.MustGet(contextUserID).(types.UserID)

	var req request.UpdateLocation
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "тело запроса должно содержать поля lat и lng"})
		return
	}

	position := types.Position2D{Latitude: *req.Lat, Longitude: *req.Lng}
	if !position.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "широта или долгота вне допустимого диапазона"})
		return
	}

	result, err := h.UpdateLocation.Run(c.Request.Context(), uid, position)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if result.Initial {
		c.JSON(http.StatusOK, response.UpdateLocation{Initial: true})
		return
	}

	c.JSON(http.StatusOK, response.UpdateLocation{
		DistTraveled: &response.Kilometers{Km: result.Kilometers},
	})
}

func (h *Handler) GetLocation(c *gin.Context) {
	uid := c.MustGet(contextUserID).(types.UserID)

	location, found, err := h.QueryLocation.Run(c.Request.Context(), uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if !found {
		c.JSON(http.StatusOK, response.QueryLocation{})
		return
	}

	c.JSON(http.StatusOK, response.QueryLocation{
		Location: &response.TimestampLocation{
			Timestamp: location.Timestamp.UTC().Format(time.RFC3339),
			Location: response.Position{
				Lat: location.Latitude,
				Lng: location.Longitude,
			},
		},
	})
}
