package handler

import (
	"github.com/ameliazsabrina/journalshe-sub000/internal/service"
	"github.com/ameliazsabrina/journalshe-sub000/pkg/response"
	"github.com/gin-gonic/gin"
)

// currentIdentity builds the service-layer identity from what the auth
// middleware stored in the gin context.
func currentIdentity(c *gin.Context) (service.Identity, error) {
	userID, err := response.GetUserID(c)
	if err != nil {
		return service.Identity{}, err
	}
	return service.Identity{
		UserID: userID,
		Role:   response.GetUserRole(c),
	}, nil
}
