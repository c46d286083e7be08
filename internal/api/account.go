package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/XCLUSIIVE05/cashapp/internal/cache"
	"github.com/XCLUSIIVE05/cashapp/internal/service"
)

// AccountResponse is the authenticated user's profile and cash balance.
type AccountResponse struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Cashtag  string `json:"cashtag"`
	Balance  string `json:"balance"`
}

// AccountHandler returns the current user's profile, served from cache
// when a fresh copy is available.
func AccountHandler(eng *service.Engine, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		ctx := c.Request.Context()

		var cached AccountResponse
		if hit, err := cache.Get(ctx, rdb, cache.AccountKey(userID), &cached); err != nil {
			logrus.WithError(err).Warn("Account cache lookup failed")
		} else if hit {
			c.JSON(http.StatusOK, cached)
			return
		}

		user, err := eng.Accounts.FindByID(ctx, userID)
		if err != nil {
			fail(c, err)
			return
		}
		resp := AccountResponse{
			UserID:   user.ID,
			Username: user.Username,
			Email:    user.Email,
			Cashtag:  user.Cashtag,
			Balance:  user.Balance.StringFixed(2),
		}
		if err := cache.Set(ctx, rdb, cache.AccountKey(userID), resp); err != nil {
			logrus.WithError(err).Warn("Account cache store failed")
		}
		c.JSON(http.StatusOK, resp)
	}
}
