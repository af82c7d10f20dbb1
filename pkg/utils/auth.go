package utils

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/fieldopskit/fieldops-go/pkg/types"
)

var GetUserIDFromContext = func(c *gin.Context) (uint, error) {
	claimsVal, exists := c.Get("claims")
	if !exists {
		return 0, errors.New("user claims not found in context")
	}

	claims, ok := claimsVal.(*types.Claims)
	if !ok {
		return 0, errors.New("invalid user claims type")
	}

	return claims.UserID, nil
}

var IsAdminFromContext = func(c *gin.Context) (bool, error) {
	claimsVal, exists := c.Get("claims")
	if !exists {
		return false, errors.New("user claims not found in context")
	}

	claims, ok := claimsVal.(*types.Claims)
	if !ok {
		return false, errors.New("invalid user claims type")
	}

	return claims.IsAdmin, nil
}

func ParseIDParam(c *gin.Context, name string) (uint, error) {
	idStr := c.Param(name)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		return 0, errors.New("invalid " + name + " parameter")
	}
	return uint(id), nil
}
