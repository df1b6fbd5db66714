// Command admin-token mints a signed console token for an operator.
//
//	admin-token -role admin
//	admin-token -role staff -store 3f0c...
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/screendeck/backend/internal/auth"
	"github.com/screendeck/backend/internal/config"
	"github.com/screendeck/backend/internal/rbac"
	"go.uber.org/zap"
)

func main() {
	role := flag.String("role", rbac.RoleAdmin, "token role (admin or staff)")
	userFlag := flag.String("user", "", "user id (random when empty)")
	storeFlag := flag.String("store", "", "store id a staff token is limited to")
	ttl := flag.Duration("ttl", 0, "token lifetime (JWT_EXPIRATION_HOURS when zero)")
	flag.Parse()

	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	cfg.Validate(log)

	token, err := mint(cfg, *role, *userFlag, *storeFlag, *ttl)
	if err != nil {
		fmt.Fprintln(os.Stderr, "admin-token:", err)
		os.Exit(1)
	}
	fmt.Println(token)
}

func mint(cfg *config.Config, role, userStr, storeStr string, ttl time.Duration) (string, error) {
	if !rbac.IsValidRole(role) {
		return "", fmt.Errorf("unknown role %q", role)
	}

	userID := uuid.New()
	if userStr != "" {
		id, err := uuid.Parse(userStr)
		if err != nil {
			return "", fmt.Errorf("invalid user id: %w", err)
		}
		userID = id
	}

	var storeID *uuid.UUID
	if storeStr != "" {
		id, err := uuid.Parse(storeStr)
		if err != nil {
			return "", fmt.Errorf("invalid store id: %w", err)
		}
		storeID = &id
	}
	if role == rbac.RoleStaff && storeID == nil {
		return "", fmt.Errorf("staff tokens need -store")
	}

	if ttl <= 0 {
		ttl = cfg.JWTExpiration
	}
	return auth.GenerateJWT(cfg.JWTSecret, userID, role, storeID, ttl)
}
