package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/gradpath/gradpath-backend/internal/db"
	"github.com/gradpath/gradpath-backend/internal/logger"
	"github.com/gradpath/gradpath-backend/internal/repos"
	"github.com/gradpath/gradpath-backend/internal/types"
	"github.com/gradpath/gradpath-backend/internal/utils"
)

// adduser provisions an account directly against the database. There is no
// signup endpoint; accounts are created by an operator.
func main() {
	var username, password, role string
	flag.StringVar(&username, "username", "", "username for the new account")
	flag.StringVar(&password, "password", "", "password for the new account")
	flag.StringVar(&role, "role", types.RoleUser, "account role (user or admin)")
	flag.Parse()

	if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
		fmt.Println("usage: adduser -username <name> -password <secret> [-role user|admin]")
		os.Exit(1)
	}

	log := logger.NewNop()
	ctx := context.Background()

	databaseService, err := db.NewDatabaseService(log)
	if err != nil {
		fmt.Printf("init database: %v\n", err)
		os.Exit(1)
	}
	if err := databaseService.AutoMigrateAll(); err != nil {
		fmt.Printf("migrate: %v\n", err)
		os.Exit(1)
	}
	userRepo := repos.NewUserRepo(databaseService.DB(), log)

	user := &types.User{Username: username, Password: password, Role: role}
	utils.NormalizeUserFields(ctx, user)
	if err := utils.InputValidation(ctx, "provisioning", userRepo, log, user, "", ""); err != nil {
		fmt.Printf("invalid input: %v\n", err)
		os.Exit(1)
	}
	if err := utils.HashPassword(ctx, log, user); err != nil {
		fmt.Printf("hash password: %v\n", err)
		os.Exit(1)
	}
	if _, err := userRepo.Create(ctx, nil, []*types.User{user}); err != nil {
		fmt.Printf("create user: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("created %s account %s (%s)\n", user.Role, user.Username, user.ID.String())
}
