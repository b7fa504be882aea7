package utils

import (
  "context"
  "fmt"
  "golang.org/x/crypto/bcrypt"
  "github.com/gradpath/gradpath-backend/internal/normalization"
  "github.com/gradpath/gradpath-backend/internal/logger"
  "github.com/gradpath/gradpath-backend/internal/types"
  "github.com/gradpath/gradpath-backend/internal/repos"
)

func InputValidation(ctx context.Context, ffor string, userRepo repos.UserRepo, log *logger.Logger, user *types.User, username, password string) error {
  validatedFor := normalization.ParseInputString(ffor)
  if validatedFor == "" {
    return fmt.Errorf("For string is nil, needs to be login or provisioning")
  }
  switch validatedFor {
  case "provisioning":
    if err := handleProvisionInputValidation(ctx, userRepo, log, user); err != nil {
      return err
    }
  case "login":
    if err := handleLoginInputValidation(ctx, log, username, password); err != nil {
      return err
    }
  }
  return nil
}

func handleProvisionInputValidation(ctx context.Context, userRepo repos.UserRepo, log *logger.Logger, user *types.User) error {
  if user == nil {
    return fmt.Errorf("No user given, cannot proceed with provisioning")
  }
  if user.Username == "" {
    return fmt.Errorf("A username is required to provision a user")
  }
  usernameExists, err := userRepo.UsernameExists(ctx, nil, user.Username)
  if err != nil {
    return fmt.Errorf("Failed to check username")
  }
  if usernameExists {
    return fmt.Errorf("Username is already in use")
  }
  if user.Password == "" {
    return fmt.Errorf("A password is required to provision a user")
  }
  if user.Role != types.RoleAdmin && user.Role != types.RoleUser {
    return fmt.Errorf("Role must be admin or user")
  }
  return nil
}

func handleLoginInputValidation(ctx context.Context, log *logger.Logger, username, password string) error {
  if username == "" {
    return fmt.Errorf("Username is required to login")
  }
  if password == "" {
    return fmt.Errorf("Password is required to login")
  }
  return nil
}

func HashPassword(ctx context.Context, log *logger.Logger, user *types.User) error {
  hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
  if err != nil {
    return fmt.Errorf("Failed to hash password")
  }
  user.Password = string(hashedPassword)
  return nil
}

// NormalizeUserFields lowercases the username and role. The password is only
// trimmed, never case-folded.
func NormalizeUserFields(ctx context.Context, user *types.User) {
  user.Username = normalization.ParseInputString(user.Username)
  user.Password = normalization.TrimInputString(user.Password)
  user.Role = normalization.ParseInputString(user.Role)
}
