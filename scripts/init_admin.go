package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"blinkfit/internal/config"
	"blinkfit/internal/model/auth"
	"blinkfit/internal/pkg/id"
	"blinkfit/internal/pkg/logger"
	"blinkfit/internal/pkg/mongodb"
	"blinkfit/internal/pkg/password"
	authrepo "blinkfit/internal/repository/auth"
)

func main() {
	// 1. 加载配置（与 cmd/root.go 保持一致的搜索路径）
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.blinkfit")

	viper.SetEnvPrefix("BLINKFIT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read config: %v\n", err)
		os.Exit(1)
	}

	var cfg config.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to unmarshal config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(&cfg.Log); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init logger: %v\n", err)
		os.Exit(1)
	}

	// 2. 连接 MongoDB
	client, err := mongodb.New(&cfg.Mongo)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect mongo")
	}
	defer func() {
		_ = client.Close(context.Background())
	}()

	db := client.Database()
	ctx := context.Background()

	userRepo := authrepo.NewUserRepo(db)

	// 3. 读取环境变量或使用默认值
	name := os.Getenv("INIT_ADMIN_NAME")
	if name == "" {
		name = "BlinkFit Admin"
	}
	passwordPlain := os.Getenv("INIT_ADMIN_PASSWORD")
	if passwordPlain == "" {
		passwordPlain = "admin123"
	}
	email := strings.ToLower(strings.TrimSpace(os.Getenv("INIT_ADMIN_EMAIL")))
	if email == "" {
		email = "admin@blinkfit.com"
	}

	// 4. 检查是否已存在
	user, err := userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			log.Info().Str("email", email).Msg("admin user not found, will create")
			if err := createAdmin(ctx, userRepo, name, email, passwordPlain); err != nil {
				log.Fatal().Err(err).Msg("create admin user failed")
			}
		} else {
			log.Fatal().Err(err).Msg("failed to query user")
		}
	} else {
		// 已存在，提升为 admin 并激活
		log.Info().Str("email", email).Msg("admin user exists, will update role/status")
		update := bson.M{
			"$set": bson.M{
				"role":           auth.RoleAdmin,
				"email_verified": true,
				"is_active":      true,
				"updated_at":     time.Now(),
			},
		}
		coll := db.Collection(user.Collection())
		if _, err := coll.UpdateOne(ctx, bson.M{"_id": user.ID}, update); err != nil {
			log.Fatal().Err(err).Msg("update admin user failed")
		}
	}

	fmt.Printf("Admin initialized: email=%s password=%s role=admin\n", email, passwordPlain)
}

func createAdmin(ctx context.Context, repo *authrepo.UserRepo, name, email, pwd string) error {
	hashed, err := password.Hash(pwd)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user := &auth.User{
		ID:            id.New(),
		Name:          name,
		Email:         email,
		Password:      hashed,
		Role:          auth.RoleAdmin,
		EmailVerified: true,
		IsActive:      true,
	}

	return repo.Create(ctx, user)
}
