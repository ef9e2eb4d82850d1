package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"

	"blinkfit/internal/model/auth"
	"blinkfit/internal/pkg/id"
	"blinkfit/internal/pkg/jwt"
	"blinkfit/internal/pkg/password"
	authRepo "blinkfit/internal/repository/auth"
)

var (
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials 覆盖所有登录失败场景（账号不存在/密码错误/未激活/医生未认证）
	// 对外不区分具体原因，避免账号枚举；具体原因只进日志
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserInactive       = errors.New("account is deactivated")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token expired")
	ErrNotDoctor          = errors.New("user is not a doctor")
)

// AuthService 认证服务
type AuthService struct {
	userRepo         authRepo.UserRepository
	refreshTokenRepo authRepo.RefreshTokenRepository
	jwt              *jwt.JWT
	refreshExpiry    time.Duration // Refresh Token过期时间
}

// NewAuthService 创建认证服务
func NewAuthService(
	userRepo authRepo.UserRepository,
	refreshTokenRepo authRepo.RefreshTokenRepository,
	jwtSecret string,
	accessTokenExpiry time.Duration,
	refreshTokenExpiry time.Duration,
) *AuthService {
	return &AuthService{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		jwt:              jwt.NewJWT(jwtSecret, accessTokenExpiry),
		refreshExpiry:    refreshTokenExpiry,
	}
}

// RegisterDoctorInput 医生注册参数
type RegisterDoctorInput struct {
	Name            string
	Email           string
	Password        string
	Specialization  string
	LicenseNumber   string
	ExperienceYears int
	Hospital        string
}

// RegisterDoctor 医生自助注册
// 注册后 email_verified=false，需要管理员认证后才能通过医生登录路径登录
func (s *AuthService) RegisterDoctor(ctx context.Context, in RegisterDoctorInput) (*auth.User, error) {
	email := normalizeEmail(in.Email)

	// 邮箱全局唯一
	existing, _ := s.userRepo.FindByEmail(ctx, email)
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hashed, err := password.Hash(in.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")
		return nil, err
	}

	user := &auth.User{
		ID:            id.New(),
		Name:          strings.TrimSpace(in.Name),
		Email:         email,
		Password:      hashed,
		Role:          auth.RoleDoctor,
		EmailVerified: false, // 等待管理员认证
		IsActive:      true,
		Profile: &auth.DoctorProfile{
			Specialization:  strings.TrimSpace(in.Specialization),
			LicenseNumber:   strings.TrimSpace(in.LicenseNumber),
			ExperienceYears: in.ExperienceYears,
			Hospital:        strings.TrimSpace(in.Hospital),
		},
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrEmailTaken
		}
		log.Error().Err(err).Msg("failed to create user")
		return nil, err
	}

	return user, nil
}

// LoginResult 登录结果
type LoginResult struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int
	TokenType    string
	User         *auth.User
}

// Login 登录
// requiredRole 是查询条件的一部分：doctor 不能走 admin 登录路径，反之亦然
// 所有失败场景对外统一返回 ErrInvalidCredentials
func (s *AuthService) Login(ctx context.Context, email, pwd string, requiredRole auth.Role) (*LoginResult, error) {
	email = normalizeEmail(email)

	user, err := s.userRepo.FindByEmailAndRole(ctx, email, requiredRole)
	if err != nil {
		log.Debug().Str("email", email).Str("role", requiredRole.String()).Msg("login failed: no matching account")
		return nil, ErrInvalidCredentials
	}

	// 仅订阅newsletter的身份没有密码，不能登录
	if user.IsNewsletterOnly() || !password.Verify(pwd, user.Password) {
		log.Debug().Str("user_id", user.ID).Msg("login failed: password mismatch")
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		log.Debug().Str("user_id", user.ID).Msg("login failed: account deactivated")
		return nil, ErrInvalidCredentials
	}

	// 未认证的医生不能通过医生登录路径获得Token
	if user.Role == auth.RoleDoctor && !user.EmailVerified {
		log.Debug().Str("user_id", user.ID).Msg("login failed: doctor not verified")
		return nil, ErrInvalidCredentials
	}

	accessToken, err := s.jwt.GenerateToken(user.ID)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate access token")
		return nil, err
	}

	refreshTokenValue := jwt.GenerateRefreshToken()
	refreshToken := &auth.RefreshToken{
		ID:        id.New(),
		UserID:    user.ID,
		Token:     refreshTokenValue,
		ExpiresAt: time.Now().Add(s.refreshExpiry),
	}

	if err := s.refreshTokenRepo.Create(ctx, refreshToken); err != nil {
		log.Error().Err(err).Msg("failed to create refresh token")
		return nil, err
	}

	// 更新最后登录时间，失败不影响登录流程
	if err := s.userRepo.UpdateLastLoginAt(ctx, user.ID); err != nil {
		log.Warn().Err(err).Msg("failed to update last login time")
	}

	return &LoginResult{
		AccessToken:  accessToken,
		RefreshToken: refreshTokenValue,
		ExpiresIn:    int(s.jwt.GetExpiration().Seconds()),
		TokenType:    "Bearer",
		User:         user,
	}, nil
}

// RefreshResult 刷新Token结果
type RefreshResult struct {
	AccessToken string
	ExpiresIn   int
	TokenType   string
}

// Refresh 刷新Access Token
func (s *AuthService) Refresh(ctx context.Context, refreshTokenValue string) (*RefreshResult, error) {
	refreshToken, err := s.refreshTokenRepo.FindByToken(ctx, refreshTokenValue)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if refreshToken.IsExpired() {
		_ = s.refreshTokenRepo.DeleteByToken(ctx, refreshTokenValue)
		return nil, ErrExpiredToken
	}

	user, err := s.userRepo.FindByID(ctx, refreshToken.UserID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	accessToken, err := s.jwt.GenerateToken(user.ID)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate access token")
		return nil, err
	}

	return &RefreshResult{
		AccessToken: accessToken,
		ExpiresIn:   int(s.jwt.GetExpiration().Seconds()),
		TokenType:   "Bearer",
	}, nil
}

// Logout 退出登录
func (s *AuthService) Logout(ctx context.Context, refreshTokenValue string) error {
	return s.refreshTokenRepo.DeleteByToken(ctx, refreshTokenValue)
}

// ValidateToken 验证Access Token并返回当前用户
// Token只携带用户ID，角色和状态每次都从数据库重新解析：
// 角色变更或账号停用后，旧Token立即失效
func (s *AuthService) ValidateToken(ctx context.Context, tokenString string) (*auth.User, error) {
	claims, err := s.jwt.ValidateToken(tokenString)
	if err != nil {
		if errors.Is(err, jwt.ErrExpiredToken) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	return user, nil
}

// SetVerificationStatus 设置医生认证状态（管理员操作，幂等）
// email_verified 和 profile.is_verified_doctor 一起翻转，并记录认证元数据
func (s *AuthService) SetVerificationStatus(ctx context.Context, doctorID string, verified bool, reason, adminID string) (*auth.User, error) {
	user, err := s.userRepo.FindByID(ctx, doctorID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	if user.Role != auth.RoleDoctor {
		return nil, ErrNotDoctor
	}

	if err := s.userRepo.SetVerification(ctx, doctorID, verified, adminID, reason); err != nil {
		log.Error().Err(err).Str("doctor_id", doctorID).Msg("failed to set verification status")
		return nil, err
	}

	log.Info().
		Str("doctor_id", doctorID).
		Bool("verified", verified).
		Str("admin_id", adminID).
		Msg("doctor verification status changed")

	return s.userRepo.FindByID(ctx, doctorID)
}

// DeleteUser 删除用户（管理员操作），级联清理其refresh token
func (s *AuthService) DeleteUser(ctx context.Context, userID string) error {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return ErrUserNotFound
	}

	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return err
	}
	if err := s.refreshTokenRepo.DeleteByUserID(ctx, userID); err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("failed to clean up refresh tokens")
	}
	return nil
}

// ListDoctors 查询医生列表（管理员，支持按认证状态筛选）
func (s *AuthService) ListDoctors(ctx context.Context, verified *bool, page, limit int64) ([]*auth.User, int64, error) {
	return s.userRepo.ListByRole(ctx, auth.RoleDoctor, verified, page, limit)
}

// CountPendingDoctors 统计待认证医生数量
func (s *AuthService) CountPendingDoctors(ctx context.Context) (int64, error) {
	pending := false
	return s.userRepo.CountByRole(ctx, auth.RoleDoctor, &pending)
}

// GetUserByID 根据ID获取用户
func (s *AuthService) GetUserByID(ctx context.Context, userID string) (*auth.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// normalizeEmail 邮箱统一小写去空白，保证大小写不敏感的唯一性
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
