package service

import (
	"context"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"go.mongodb.org/mongo-driver/mongo"

	"blinkfit/internal/model/auth"
	"blinkfit/internal/pkg/password"
)

// fakeUserRepo 进程内 UserRepository 实现，按ID和邮箱索引
type fakeUserRepo struct {
	users map[string]*auth.User // id -> user
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*auth.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *auth.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
		}
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*auth.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeUserRepo) FindByEmailAndRole(_ context.Context, email string, role auth.Role) (*auth.User, error) {
	for _, u := range r.users {
		if u.Email == email && u.Role == role {
			return u, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeUserRepo) UpdateLastLoginAt(_ context.Context, id string) error {
	if u, ok := r.users[id]; ok {
		now := time.Now()
		u.LastLoginAt = &now
		return nil
	}
	return mongo.ErrNoDocuments
}

func (r *fakeUserRepo) SetVerification(_ context.Context, id string, verified bool, adminID, reason string) error {
	u, ok := r.users[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	u.EmailVerified = verified
	if u.Profile == nil {
		u.Profile = &auth.DoctorProfile{}
	}
	u.Profile.IsVerifiedDoctor = verified
	u.Profile.VerifiedBy = adminID
	u.Profile.VerifyReason = reason
	now := time.Now()
	u.Profile.VerifiedAt = &now
	return nil
}

func (r *fakeUserRepo) SetSubscribed(_ context.Context, id string, subscribed bool) error {
	if u, ok := r.users[id]; ok {
		u.Subscribed = subscribed
		return nil
	}
	return mongo.ErrNoDocuments
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) ListByRole(_ context.Context, role auth.Role, verified *bool, _, _ int64) ([]*auth.User, int64, error) {
	var out []*auth.User
	for _, u := range r.users {
		if u.Role != role {
			continue
		}
		if verified != nil && u.EmailVerified != *verified {
			continue
		}
		out = append(out, u)
	}
	return out, int64(len(out)), nil
}

func (r *fakeUserRepo) CountByRole(_ context.Context, role auth.Role, verified *bool) (int64, error) {
	_, n, _ := r.ListByRole(context.Background(), role, verified, 1, 100)
	return n, nil
}

// fakeRefreshTokenRepo 进程内 RefreshTokenRepository 实现
type fakeRefreshTokenRepo struct {
	tokens map[string]*auth.RefreshToken // token值 -> token
}

func newFakeRefreshTokenRepo() *fakeRefreshTokenRepo {
	return &fakeRefreshTokenRepo{tokens: make(map[string]*auth.RefreshToken)}
}

func (r *fakeRefreshTokenRepo) Create(_ context.Context, t *auth.RefreshToken) error {
	r.tokens[t.Token] = t
	return nil
}

func (r *fakeRefreshTokenRepo) FindByToken(_ context.Context, token string) (*auth.RefreshToken, error) {
	if t, ok := r.tokens[token]; ok {
		return t, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeRefreshTokenRepo) DeleteByToken(_ context.Context, token string) error {
	delete(r.tokens, token)
	return nil
}

func (r *fakeRefreshTokenRepo) DeleteByUserID(_ context.Context, userID string) error {
	for k, t := range r.tokens {
		if t.UserID == userID {
			delete(r.tokens, k)
		}
	}
	return nil
}

func newTestAuthService(userRepo *fakeUserRepo, tokenRepo *fakeRefreshTokenRepo) *AuthService {
	return NewAuthService(userRepo, tokenRepo, "test-secret", time.Hour, 24*time.Hour)
}

func seedDoctor(repo *fakeUserRepo, verified bool) *auth.User {
	hashed, _ := password.Hash("secret123")
	u := &auth.User{
		ID:            "doc-1",
		Name:          "Dr. Smith",
		Email:         "doc@example.com",
		Password:      hashed,
		Role:          auth.RoleDoctor,
		EmailVerified: verified,
		IsActive:      true,
		Profile:       &auth.DoctorProfile{Specialization: "ophthalmology"},
	}
	repo.users[u.ID] = u
	return u
}

func TestRegisterDoctor(t *testing.T) {
	Convey("AuthService.RegisterDoctor", t, func() {
		ctx := context.Background()
		userRepo := newFakeUserRepo()
		svc := newTestAuthService(userRepo, newFakeRefreshTokenRepo())

		in := RegisterDoctorInput{
			Name:           "Dr. Smith",
			Email:          "  Doc@Example.COM ",
			Password:       "secret123",
			Specialization: "ophthalmology",
			LicenseNumber:  "LIC-1",
		}

		Convey("注册成功，邮箱归一为小写，等待认证", func() {
			user, err := svc.RegisterDoctor(ctx, in)
			So(err, ShouldBeNil)
			So(user.Email, ShouldEqual, "doc@example.com")
			So(user.Role, ShouldEqual, auth.RoleDoctor)
			So(user.EmailVerified, ShouldBeFalse)
			So(user.IsActive, ShouldBeTrue)
			So(user.Password, ShouldNotEqual, "secret123")
		})

		Convey("重复邮箱返回ErrEmailTaken", func() {
			_, err := svc.RegisterDoctor(ctx, in)
			So(err, ShouldBeNil)

			_, err = svc.RegisterDoctor(ctx, in)
			So(err, ShouldEqual, ErrEmailTaken)
		})
	})
}

func TestLogin(t *testing.T) {
	Convey("AuthService.Login", t, func() {
		ctx := context.Background()
		userRepo := newFakeUserRepo()
		tokenRepo := newFakeRefreshTokenRepo()
		svc := newTestAuthService(userRepo, tokenRepo)

		Convey("已认证医生登录成功", func() {
			seedDoctor(userRepo, true)

			result, err := svc.Login(ctx, "doc@example.com", "secret123", auth.RoleDoctor)
			So(err, ShouldBeNil)
			So(result.AccessToken, ShouldNotBeEmpty)
			So(result.RefreshToken, ShouldNotBeEmpty)
			So(result.TokenType, ShouldEqual, "Bearer")
			So(result.User.ID, ShouldEqual, "doc-1")

			Convey("refresh token已持久化", func() {
				_, err := tokenRepo.FindByToken(ctx, result.RefreshToken)
				So(err, ShouldBeNil)
			})
		})

		Convey("角色参与查找：医生不能走管理员登录路径", func() {
			seedDoctor(userRepo, true)

			_, err := svc.Login(ctx, "doc@example.com", "secret123", auth.RoleAdmin)
			So(err, ShouldEqual, ErrInvalidCredentials)
		})

		Convey("未认证医生登录被拒绝，错误与密码错误不可区分", func() {
			seedDoctor(userRepo, false)

			_, errUnverified := svc.Login(ctx, "doc@example.com", "secret123", auth.RoleDoctor)
			_, errBadPassword := svc.Login(ctx, "doc@example.com", "wrong", auth.RoleDoctor)

			So(errUnverified, ShouldEqual, ErrInvalidCredentials)
			So(errBadPassword, ShouldEqual, ErrInvalidCredentials)
		})

		Convey("停用账号登录被拒绝", func() {
			u := seedDoctor(userRepo, true)
			u.IsActive = false

			_, err := svc.Login(ctx, "doc@example.com", "secret123", auth.RoleDoctor)
			So(err, ShouldEqual, ErrInvalidCredentials)
		})

		Convey("仅订阅newsletter的账号不能登录", func() {
			userRepo.users["sub-1"] = &auth.User{
				ID:       "sub-1",
				Email:    "sub@example.com",
				Role:     auth.RoleUser,
				IsActive: true,
			}

			_, err := svc.Login(ctx, "sub@example.com", "", auth.RoleUser)
			So(err, ShouldEqual, ErrInvalidCredentials)
		})

		Convey("不存在的账号登录被拒绝", func() {
			_, err := svc.Login(ctx, "ghost@example.com", "whatever", auth.RoleDoctor)
			So(err, ShouldEqual, ErrInvalidCredentials)
		})
	})
}

func TestRefreshAndLogout(t *testing.T) {
	Convey("AuthService Token刷新和退出", t, func() {
		ctx := context.Background()
		userRepo := newFakeUserRepo()
		tokenRepo := newFakeRefreshTokenRepo()
		svc := newTestAuthService(userRepo, tokenRepo)

		seedDoctor(userRepo, true)
		result, err := svc.Login(ctx, "doc@example.com", "secret123", auth.RoleDoctor)
		So(err, ShouldBeNil)

		Convey("有效refresh token换取新access token", func() {
			refreshed, err := svc.Refresh(ctx, result.RefreshToken)
			So(err, ShouldBeNil)
			So(refreshed.AccessToken, ShouldNotBeEmpty)
		})

		Convey("未知refresh token被拒绝", func() {
			_, err := svc.Refresh(ctx, "bogus")
			So(err, ShouldEqual, ErrInvalidToken)
		})

		Convey("过期refresh token被拒绝并清除", func() {
			token, _ := tokenRepo.FindByToken(ctx, result.RefreshToken)
			token.ExpiresAt = time.Now().Add(-time.Minute)

			_, err := svc.Refresh(ctx, result.RefreshToken)
			So(err, ShouldEqual, ErrExpiredToken)

			_, err = tokenRepo.FindByToken(ctx, result.RefreshToken)
			So(err, ShouldNotBeNil)
		})

		Convey("退出后refresh token失效", func() {
			So(svc.Logout(ctx, result.RefreshToken), ShouldBeNil)

			_, err := svc.Refresh(ctx, result.RefreshToken)
			So(err, ShouldEqual, ErrInvalidToken)
		})
	})
}

func TestValidateToken(t *testing.T) {
	Convey("AuthService.ValidateToken 每次请求重新解析账号", t, func() {
		ctx := context.Background()
		userRepo := newFakeUserRepo()
		svc := newTestAuthService(userRepo, newFakeRefreshTokenRepo())

		seedDoctor(userRepo, true)
		result, err := svc.Login(ctx, "doc@example.com", "secret123", auth.RoleDoctor)
		So(err, ShouldBeNil)

		Convey("有效token返回当前账号", func() {
			actor, err := svc.ValidateToken(ctx, result.AccessToken)
			So(err, ShouldBeNil)
			So(actor.ID, ShouldEqual, "doc-1")
		})

		Convey("签发后账号被停用，token随即失效", func() {
			userRepo.users["doc-1"].IsActive = false

			_, err := svc.ValidateToken(ctx, result.AccessToken)
			So(err, ShouldEqual, ErrUserInactive)
		})

		Convey("签发后账号被删除，token随即失效", func() {
			delete(userRepo.users, "doc-1")

			_, err := svc.ValidateToken(ctx, result.AccessToken)
			So(err, ShouldEqual, ErrUserNotFound)
		})

		Convey("乱码token被拒绝", func() {
			_, err := svc.ValidateToken(ctx, "not-a-jwt")
			So(err, ShouldEqual, ErrInvalidToken)
		})
	})
}

func TestSetVerificationStatus(t *testing.T) {
	Convey("AuthService.SetVerificationStatus 医生审核", t, func() {
		ctx := context.Background()
		userRepo := newFakeUserRepo()
		svc := newTestAuthService(userRepo, newFakeRefreshTokenRepo())

		Convey("审核通过后医生可以登录", func() {
			seedDoctor(userRepo, false)

			doctor, err := svc.SetVerificationStatus(ctx, "doc-1", true, "license checked", "admin-1")
			So(err, ShouldBeNil)
			So(doctor.EmailVerified, ShouldBeTrue)

			_, err = svc.Login(ctx, "doc@example.com", "secret123", auth.RoleDoctor)
			So(err, ShouldBeNil)
		})

		Convey("非医生账号不能走审核流程", func() {
			userRepo.users["user-1"] = &auth.User{ID: "user-1", Email: "u@example.com", Role: auth.RoleUser}

			_, err := svc.SetVerificationStatus(ctx, "user-1", true, "", "admin-1")
			So(err, ShouldEqual, ErrNotDoctor)
		})

		Convey("不存在的账号返回ErrUserNotFound", func() {
			_, err := svc.SetVerificationStatus(ctx, "ghost", true, "", "admin-1")
			So(err, ShouldEqual, ErrUserNotFound)
		})
	})
}

func TestDeleteUser(t *testing.T) {
	Convey("AuthService.DeleteUser 级联清理refresh token", t, func() {
		ctx := context.Background()
		userRepo := newFakeUserRepo()
		tokenRepo := newFakeRefreshTokenRepo()
		svc := newTestAuthService(userRepo, tokenRepo)

		seedDoctor(userRepo, true)
		result, err := svc.Login(ctx, "doc@example.com", "secret123", auth.RoleDoctor)
		So(err, ShouldBeNil)

		So(svc.DeleteUser(ctx, "doc-1"), ShouldBeNil)

		_, err = userRepo.FindByID(ctx, "doc-1")
		So(err, ShouldNotBeNil)

		_, err = tokenRepo.FindByToken(ctx, result.RefreshToken)
		So(err, ShouldNotBeNil)
	})
}
