package jwt

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestJWT(t *testing.T) {
	Convey("JWT 生成和验证", t, func() {
		j := NewJWT("test-secret", time.Hour)

		Convey("生成的token可以通过验证", func() {
			token, err := j.GenerateToken("user-1")
			So(err, ShouldBeNil)
			So(token, ShouldNotBeEmpty)

			claims, err := j.ValidateToken(token)
			So(err, ShouldBeNil)
			So(claims.UserID, ShouldEqual, "user-1")
		})

		Convey("篡改的token被拒绝", func() {
			token, err := j.GenerateToken("user-1")
			So(err, ShouldBeNil)

			_, err = j.ValidateToken(token + "x")
			So(err, ShouldNotBeNil)
		})

		Convey("其他密钥签发的token被拒绝", func() {
			other := NewJWT("other-secret", time.Hour)
			token, err := other.GenerateToken("user-1")
			So(err, ShouldBeNil)

			_, err = j.ValidateToken(token)
			So(err, ShouldEqual, ErrInvalidToken)
		})

		Convey("过期token返回ErrExpiredToken", func() {
			expired := NewJWT("test-secret", -time.Minute)
			token, err := expired.GenerateToken("user-1")
			So(err, ShouldBeNil)

			_, err = j.ValidateToken(token)
			So(err, ShouldEqual, ErrExpiredToken)
		})
	})
}

func TestGenerateRefreshToken(t *testing.T) {
	Convey("GenerateRefreshToken 生成不重复的token", t, func() {
		a := GenerateRefreshToken()
		b := GenerateRefreshToken()

		So(a, ShouldNotBeEmpty)
		So(len(a), ShouldEqual, 64)
		So(a, ShouldNotEqual, b)
	})
}
