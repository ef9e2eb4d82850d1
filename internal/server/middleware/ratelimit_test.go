package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/smartystreets/goconvey/convey"

	"blinkfit/internal/pkg/ratelimit"
)

func TestRateLimit(t *testing.T) {
	Convey("RateLimit 中间件按IP限流", t, func() {
		gin.SetMode(gin.TestMode)

		engine := gin.New()
		engine.POST("/contact", RateLimit(ratelimit.NewMemoryLimiter(3, time.Minute)), func(c *gin.Context) {
			c.Status(http.StatusCreated)
		})

		do := func(ip string) int {
			req := httptest.NewRequest(http.MethodPost, "/contact", nil)
			req.RemoteAddr = ip + ":12345"
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)
			return w.Code
		}

		Convey("窗口内前3次放行，第4次429", func() {
			So(do("1.2.3.4"), ShouldEqual, http.StatusCreated)
			So(do("1.2.3.4"), ShouldEqual, http.StatusCreated)
			So(do("1.2.3.4"), ShouldEqual, http.StatusCreated)
			So(do("1.2.3.4"), ShouldEqual, http.StatusTooManyRequests)
		})

		Convey("不同IP互不影响", func() {
			for i := 0; i < 4; i++ {
				do("1.2.3.4")
			}
			So(do("5.6.7.8"), ShouldEqual, http.StatusCreated)
		})
	})
}
