package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blinkfit/internal/pkg/httpx"
	"blinkfit/internal/service"
)

// RegisterRequest 医生注册请求
type RegisterRequest struct {
	Name            string `json:"name" binding:"required,min=2,max=100"`      // 显示名称
	Email           string `json:"email" binding:"required,email"`             // 邮箱
	Password        string `json:"password" binding:"required,min=8,max=128"`  // 密码
	Specialization  string `json:"specialization" binding:"required"`          // 专科方向
	LicenseNumber   string `json:"license_number" binding:"required"`          // 执业编号
	ExperienceYears int    `json:"experience_years" binding:"omitempty,min=0"` // 从业年限
	Hospital        string `json:"hospital"`                                   // 所属机构
}

// Register 医生注册
// @Summary      医生注册
// @Description  注册医生账号，需管理员审核通过后才能登录
// @Tags         认证
// @Accept       json
// @Produce      json
// @Param        request  body      RegisterRequest  true  "注册请求"
// @Success      201     {object}  httpx.Response
// @Failure      400     {object}  httpx.Response
// @Failure      409     {object}  httpx.Response
// @Router       /api/v1/auth/register/doctor [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Fail(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	user, err := h.authService.RegisterDoctor(c.Request.Context(), service.RegisterDoctorInput{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		Specialization:  req.Specialization,
		LicenseNumber:   req.LicenseNumber,
		ExperienceYears: req.ExperienceYears,
		Hospital:        req.Hospital,
	})
	if err != nil {
		fail(c, err)
		return
	}

	httpx.OK(c, http.StatusCreated,
		"Registration received. Your account will be reviewed before you can sign in.",
		toUserInfo(user))
}
