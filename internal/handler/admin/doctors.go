package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blinkfit/internal/model"
	"blinkfit/internal/model/auth"
	"blinkfit/internal/pkg/ctxutil"
	"blinkfit/internal/pkg/httpx"
)

// ListDoctorsResponseData 医生列表响应数据
type ListDoctorsResponseData struct {
	Doctors    []*auth.User     `json:"doctors"`
	Pagination model.Pagination `json:"pagination"`
}

// ListDoctors 医生账号列表
// @Summary      医生列表
// @Description  按审核状态筛选医生账号
// @Tags         管理后台
// @Produce      json
// @Param        verified  query  bool  false  "审核状态筛选"
// @Param        page      query  int   false  "页码，默认1"
// @Param        limit     query  int   false  "每页数量，默认10"
// @Success      200  {object}  httpx.Response
// @Failure      403  {object}  httpx.Response
// @Security     BearerAuth
// @Router       /api/v1/admin/doctors [get]
func (h *Handler) ListDoctors(c *gin.Context) {
	var verified *bool
	switch c.Query("verified") {
	case "true":
		v := true
		verified = &v
	case "false":
		v := false
		verified = &v
	}

	page := queryInt64(c, "page", 1)
	limit := queryInt64(c, "limit", 10)

	doctors, total, err := h.authService.ListDoctors(c.Request.Context(), verified, page, limit)
	if err != nil {
		fail(c, err)
		return
	}

	httpx.OK(c, http.StatusOK, "OK", ListDoctorsResponseData{
		Doctors:    doctors,
		Pagination: model.NewPagination(page, limit, total),
	})
}

// VerifyDoctorRequest 医生审核请求，reason可选
type VerifyDoctorRequest struct {
	Reason string `json:"reason" binding:"omitempty,max=500"`
}

// VerifyDoctor 通过医生账号审核
// @Summary      审核通过医生
// @Description  将医生账号标记为已认证，重复调用幂等
// @Tags         管理后台
// @Accept       json
// @Produce      json
// @Param        id       path      string               true   "医生ID"
// @Param        request  body      VerifyDoctorRequest  false  "审核备注"
// @Success      200     {object}  httpx.Response
// @Failure      404     {object}  httpx.Response
// @Security     BearerAuth
// @Router       /api/v1/admin/doctors/{id}/verify [put]
func (h *Handler) VerifyDoctor(c *gin.Context) {
	h.setVerification(c, true, "Doctor verified")
}

// UnverifyDoctor 撤销医生账号审核
// @Summary      撤销医生认证
// @Description  撤销医生账号的认证状态，重复调用幂等
// @Tags         管理后台
// @Accept       json
// @Produce      json
// @Param        id       path      string               true   "医生ID"
// @Param        request  body      VerifyDoctorRequest  false  "撤销原因"
// @Success      200     {object}  httpx.Response
// @Failure      404     {object}  httpx.Response
// @Security     BearerAuth
// @Router       /api/v1/admin/doctors/{id}/unverify [put]
func (h *Handler) UnverifyDoctor(c *gin.Context) {
	h.setVerification(c, false, "Doctor verification revoked")
}

func (h *Handler) setVerification(c *gin.Context, verified bool, message string) {
	actor, ok := ctxutil.GetActor(c.Request.Context())
	if !ok {
		httpx.Fail(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req VerifyDoctorRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.Fail(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
			return
		}
	}

	doctor, err := h.authService.SetVerificationStatus(c.Request.Context(), c.Param("id"), verified, req.Reason, actor.ID)
	if err != nil {
		fail(c, err)
		return
	}

	httpx.OK(c, http.StatusOK, message, doctor)
}

// DeleteDoctor 删除医生账号
// @Summary      删除医生账号
// @Tags         管理后台
// @Produce      json
// @Param        id  path  string  true  "医生ID"
// @Success      200  {object}  httpx.Response
// @Failure      404  {object}  httpx.Response
// @Security     BearerAuth
// @Router       /api/v1/admin/doctors/{id} [delete]
func (h *Handler) DeleteDoctor(c *gin.Context) {
	if err := h.authService.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}

	httpx.OK(c, http.StatusOK, "Account deleted", nil)
}
