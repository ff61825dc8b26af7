package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"notesvc/internal/app/license"
)

// LicenseGate rejects requests once the trial has run out and no valid
// license is active. License and auth endpoints stay reachable so the
// operator can still sign in and redeem a key.
type LicenseGate struct {
	Service *license.Service
}

func NewLicenseGate(svc *license.Service) *LicenseGate {
	return &LicenseGate{Service: svc}
}

var gateExemptPaths = []string{
	"/api/license",
	"/api/auth",
	"/ping",
}

// exempt matches whole path segments so sibling routes like /api/licenses
// stay gated.
func (g *LicenseGate) exempt(path string) bool {
	for _, exemptPath := range gateExemptPaths {
		if path == exemptPath || strings.HasPrefix(path, exemptPath+"/") {
			return true
		}
	}
	return false
}

// Gate reads the license row on every request.
func (g *LicenseGate) Gate() gin.HandlerFunc {
	return func(gCtx *gin.Context) {
		if g.exempt(gCtx.Request.URL.Path) {
			gCtx.Next()
			return
		}

		blocked, err := g.Service.IsBlocked()
		if err != nil {
			logrus.Errorf("license gate: %v", err)
			gCtx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"status":  "fail",
				"message": "license check failed",
			})
			return
		}

		if blocked {
			gCtx.AbortWithStatusJSON(http.StatusPaymentRequired, gin.H{
				"status":  "fail",
				"message": "trial expired, license required",
			})
			return
		}

		gCtx.Next()
	}
}
