package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"

	"github.com/swippe/quickcommerce/internal/adapter/utils"
	"github.com/swippe/quickcommerce/internal/auth"
	"github.com/swippe/quickcommerce/internal/config"
	"github.com/swippe/quickcommerce/internal/domain/commerceModel"
	"github.com/swippe/quickcommerce/internal/handlers"
)

var _jwtManager *auth.JWTManager

// Init wires the token verifier; must run before the server accepts traffic.
func Init(jwtManager *auth.JWTManager) {
	_jwtManager = jwtManager
}

func injectTrace(re requestResponseStruct) requestResponseStruct {
	req := re.req
	if req == nil {
		re.badRequest.httpCode = http.StatusBadRequest
		re.badRequest.errorMessage = "request is empty"
		re.badRequest.isBadRequest = true
		return re
	}
	trace := req.Header.Get("X-Trace-Id")
	if trace == "" {
		trace = utils.GetNewUUID()
	}
	re.logger = re.logger.With("traceId", trace)
	ctx := context.WithValue(req.Context(), config.TRACE_ID_KEY, trace)
	req.Header.Set(`X-Trace-Id`, trace)
	re.req = req.WithContext(ctx)

	return re
}

func authenticate(re requestResponseStruct) requestResponseStruct {
	claims, ok := verifyBearerToken(re.req.Header.Get("Authorization"))
	if !ok {
		re.badRequest = failureStruct{
			isBadRequest: true,
			httpCode:     http.StatusUnauthorized,
			errorMessage: "invalid or missing token",
		}
		return re
	}

	ctx := re.req.Context()
	ctx = context.WithValue(ctx, config.USER_ID_KEY, claims.UserId)
	ctx = context.WithValue(ctx, config.USER_EMAIL_KEY, claims.Email)
	ctx = context.WithValue(ctx, config.USER_ROLE_KEY, claims.Role)
	re.req = re.req.WithContext(ctx)
	re.logger = re.logger.With("userId", claims.UserId)

	return re
}

func verifyBearerToken(authHeader string) (auth.Claims, bool) {
	if _jwtManager == nil {
		return auth.Claims{}, false
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return auth.Claims{}, false
	}
	claims, err := _jwtManager.Verify(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		return auth.Claims{}, false
	}
	return claims, true
}

func requireAdmin(re requestResponseStruct) requestResponseStruct {
	role, _ := re.req.Context().Value(config.USER_ROLE_KEY).(commerceModel.Role)
	if role != commerceModel.RoleAdmin {
		re.badRequest = failureStruct{
			isBadRequest: true,
			httpCode:     http.StatusForbidden,
			errorMessage: "admin access required",
		}
	}
	return re
}

func rateLimiter(re requestResponseStruct) requestResponseStruct {
	ip, _, err := net.SplitHostPort(re.req.RemoteAddr)
	if err != nil {
		ip = re.req.RemoteAddr
	}

	if !limiterInstance.GetLimiter(ip).Allow() {
		re.logger.Warn("Too many requests", "ip", ip)
		re.badRequest = failureStruct{
			isBadRequest: true,
			httpCode:     http.StatusTooManyRequests,
			errorMessage: "rate limit exceeded",
		}
	}
	return re
}

func handleBadRequest(re requestResponseStruct) {
	re.logger.Warn("Bad request", "httpCode", re.badRequest.httpCode, "errorMessage", re.badRequest.errorMessage, "IP", re.req.RemoteAddr)
	handlers.WriteErrorResponse(re.writer, re.badRequest.httpCode, re.badRequest.id, re.badRequest.errorMessage)
}
