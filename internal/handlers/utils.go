package handlers

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/swippe/quickcommerce/internal/adapter"
	"github.com/swippe/quickcommerce/internal/adapter/utils"
	"github.com/swippe/quickcommerce/internal/config"
	"github.com/swippe/quickcommerce/internal/domain/commerceModel"
	"github.com/swippe/quickcommerce/internal/domain/jobModel"
)

func writeJsonResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logRH.Error("Error encoding response", "error", err)
	}
}

func WriteErrorResponse(w http.ResponseWriter, httpCode int, id string, message string) {
	writeJsonResponse(w, httpCode, adapter.BadRequest(id, message, httpCode))
}

// errorBody is the plain error shape for the commerce endpoints; async job
// endpoints use the job response error instead.
type errorBody struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, httpCode int, message string) {
	writeJsonResponse(w, httpCode, errorBody{Error: message})
}

func decodeBody(r *http.Request, dst interface{}) error {
	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			logRH.Error("Couldn't close request body", "error", err)
		}
	}(r.Body)
	return json.NewDecoder(r.Body).Decode(dst)
}

func validateContext(ctx context.Context) bool {
	if ctx.Err() != nil {
		logRH.Warn("context error", "error", ctx.Err())
		return false
	}

	select {
	case <-ctx.Done():
		logRH.Warn("context cancelled")
		return false
	default:
		return true
	}
}

func validateId(id string, traceId string) (result jobModel.Job, isFound bool) {
	if id == "" {
		logRH.Warn("Empty Job ID")
		return jobModel.Job{}, false
	}
	return GetJobStatus(id, traceId)
}

func traceFrom(r *http.Request) string {
	if trace, ok := r.Context().Value(config.TRACE_ID_KEY).(string); ok {
		return trace
	}
	return ""
}

// authedUser is what the JWT middleware leaves on the request context.
type authedUser struct {
	Id    int64
	Email string
	Role  commerceModel.Role
}

func userFrom(r *http.Request) (authedUser, bool) {
	id, ok := r.Context().Value(config.USER_ID_KEY).(int64)
	if !ok {
		return authedUser{}, false
	}
	email, _ := r.Context().Value(config.USER_EMAIL_KEY).(string)
	role, _ := r.Context().Value(config.USER_ROLE_KEY).(commerceModel.Role)
	return authedUser{Id: id, Email: email, Role: role}, true
}

func pathId(r *http.Request, key string) (int64, bool) {
	raw := utils.GetChiURLParam(r, key)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
