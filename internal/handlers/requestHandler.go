package handlers

import (
	"net/http"
	"strings"

	"github.com/swippe/quickcommerce/internal/adapter"
	"github.com/swippe/quickcommerce/internal/adapter/utils"
	"github.com/swippe/quickcommerce/internal/api"
	"github.com/swippe/quickcommerce/internal/config"
	"github.com/swippe/quickcommerce/internal/domain/jobModel"
	"github.com/swippe/quickcommerce/internal/rag"
	"github.com/swippe/quickcommerce/pkg/logger_i"
)

var (
	logRH       *logger_i.Logger
	_ragService rag.Service
)

func InitChatHandlers(ragService rag.Service) {
	_ragService = ragService
}

func GetHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// ChatHandler godoc
// @Summary      Ask the shopping assistant
// @Description  Accepts a message, queues a background assistant job, and returns a job ID to poll.
// @Tags         Assistant
// @Accept       json
// @Produce      json
// @Param        request  body      api.ChatRequest      true  "Message and optional chat ID"
// @Success      202      {object}  api.InitJobResponse  "Job successfully created"
// @Failure      400      {object}  api.JobResponse      "Invalid request data or chat ID"
// @Router       /api/chat [post]
func ChatHandler(w http.ResponseWriter, request *http.Request) {
	if !validateContext(request.Context()) {
		logRH.Warn("Invalid context by request", "remoteAddr", request.RemoteAddr)
		return
	}

	var requestData api.ChatRequest
	if err := decodeBody(request, &requestData); err != nil || !ValidateChatRequest(requestData) {
		logRH.Warn("Bad chat request", "error", err)
		WriteErrorResponse(w, http.StatusBadRequest, requestData.ChatID, "Bad Request")
		return
	}

	chatId := requestData.ChatID
	isNewChat := chatId == ""
	if isNewChat {
		chatId = utils.GetNewUUID()
		logRH.Debug("New chat request", "chatId", chatId)
	}

	newJob := newJobData{
		id:        utils.GetNewUUID(),
		chatId:    chatId,
		message:   requestData.Message,
		isNewChat: isNewChat,
		traceId:   traceFrom(request),
		jobType:   jobModel.JobTypeQuery,
	}
	CreateNewJob(newJob)
	writeJsonResponse(w, http.StatusAccepted, adapter.ToInitJobResponse(newJob.id, chatId))
}

// GetStatusHandler godoc
// @Summary      Get job status
// @Description  Retrieves the current status of a job by its ID.
// @Tags         Job Status
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  api.JobResponse  "Current status of the job"
// @Failure      404  {object}  api.JobResponse  "Job not found"
// @Router       /api/status/{id} [get]
func GetStatusHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}

	idString := utils.GetChiURLParam(r, "id")
	result, isFound := validateId(idString, traceFrom(r))

	logRH.Debug("Get status request", "urlPath", r.URL.Path)
	if !isFound {
		WriteErrorResponse(w, http.StatusNotFound, idString, "Job not found")
		return
	}

	writeJsonResponse(w, http.StatusOK, adapter.ToAPIResponse(result))
}

// ResetChatHandler godoc
// @Summary      Reset a conversation
// @Description  Clears the stored history of one chat.
// @Tags         Assistant
// @Produce      json
// @Param        id   path  string  true  "Chat ID"
// @Success      200  {object}  map[string]string
// @Router       /api/chat/{id}/reset [post]
func ResetChatHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}

	chatId := utils.GetChiURLParam(r, "id")
	if chatId == "" {
		writeError(w, http.StatusBadRequest, "chat id required")
		return
	}
	if err := resetChat(r.Context(), chatId); err != nil {
		logRH.Error("Chat reset failed", "chatId", chatId, "error", err)
		writeError(w, http.StatusInternalServerError, "could not reset chat")
		return
	}
	writeJsonResponse(w, http.StatusOK, map[string]string{"chat_id": chatId, "status": "reset"})
}

// SemanticSearchHandler godoc
// @Summary      Semantic product search
// @Description  Embeds the query and returns the closest catalog products; no LLM generation.
// @Tags         Catalog
// @Accept       json
// @Produce      json
// @Param        request  body      api.SemanticSearchRequest  true  "Search query"
// @Success      200      {array}   catalogModel.ProductMatch
// @Failure      400      {object}  handlers.errorBody
// @Router       /api/products/semantic-search [post]
func SemanticSearchHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}

	var req api.SemanticSearchRequest
	if err := decodeBody(r, &req); err != nil || len(strings.TrimSpace(req.Query)) < config.MinSearchQueryLen {
		writeError(w, http.StatusBadRequest, "query too short")
		return
	}

	matches, err := _ragService.SemanticSearch(r.Context(), strings.TrimSpace(req.Query))
	if err != nil {
		logRH.Error("Semantic search failed", "error", err)
		writeError(w, http.StatusServiceUnavailable, "semantic search unavailable")
		return
	}
	writeJsonResponse(w, http.StatusOK, matches)
}

// ReindexHandler godoc
// @Summary      Rebuild the product vector index
// @Description  Queues a catalog reindex job; admin only.
// @Tags         Admin
// @Produce      json
// @Success      202  {object}  api.InitJobResponse
// @Router       /api/admin/catalog/reindex [post]
func ReindexHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}

	newJob := newJobData{
		id:      utils.GetNewUUID(),
		traceId: traceFrom(r),
		jobType: jobModel.JobTypeIngest,
	}
	CreateNewJob(newJob)
	writeJsonResponse(w, http.StatusAccepted, adapter.ToInitJobResponse(newJob.id, ""))
}
