package api

import (
	"context"
	"errors"
	"net/http"

	"FundingIntel/backend/go/internal/analyzer"
	"FundingIntel/backend/go/internal/appstate"
	"FundingIntel/backend/go/internal/chat"
	"FundingIntel/backend/go/internal/funding_service/service"

	"github.com/gin-gonic/gin"
)

// ErrorBody 是所有错误响应的统一结构。
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail 描述一次失败。
type ErrorDetail struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// apiError 将领域错误映射为 HTTP 状态码、错误码和用户可见的文本。
type apiError struct {
	status  int
	code    string
	message string
}

func classify(err error) apiError {
	switch {
	case errors.Is(err, chat.ErrEmptyMessage), errors.Is(err, analyzer.ErrEmptyInput):
		return apiError{http.StatusBadRequest, "EMPTY_INPUT", "Input must not be empty."}
	case errors.Is(err, chat.ErrPending):
		return apiError{http.StatusConflict, "PENDING", "The assistant is still answering the previous message."}
	case errors.Is(err, chat.ErrSessionNotFound):
		return apiError{http.StatusNotFound, "SESSION_NOT_FOUND", "Chat session not found."}
	case errors.Is(err, chat.ErrSessionGone):
		return apiError{http.StatusGone, "SESSION_GONE", "The chat session was deleted before the reply arrived."}
	case errors.Is(err, service.ErrItemNotFound):
		return apiError{http.StatusNotFound, "ITEM_NOT_FOUND", "Funding item not found."}
	case errors.Is(err, appstate.ErrUnsupportedLanguage):
		return apiError{http.StatusBadRequest, "UNSUPPORTED_LANGUAGE", err.Error()}
	case errors.Is(err, analyzer.ErrBusy):
		return apiError{http.StatusConflict, "ANALYSIS_BUSY", "An analysis is already in progress."}
	case errors.Is(err, analyzer.ErrStale):
		return apiError{http.StatusConflict, "ANALYSIS_DISCARDED", "The analysis was reset before it finished."}
	case errors.Is(err, analyzer.ErrUnparseable):
		return apiError{http.StatusUnprocessableEntity, "UNPARSEABLE", analyzer.UserMessage(analyzer.ModeDocument, err)}
	case errors.Is(err, analyzer.ErrNoFundingData):
		return apiError{http.StatusUnprocessableEntity, "NO_FUNDING_DATA", err.Error()}
	case errors.Is(err, analyzer.ErrDocumentFailed), errors.Is(err, analyzer.ErrURLFailed), errors.Is(err, analyzer.ErrInvestorNotFound):
		return apiError{http.StatusBadGateway, "ANALYSIS_FAILED", err.Error()}
	case errors.Is(err, service.ErrSpeechUnavailable):
		return apiError{http.StatusServiceUnavailable, "SPEECH_UNAVAILABLE", "Speech synthesis is unavailable."}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return apiError{http.StatusRequestTimeout, "REQUEST_CANCELLED", "The request was cancelled."}
	default:
		return apiError{http.StatusInternalServerError, "INTERNAL", "Internal server error."}
	}
}

// respondError 写出错误响应。
func respondError(c *gin.Context, err error) {
	e := classify(err)
	if e.status >= http.StatusInternalServerError {
		requestLogger(c).WithError(err).Error("请求处理失败")
	}
	c.AbortWithStatusJSON(e.status, ErrorBody{Error: ErrorDetail{Message: e.message, Code: e.code}})
}

// respondAnalysisError 使用分析页的提示文本写出分析失败。
func respondAnalysisError(c *gin.Context, mode analyzer.Mode, err error) {
	e := classify(err)
	switch {
	case errors.Is(err, analyzer.ErrNoFundingData),
		errors.Is(err, analyzer.ErrDocumentFailed),
		errors.Is(err, analyzer.ErrURLFailed),
		errors.Is(err, analyzer.ErrInvestorNotFound):
		e.message = analyzer.UserMessage(mode, err)
	}
	if e.status >= http.StatusInternalServerError {
		requestLogger(c).WithError(err).Error("分析失败")
	}
	c.AbortWithStatusJSON(e.status, ErrorBody{Error: ErrorDetail{Message: e.message, Code: e.code}})
}

// badRequest 写出参数错误。
func badRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorBody{Error: ErrorDetail{Message: message, Code: "BAD_REQUEST"}})
}
