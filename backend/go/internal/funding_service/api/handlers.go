package api

import (
	"errors"
	"io"
	"net/http"

	"FundingIntel/backend/go/internal/analyzer"
	"FundingIntel/backend/go/internal/catalog"
	"FundingIntel/backend/go/internal/funding_service/service"
	"FundingIntel/backend/go/internal/models"

	"github.com/gin-gonic/gin"
)

// maxUploadBytes 是上传文档的大小上限。
const maxUploadBytes = 10 << 20

// Handler 封装了所有 API endpoint 的处理函数。
type Handler struct {
	service *service.Service
}

// NewHandler 创建一个新的 Handler 实例。
func NewHandler(s *service.Service) *Handler {
	return &Handler{service: s}
}

// Health 用于存活检查。
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready 执行就绪检查，任一依赖不可用时返回 503。
func (h *Handler) Ready(c *gin.Context) {
	checks, ok := h.service.Ready(c.Request.Context())
	if !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "checks": checks})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready", "checks": checks})
}

// --- Home & Search ---

// Home 返回首页汇总。
func (h *Handler) Home(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Home())
}

// Search 处理 GET /search?q=&minAmount=&region=&type=。
func (h *Handler) Search(c *gin.Context) {
	var f catalog.Filter
	if err := c.ShouldBindQuery(&f); err != nil {
		badRequest(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, h.service.Search(c.Query("q"), f))
}

// RankedSearch 处理 GET /search/ranked，参数与 Search 相同。
func (h *Handler) RankedSearch(c *gin.Context) {
	var f catalog.Filter
	if err := c.ShouldBindQuery(&f); err != nil {
		badRequest(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, h.service.RankedSearch(c.Request.Context(), c.Query("q"), f))
}

// GetItem 返回单个目录条目。
func (h *Handler) GetItem(c *gin.Context) {
	item, err := h.service.Item(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// --- Chat ---

// ListSessions 返回会话列表。
func (h *Handler) ListSessions(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Sessions())
}

// NewSession 开始新的对话。
func (h *Handler) NewSession(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.NewChat())
}

// GetSession 返回单个会话。
func (h *Handler) GetSession(c *gin.Context) {
	session, err := h.service.Session(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// SelectSession 切换当前会话。
func (h *Handler) SelectSession(c *gin.Context) {
	session, err := h.service.SelectSession(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// DeleteSession 删除会话。
func (h *Handler) DeleteSession(c *gin.Context) {
	if err := h.service.DeleteSession(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ToggleStar 切换会话收藏。
func (h *Handler) ToggleStar(c *gin.Context) {
	starred, err := h.service.ToggleStar(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": c.Param("id"), "isStarred": starred})
}

// SendMessageRequest 定义了发送消息请求的 JSON 结构。
type SendMessageRequest struct {
	Text string `json:"text"`
}

// SendMessage 向当前会话发送消息，阻塞直到助手回答。
func (h *Handler) SendMessage(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	session, err := h.service.SendMessage(c.Request.Context(), req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// --- Saved ---

// ListSaved 处理 GET /saved?sort=recent|amount|deadline。
func (h *Handler) ListSaved(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Saved(c.Query("sort")))
}

// ToggleSavedRequest 通过 ID 或完整条目切换收藏。
type ToggleSavedRequest struct {
	ID   string              `json:"id"`
	Item *models.FundingItem `json:"item"`
}

// ToggleSaved 收藏或取消收藏。
func (h *Handler) ToggleSaved(c *gin.Context) {
	var req ToggleSavedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if req.ID == "" && (req.Item == nil || req.Item.ID == "") {
		badRequest(c, "id or item is required")
		return
	}
	saved, err := h.service.ToggleSaved(c.Request.Context(), req.ID, req.Item)
	if err != nil {
		respondError(c, err)
		return
	}
	id := req.ID
	if req.Item != nil && req.Item.ID != "" {
		id = req.Item.ID
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "saved": saved})
}

// --- Analyze ---

// AnalyzeDocument 处理 multipart 表单中名为 file 的文档上传。
func (h *Handler) AnalyzeDocument(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			respondError(c, analyzer.ErrEmptyInput)
			return
		}
		badRequest(c, err.Error())
		return
	}
	if header.Size > maxUploadBytes {
		badRequest(c, "file is too large")
		return
	}
	f, err := header.Open()
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes))
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	res, err := h.service.AnalyzeDocument(c.Request.Context(), header.Filename, data, header.Header.Get("Content-Type"))
	if err != nil {
		respondAnalysisError(c, analyzer.ModeDocument, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// AnalyzeURLRequest 定义了网页分析请求。
type AnalyzeURLRequest struct {
	URL string `json:"url"`
}

// AnalyzeURL 分析网页。
func (h *Handler) AnalyzeURL(c *gin.Context) {
	var req AnalyzeURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	res, err := h.service.AnalyzeURL(c.Request.Context(), req.URL)
	if err != nil {
		respondAnalysisError(c, analyzer.ModeURL, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// AnalyzeInvestorRequest 定义了投资人分析请求。
type AnalyzeInvestorRequest struct {
	Name string `json:"name"`
}

// AnalyzeInvestor 生成投资人画像。
func (h *Handler) AnalyzeInvestor(c *gin.Context) {
	var req AnalyzeInvestorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	res, err := h.service.AnalyzeInvestor(c.Request.Context(), req.Name)
	if err != nil {
		respondAnalysisError(c, analyzer.ModeInvestor, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// LatestAnalysis 返回最近一次分析结果。
func (h *Handler) LatestAnalysis(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.LatestAnalysis())
}

// ResetAnalysis 清空分析工作区。
func (h *Handler) ResetAnalysis(c *gin.Context) {
	h.service.ResetAnalysis()
	c.Status(http.StatusNoContent)
}

// --- Settings ---

// GetSettings 返回当前设置。
func (h *Handler) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Settings())
}

// UpdateSettings 局部更新设置。
func (h *Handler) UpdateSettings(c *gin.Context) {
	var req service.SettingsUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	settings, err := h.service.UpdateSettings(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// DismissTutorial 关闭引导。
func (h *Handler) DismissTutorial(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.DismissTutorial(c.Request.Context()))
}

// --- Notifications ---

// ListNotifications 返回通知列表。
func (h *Handler) ListNotifications(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Notifications())
}

// MarkNotificationsRead 将全部通知标记为已读。
func (h *Handler) MarkNotificationsRead(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.MarkNotificationsRead())
}

// --- Speech ---

// SpeechRequest 定义了语音合成请求。
type SpeechRequest struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

// SpeechResponse 中的音频以 base64 编码。
type SpeechResponse struct {
	Audio []byte `json:"audio"`
}

// Speech 将文本合成为语音。
func (h *Handler) Speech(c *gin.Context) {
	var req SpeechRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	audio, err := h.service.Speak(c.Request.Context(), req.Text, req.Language)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SpeechResponse{Audio: audio})
}
