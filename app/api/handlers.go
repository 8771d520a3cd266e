package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/newsclip/newsclip/app/cfg"
	"github.com/newsclip/newsclip/app/crawler"
	"github.com/newsclip/newsclip/app/database"
	"github.com/newsclip/newsclip/app/deliver"
	"github.com/newsclip/newsclip/app/report"
)

func NewHandler(keywordRepo database.KeywordRepository, articleRepo database.ArticleRepository,
	c *crawler.Crawler, builder *report.Builder, runner *deliver.Runner) *Handler {
	return &Handler{
		keywordRepo: keywordRepo,
		articleRepo: articleRepo,
		crawler:     c,
		builder:     builder,
		runner:      runner,
	}
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	if keywordCount, err := h.keywordRepo.GetKeywordCount(); err == nil {
		health["keywords"] = keywordCount
	}

	if articleCount, err := h.articleRepo.GetArticleCount(); err == nil {
		health["articles"] = articleCount
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetStats(c *gin.Context) {
	keywordCount, err := h.keywordRepo.GetKeywordCount()
	if err != nil {
		slog.Error("Database error", "operation", "keyword_count", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	articleCount, err := h.articleRepo.GetArticleCount()
	if err != nil {
		slog.Error("Database error", "operation", "article_count", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"keywords": keywordCount,
		"articles": articleCount,
		"version":  cfg.Get().Version,
	})
}

func (h *Handler) APIListKeywords(c *gin.Context) {
	rows, err := h.keywordRepo.List()
	if err != nil {
		slog.Error("Database error", "operation", "list_keywords", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	keywords := make([]map[string]interface{}, 0, len(rows))
	for _, row := range rows {
		keywords = append(keywords, keywordResponse(row))
	}

	c.JSON(http.StatusOK, gin.H{
		"keywords": keywords,
		"total":    len(keywords),
	})
}

func (h *Handler) APICreateKeyword(c *gin.Context) {
	var req createKeywordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	term := strings.TrimSpace(req.Term)
	if term == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Keyword term must not be blank"})
		return
	}

	keyword, err := h.keywordRepo.Create(term, req.Note)
	if err != nil {
		if errors.Is(err, database.ErrDuplicateTerm) {
			c.JSON(http.StatusConflict, gin.H{"error": "Keyword already exists", "term": term})
			return
		}
		slog.Error("Database error", "operation", "create_keyword", "term", term, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusCreated, keywordResponse(*keyword))
}

func (h *Handler) APISetKeywordActive(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing keyword id parameter"})
		return
	}

	var req setActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if err := h.keywordRepo.SetActive(id, *req.Active); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Keyword not found", "id": id})
			return
		}
		slog.Error("Database error", "operation", "set_keyword_active", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"id":      id,
		"active":  *req.Active,
	})
}

func (h *Handler) APICrawl(c *gin.Context) {
	result, err := h.crawler.Run(c.Request.Context())
	if err != nil {
		slog.Error("Crawl failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Crawl failed", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) APISendReport(c *gin.Context) {
	conf := cfg.Get()

	rep, err := h.builder.Build(conf.ReportWindowHours, conf.ReportMaxItems)
	if err != nil {
		slog.Error("Digest build failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Digest build failed", "details": err.Error()})
		return
	}

	outcomes := h.runner.Run(c.Request.Context(), rep)

	c.JSON(http.StatusOK, gin.H{
		"articles": rep.Total,
		"outcomes": outcomes,
	})
}

func keywordResponse(k database.Keyword) map[string]interface{} {
	return map[string]interface{}{
		"id":         k.ID,
		"term":       k.Term,
		"active":     k.Active,
		"note":       k.Note,
		"created_at": k.CreatedAt,
		"updated_at": k.UpdatedAt,
	}
}

var _ = report.Report{}
