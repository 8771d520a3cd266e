package api

import (
	"github.com/newsclip/newsclip/app/crawler"
	"github.com/newsclip/newsclip/app/database"
	"github.com/newsclip/newsclip/app/deliver"
	"github.com/newsclip/newsclip/app/report"
)

type Handler struct {
	keywordRepo database.KeywordRepository
	articleRepo database.ArticleRepository
	crawler     *crawler.Crawler
	builder     *report.Builder
	runner      *deliver.Runner
}

type createKeywordRequest struct {
	Term string `json:"term" binding:"required"`
	Note string `json:"note"`
}

type setActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}
