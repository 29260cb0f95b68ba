// Package comment serves the comment endpoints.
package comment

import (
	"net/http"
	"strings"

	"mdd-backend/internal/handler/http/dto"
	"mdd-backend/internal/handler/http/respond"
	commentUC "mdd-backend/internal/usecase/comment"
)

// ArticleParam selects the article a comment belongs to.
const ArticleParam = "articleId"

type ListHandler struct{ Svc *commentUC.Service }

// ServeHTTP lists comments, optionally only those of one article.
// @Summary      List comments
// @Tags         comments
// @Security     BearerAuth
// @Produce      json
// @Param        articleId query string false "Only comments of this article"
// @Success      200 {array} dto.Comment
// @Failure      401 {object} respond.ErrorResponse
// @Router       /api/comments [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var (
		list []*commentUC.View
		err  error
	)
	if articleID := strings.TrimSpace(r.URL.Query().Get(ArticleParam)); articleID != "" {
		list, err = h.Svc.ListByArticle(r.Context(), articleID)
	} else {
		list, err = h.Svc.List(r.Context())
	}
	if err != nil {
		respond.Problem(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, dto.FromComments(list))
}
