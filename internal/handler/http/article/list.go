// Package article serves the article feed and article endpoints.
package article

import (
	"log/slog"
	"net/http"
	"time"

	"mdd-backend/internal/handler/http/dto"
	"mdd-backend/internal/handler/http/respond"
	"mdd-backend/internal/observability/logging"
	artUC "mdd-backend/internal/usecase/article"
)

type ListHandler struct {
	Svc    *artUC.Service
	Logger *slog.Logger
}

// ServeHTTP lists articles with their author, topic and comments.
// @Summary      List articles
// @Description  Returns every article ordered by creation date. An empty feed is an empty array.
// @Tags         articles
// @Security     BearerAuth
// @Produce      json
// @Param        sort query string false "Sort order" Enums(date_asc, date_desc) default(date_asc)
// @Success      200 {array} dto.Article
// @Failure      400 {object} respond.ErrorResponse "Unsupported sort key"
// @Failure      401 {object} respond.ErrorResponse
// @Router       /api/articles [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	sortKey := r.URL.Query().Get("sort")

	list, err := h.Svc.ListSorted(r.Context(), sortKey)
	if err != nil {
		respond.Problem(w, r, err)
		return
	}

	if h.Logger != nil {
		logging.WithRequestID(r.Context(), h.Logger).Debug("article list served",
			slog.String("sort", sortKey),
			slog.Int("count", len(list)),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()))
	}
	respond.JSON(w, http.StatusOK, dto.FromArticles(list))
}
