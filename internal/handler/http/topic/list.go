// Package topic serves the topic endpoints.
package topic

import (
	"net/http"

	"mdd-backend/internal/handler/http/dto"
	"mdd-backend/internal/handler/http/respond"
	topicUC "mdd-backend/internal/usecase/topic"
)

type ListHandler struct{ Svc *topicUC.Service }

// ServeHTTP lists all topics.
// @Summary      List topics
// @Tags         topics
// @Security     BearerAuth
// @Produce      json
// @Success      200 {array} dto.Topic
// @Failure      401 {object} respond.ErrorResponse
// @Router       /api/topics [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	list, err := h.Svc.List(r.Context())
	if err != nil {
		respond.Problem(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, dto.FromTopics(list))
}
