package topic

import (
	"net/http"

	"mdd-backend/internal/handler/http/dto"
	"mdd-backend/internal/handler/http/pathutil"
	"mdd-backend/internal/handler/http/respond"
	topicUC "mdd-backend/internal/usecase/topic"
)

type GetHandler struct{ Svc *topicUC.Service }

// ServeHTTP returns one topic.
// @Summary      Get topic
// @Tags         topics
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "Topic ID"
// @Success      200 {object} dto.Topic
// @Failure      404 {object} respond.ErrorResponse
// @Router       /api/topics/{id} [get]
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ID(r, "id")
	if err != nil {
		respond.Problem(w, r, err)
		return
	}
	t, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		respond.Problem(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, dto.FromTopic(t))
}
