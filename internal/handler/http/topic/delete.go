package topic

import (
	"net/http"

	"mdd-backend/internal/handler/http/dto"
	"mdd-backend/internal/handler/http/pathutil"
	"mdd-backend/internal/handler/http/respond"
	topicUC "mdd-backend/internal/usecase/topic"
)

type DeleteHandler struct{ Svc *topicUC.Service }

// ServeHTTP deletes a topic. Articles under it are kept.
// @Summary      Delete topic
// @Tags         topics
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "Topic ID"
// @Success      200 {object} dto.MessageResponse
// @Failure      404 {object} respond.ErrorResponse
// @Router       /api/topics/{id} [delete]
func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ID(r, "id")
	if err != nil {
		respond.Problem(w, r, err)
		return
	}
	if err := h.Svc.Delete(r.Context(), id); err != nil {
		respond.Problem(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, dto.MessageResponse{Message: "topic deleted"})
}
