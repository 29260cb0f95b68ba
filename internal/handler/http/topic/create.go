package topic

import (
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"mdd-backend/internal/domain/entity"
	"mdd-backend/internal/handler/http/dto"
	"mdd-backend/internal/handler/http/request"
	"mdd-backend/internal/handler/http/respond"
	topicUC "mdd-backend/internal/usecase/topic"
)

type createRequest struct {
	Name        string `json:"name" example:"Go"`
	Description string `json:"description" example:"Everything about Go"`
}

func (r createRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, entity.TopicNameRules...),
	)
}

type CreateHandler struct{ Svc *topicUC.Service }

// ServeHTTP creates a topic.
// @Summary      Create topic
// @Tags         topics
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body createRequest true "Topic"
// @Success      201 {object} dto.Topic
// @Failure      400 {object} respond.ErrorResponse
// @Failure      409 {object} respond.ErrorResponse "Name taken"
// @Router       /api/topics [post]
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := request.Decode(r, &req); err != nil {
		respond.Problem(w, r, err)
		return
	}
	t, err := h.Svc.Create(r.Context(), topicUC.CreateInput{Name: req.Name, Description: req.Description})
	if err != nil {
		respond.Problem(w, r, err)
		return
	}
	respond.JSON(w, http.StatusCreated, dto.FromTopic(t))
}
