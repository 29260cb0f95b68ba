package article

import (
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"mdd-backend/internal/domain/entity"
	"mdd-backend/internal/handler/http/auth"
	"mdd-backend/internal/handler/http/dto"
	"mdd-backend/internal/handler/http/request"
	"mdd-backend/internal/handler/http/respond"
	artUC "mdd-backend/internal/usecase/article"
)

type createRequest struct {
	Title   string `json:"title" example:"Understanding contexts"`
	Content string `json:"content" example:"Contexts carry deadlines and cancellation."`
	TopicID string `json:"topicId"`
}

func (r createRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, entity.TitleRules...),
		validation.Field(&r.Content,
			validation.Required.Error("Content is required"),
			entity.NotBlank("Content is required")),
		validation.Field(&r.TopicID, validation.Required.Error("Topic is required")),
	)
}

type CreateHandler struct{ Svc *artUC.Service }

// ServeHTTP publishes an article by the signed-in user.
// @Summary      Create article
// @Tags         articles
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body createRequest true "Article"
// @Success      201 {object} dto.Article
// @Failure      400 {object} respond.ErrorResponse
// @Failure      404 {object} respond.ErrorResponse "Topic not found"
// @Router       /api/articles [post]
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	email, ok := auth.EmailFromContext(r.Context())
	if !ok {
		respond.Problem(w, r, auth.ErrUnauthenticated)
		return
	}
	var req createRequest
	if err := request.Decode(r, &req); err != nil {
		respond.Problem(w, r, err)
		return
	}
	v, err := h.Svc.Create(r.Context(), artUC.CreateInput{
		Title:   req.Title,
		Content: req.Content,
		TopicID: req.TopicID,
	}, email)
	if err != nil {
		respond.Problem(w, r, err)
		return
	}
	respond.JSON(w, http.StatusCreated, dto.FromArticle(v))
}
