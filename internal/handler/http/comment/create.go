package comment

import (
	"net/http"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"mdd-backend/internal/domain/entity"
	"mdd-backend/internal/handler/http/auth"
	"mdd-backend/internal/handler/http/dto"
	"mdd-backend/internal/handler/http/request"
	"mdd-backend/internal/handler/http/respond"
	commentUC "mdd-backend/internal/usecase/comment"
)

type createRequest struct {
	Content string `json:"content" example:"Nice write-up"`
}

func (r createRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Content,
			validation.Required.Error("Content is required"),
			entity.NotBlank("Content is required"),
			validation.Length(0, 2000).Error("Content is too long")),
	)
}

// ErrMissingArticle is returned when a comment is posted without an article.
var ErrMissingArticle = entity.ValidationErrors{ArticleParam: "Article is required"}

type CreateHandler struct{ Svc *commentUC.Service }

// ServeHTTP posts a comment by the signed-in user on the article given in
// the articleId query parameter.
// @Summary      Create comment
// @Tags         comments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        articleId query string true "Article ID"
// @Param        request body createRequest true "Comment"
// @Success      201 {object} dto.Comment
// @Failure      400 {object} respond.ErrorResponse
// @Failure      404 {object} respond.ErrorResponse "Article not found"
// @Router       /api/comments [post]
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	email, ok := auth.EmailFromContext(r.Context())
	if !ok {
		respond.Problem(w, r, auth.ErrUnauthenticated)
		return
	}
	articleID := strings.TrimSpace(r.URL.Query().Get(ArticleParam))
	if articleID == "" {
		respond.Problem(w, r, ErrMissingArticle)
		return
	}
	var req createRequest
	if err := request.Decode(r, &req); err != nil {
		respond.Problem(w, r, err)
		return
	}
	v, err := h.Svc.Create(r.Context(), req.Content, articleID, email)
	if err != nil {
		respond.Problem(w, r, err)
		return
	}
	respond.JSON(w, http.StatusCreated, dto.FromComment(v))
}
