package user

import (
	"context"
	"net/http"

	"mdd-backend/internal/handler/http/dto"
	"mdd-backend/internal/handler/http/pathutil"
	"mdd-backend/internal/handler/http/respond"
	userUC "mdd-backend/internal/usecase/user"
)

type SubscribeHandler struct{ Svc *userUC.Service }

// ServeHTTP subscribes the signed-in user to a topic. Subscribing twice is a no-op.
// @Summary      Subscribe to topic
// @Tags         subscriptions
// @Security     BearerAuth
// @Produce      json
// @Param        topicId path string true "Topic ID"
// @Success      201 {object} dto.User
// @Failure      404 {object} respond.ErrorResponse "Topic not found"
// @Router       /api/users/{topicId}/subscriptions [post]
func (h SubscribeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	change(w, r, http.StatusCreated, h.Svc.Subscribe)
}

type UnsubscribeHandler struct{ Svc *userUC.Service }

// ServeHTTP unsubscribes the signed-in user from a topic. Unknown topics are a no-op.
// @Summary      Unsubscribe from topic
// @Tags         subscriptions
// @Security     BearerAuth
// @Produce      json
// @Param        topicId path string true "Topic ID"
// @Success      200 {object} dto.User
// @Router       /api/users/{topicId}/unsubscriptions [delete]
func (h UnsubscribeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	change(w, r, http.StatusOK, h.Svc.Unsubscribe)
}

func change(w http.ResponseWriter, r *http.Request, status int,
	apply func(ctx context.Context, topicID, email string) (*userUC.View, error)) {
	email, err := currentEmail(r)
	if err != nil {
		respond.Problem(w, r, err)
		return
	}
	topicID, err := pathutil.ID(r, "topicId")
	if err != nil {
		respond.Problem(w, r, err)
		return
	}
	v, err := apply(r.Context(), topicID, email)
	if err != nil {
		respond.Problem(w, r, err)
		return
	}
	respond.JSON(w, status, dto.FromUser(v))
}
