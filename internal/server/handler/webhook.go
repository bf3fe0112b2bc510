// Package handler provides HTTP handlers for the approval gate server.
package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/go-github/v73/github"

	"github.com/sevigo/approval-gate/internal/config"
	"github.com/sevigo/approval-gate/internal/core"
)

// WebhookHandler turns GitHub webhooks into gate requests.
type WebhookHandler struct {
	cfg        *config.Config
	dispatcher core.JobDispatcher
	logger     *slog.Logger
}

// NewWebhookHandler creates a new webhook handler with the given configuration and dispatcher.
func NewWebhookHandler(cfg *config.Config, dispatcher core.JobDispatcher, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{
		cfg:        cfg,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Handle processes GitHub webhook requests.
func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	payload, err := github.ValidatePayload(r, []byte(h.cfg.GitHub.WebhookSecret))
	if err != nil {
		h.logger.Error("invalid webhook payload signature", "error", err)
		http.Error(w, "Invalid signature", http.StatusUnauthorized)
		return
	}

	event, err := github.ParseWebHook(github.WebHookType(r), payload)
	if err != nil {
		h.logger.Error("could not parse webhook", "error", err)
		http.Error(w, "Could not parse webhook", http.StatusBadRequest)
		return
	}

	var (
		req       *core.GateRequest
		ignoreErr error
	)
	switch e := event.(type) {
	case *github.PullRequestEvent:
		req, ignoreErr = core.RequestFromPullRequest(e)
	case *github.IssueCommentEvent:
		req, ignoreErr = core.RequestFromIssueComment(e)
	default:
		h.logger.Debug("ignoring unhandled webhook event type", "type", github.WebHookType(r))
		_, _ = fmt.Fprint(w, "Event type not handled")
		return
	}
	if ignoreErr != nil {
		h.logger.Debug("ignoring webhook", "type", github.WebHookType(r), "reason", ignoreErr.Error())
		_, _ = fmt.Fprint(w, "Event ignored")
		return
	}

	h.dispatch(r.Context(), w, req)
}

func (h *WebhookHandler) dispatch(ctx context.Context, w http.ResponseWriter, req *core.GateRequest) {
	if err := h.dispatcher.Dispatch(ctx, req); err != nil {
		h.logger.Error("failed to dispatch gate job", "error", err, "change", req.Ref.String())
		http.Error(w, "Failed to start gate evaluation", http.StatusInternalServerError)
		return
	}

	h.logger.Info("gate job dispatched", "repo", req.Ref.FullName(), "pr", req.Ref.Number, "trigger", req.Trigger)
	w.WriteHeader(http.StatusAccepted)
	_, _ = fmt.Fprint(w, "Gate evaluation accepted")
}
