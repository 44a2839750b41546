package server

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"zenbot/internal/domain"
	"zenbot/internal/twiml"
)

// auditTimeout bounds the detached Sheets append so a slow API call
// cannot hold the handler past the response.
const auditTimeout = 10 * time.Second

// MessageRouter resolves an inbound message to its reply.
type MessageRouter interface {
	Route(ctx context.Context, msg domain.InboundMessage) domain.RoutedReply
}

// AuditLog records exchanges after they are answered.
type AuditLog interface {
	Append(ctx context.Context, sender, body, reply string) error
	AppendDebugRow(ctx context.Context) error
}

// WebhookHandler serves the single webhook endpoint: POSTs carry inbound
// messages and receive TwiML, everything else is treated as a health probe.
type WebhookHandler struct {
	router MessageRouter
	audit  AuditLog
	logger *slog.Logger
}

// NewWebhookHandler creates a handler backed by the given router and audit log.
func NewWebhookHandler(router MessageRouter, audit AuditLog, logger *slog.Logger) *WebhookHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &WebhookHandler{
		router: router,
		audit:  audit,
		logger: logger,
	}
}

// Register mounts the handler at the root path for all methods.
func (h *WebhookHandler) Register(r chi.Router) {
	r.HandleFunc("/", h.handle)
}

func (h *WebhookHandler) handle(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		h.handleMessage(w, r)
		return
	}
	h.handleProbe(w, r)
}

// handleProbe answers health checks. With ?debug=1 it also attempts a real
// Sheets append so operators can verify credentials end to end.
func (h *WebhookHandler) handleProbe(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("debug") == "1" {
		if err := h.audit.AppendDebugRow(r.Context()); err != nil {
			AddError(r.Context(), err)
			http.Error(w, "debug error: "+err.Error(), http.StatusInternalServerError)
			return
		}
		w.Write([]byte("debug wrote row"))
		return
	}
	w.Write([]byte("ok"))
}

func (h *WebhookHandler) handleMessage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		AddError(r.Context(), err)
		http.Error(w, "malformed form body", http.StatusBadRequest)
		return
	}

	msg := inboundFromForm(r)
	AddLogField(r.Context(), "sender", msg.Sender)

	reply := h.router.Route(r.Context(), msg)

	if !reply.AlreadyLogged {
		h.recordExchange(r.Context(), msg, reply.Text)
	}

	payload, err := twiml.Reply(reply.Text)
	if err != nil {
		AddError(r.Context(), err)
		http.Error(w, "encode reply", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", twiml.ContentType)
	w.Write(payload)
}

// inboundFromForm extracts the message fields from the posted form. A
// missing From field maps to the unknown-sender marker; an empty one is
// kept as sent.
func inboundFromForm(r *http.Request) domain.InboundMessage {
	msg := domain.InboundMessage{
		Sender: domain.SenderUnknown,
		Body:   strings.TrimSpace(r.PostFormValue("Body")),
	}
	if vals, ok := r.PostForm["From"]; ok && len(vals) > 0 {
		msg.Sender = vals[0]
	}
	return msg
}

// recordExchange appends the exchange to the audit log. It runs on a
// detached context so request cancellation cannot drop the row, and
// failures never block the reply.
func (h *WebhookHandler) recordExchange(ctx context.Context, msg domain.InboundMessage, reply string) {
	base := WithRequestID(context.Background(), GetRequestID(ctx))
	auditCtx, cancel := context.WithTimeout(base, auditTimeout)
	defer cancel()

	if err := h.audit.Append(auditCtx, msg.Sender, msg.Body, reply); err != nil {
		AddError(ctx, err)
		h.logger.Error("audit append failed",
			"request_id", GetRequestID(ctx),
			"sender", msg.Sender,
			"error", err)
	}
}
