// Package router classifies inbound message bodies against the fixed
// command table and produces the reply.
package router

import (
	"context"
	"log/slog"
	"strings"

	"zenbot/internal/domain"
)

// Replies and markers for the fixed commands.
const (
	pongReply = "pong"

	helpReply = "Comandos:\n" +
		"• /ping — prueba rápida\n" +
		"• /code <lenguaje> <instrucción> — responde SOLO con código\n" +
		"• /logtest — prueba de escritura en Sheets\n"

	emptyReply = "Hola! Recibí tu mensaje vacío. Probá enviarme algo de texto 🙂"

	logTestReply = "Log test ✅ (se intentó escribir en Sheets)."
	logTestBody  = "[/logtest]"
	logTestNote  = "OK log test"

	codePrefix = "/code"
)

// Composer produces a reply for free-form user text.
type Composer interface {
	Compose(ctx context.Context, userText string) string
}

// AuditLog is the append-only row sink used by the /logtest probe.
type AuditLog interface {
	Append(ctx context.Context, sender, body, reply string) error
}

// Router maps message bodies to replies. Exact commands win over the /code
// prefix, which wins over the conversational catch-all.
type Router struct {
	conversational Composer
	code           Composer
	audit          AuditLog
	logger         *slog.Logger
}

// New creates a router with its collaborators injected.
func New(conversational, code Composer, audit AuditLog, logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{
		conversational: conversational,
		code:           code,
		audit:          audit,
		logger:         logger,
	}
}

// Route classifies msg.Body and returns the reply. Classification compares
// the trimmed, lowercased body; composers receive the original casing.
func (r *Router) Route(ctx context.Context, msg domain.InboundMessage) domain.RoutedReply {
	body := strings.TrimSpace(msg.Body)
	normalized := strings.ToLower(body)

	switch normalized {
	case "ping", "/ping":
		return domain.RoutedReply{Text: pongReply}

	case "help", "/help", "ayuda", "/ayuda":
		return domain.RoutedReply{Text: helpReply}

	case "/logtest":
		// The probe writes its own row with a synthetic body marker; the
		// reply is returned even when the write fails.
		if err := r.audit.Append(ctx, msg.Sender, logTestBody, logTestNote); err != nil {
			r.logger.Error("logtest append failed",
				slog.String("sender", msg.Sender),
				slog.String("error", err.Error()),
			)
		}
		return domain.RoutedReply{Text: logTestReply, AlreadyLogged: true}

	case "":
		return domain.RoutedReply{Text: emptyReply}
	}

	if strings.HasPrefix(normalized, codePrefix) {
		request := strings.TrimSpace(body[len(codePrefix):])
		return domain.RoutedReply{Text: r.code.Compose(ctx, request)}
	}

	return domain.RoutedReply{Text: r.conversational.Compose(ctx, body)}
}
