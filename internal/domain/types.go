// Package domain provides the core types shared across the bot: inbound
// messages, routed replies, audit rows, and the canonical error taxonomy.
package domain

import "time"

// SenderUnknown is the sentinel recorded when the webhook carries no From
// field at all. A present-but-empty From is kept as-is and substituted at
// the audit-row boundary instead.
const SenderUnknown = "desconocido"

// TimestampLayout is the audit-row timestamp format: local time, no zone.
const TimestampLayout = "2006-01-02 15:04:05"

// InboundMessage is one webhook message after form extraction. Body is
// trimmed once at extraction; casing and inner whitespace are preserved for
// composers and for the audit log.
type InboundMessage struct {
	Sender string
	Body   string
}

// RoutedReply is the router's classification result.
type RoutedReply struct {
	// Text is the reply to hand back to the messaging provider.
	Text string

	// AlreadyLogged is true when the routed command wrote its own audit row,
	// so the handler must not append a second one.
	AlreadyLogged bool
}

// AuditRow is one append-only entry in the spreadsheet log.
type AuditRow struct {
	Timestamp string
	Sender    string
	Body      string
	Reply     string
}

// NewAuditRow builds the row for one handled exchange. An empty sender is
// recorded as "-"; body and reply are kept as given, empty included.
func NewAuditRow(at time.Time, sender, body, reply string) AuditRow {
	if sender == "" {
		sender = "-"
	}
	return AuditRow{
		Timestamp: at.Format(TimestampLayout),
		Sender:    sender,
		Body:      body,
		Reply:     reply,
	}
}

// Values flattens the row into the spreadsheet's cell order.
func (r AuditRow) Values() []interface{} {
	return []interface{}{r.Timestamp, r.Sender, r.Body, r.Reply}
}
