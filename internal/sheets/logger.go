// Package sheets appends audit rows to a Google Sheets spreadsheet. One row
// is written per handled message; the handler treats failures as
// best-effort except on the explicit debug probe.
package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"zenbot/internal/config"
	"zenbot/internal/domain"
)

// Contents of the synthetic row written by the GET ?debug=1 probe.
const (
	debugSender = "debug"
	debugBody   = "GET ?debug=1"
	debugReply  = "fila de test"
)

// Logger appends audit rows. Credentials are resolved and the service is
// constructed per call, so a revoked credential heals on the next request.
type Logger struct {
	spreadsheetID string
	worksheet     string
	resolver      CredentialResolver
	opts          []option.ClientOption
	logger        *slog.Logger
	now           func() time.Time
}

// NewLogger creates a spreadsheet logger. Extra opts are appended to the
// service options; tests use them to point the client at a fake endpoint.
func NewLogger(cfg config.SheetsConfig, resolver CredentialResolver, logger *slog.Logger, opts ...option.ClientOption) *Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Logger{
		spreadsheetID: cfg.SpreadsheetID,
		worksheet:     cfg.Worksheet,
		resolver:      resolver,
		opts:          opts,
		logger:        logger,
		now:           time.Now,
	}
}

// Append writes one audit row [timestamp, sender, body, reply]. An empty
// sender is recorded as "-". The error is config-kind when the spreadsheet
// ID is unset and store-kind otherwise.
func (l *Logger) Append(ctx context.Context, sender, body, reply string) error {
	if l.spreadsheetID == "" {
		return domain.ErrConfig("SHEET_ID is not set")
	}

	creds, err := l.resolver.Resolve(ctx)
	if err != nil {
		return domain.ErrStore("resolve credentials").WithCause(err)
	}

	opts := append([]option.ClientOption{option.WithCredentials(creds)}, l.opts...)
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return domain.ErrStore("create sheets service").WithCause(err)
	}

	title, err := l.worksheetTitle(ctx, svc)
	if err != nil {
		return err
	}

	row := domain.NewAuditRow(l.now(), sender, body, reply)

	l.logger.Debug("appending audit row",
		slog.String("spreadsheet_id", l.spreadsheetID),
		slog.String("worksheet", title),
	)

	_, err = svc.Spreadsheets.Values.
		Append(l.spreadsheetID, appendRange(title), &sheets.ValueRange{Values: [][]interface{}{row.Values()}}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return domain.ErrStore("append row").WithCause(err)
	}

	return nil
}

// AppendDebugRow writes the synthetic probe row used by the debug endpoint.
func (l *Logger) AppendDebugRow(ctx context.Context) error {
	return l.Append(ctx, debugSender, debugBody, debugReply)
}

// worksheetTitle resolves the configured worksheet title, or the
// spreadsheet's first sheet when none is configured.
func (l *Logger) worksheetTitle(ctx context.Context, svc *sheets.Service) (string, error) {
	meta, err := svc.Spreadsheets.Get(l.spreadsheetID).
		Fields("sheets.properties.title").
		Context(ctx).
		Do()
	if err != nil {
		return "", domain.ErrStore("open spreadsheet").WithCause(err)
	}

	if l.worksheet == "" {
		for _, s := range meta.Sheets {
			if s.Properties != nil {
				return s.Properties.Title, nil
			}
		}
		return "", domain.ErrStore("spreadsheet has no sheets")
	}

	for _, s := range meta.Sheets {
		if s.Properties != nil && s.Properties.Title == l.worksheet {
			return s.Properties.Title, nil
		}
	}
	return "", domain.ErrStore(fmt.Sprintf("worksheet %q not found", l.worksheet))
}

// appendRange quotes the worksheet title for the A1-notation range argument.
func appendRange(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'!A1"
}
