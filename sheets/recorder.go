package sheets

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/lettered/verifyapi/form"
	"github.com/lettered/verifyapi/types"
)

// ErrNotConfigured reports that no tabular store credentials are present.
// The agent logs it and moves on; it never fails the submission.
const ErrNotConfigured = types.SentinelError("tabular store not configured")

// Recorder appends one submission row to the tabular store.
type Recorder interface {
	Append(
		ctx context.Context, sub *form.SanitizedSubmission, mediaUrl string,
	) error
}

// Disabled is the Recorder used when Google Sheets is unconfigured.
type Disabled struct{}

func (Disabled) Append(
	ctx context.Context, sub *form.SanitizedSubmission, mediaUrl string,
) error {
	return ErrNotConfigured
}

// valuesAppender is the one Sheets API call the recorder makes, extracted
// for unit testing.
type valuesAppender interface {
	Append(
		ctx context.Context,
		spreadsheetId, appendRange string,
		values [][]interface{},
	) error
}

type sheetsValuesAppender struct {
	service *sheets.Service
}

func (a *sheetsValuesAppender) Append(
	ctx context.Context,
	spreadsheetId, appendRange string,
	values [][]interface{},
) error {
	valueRange := &sheets.ValueRange{Values: values}
	_, err := a.service.Spreadsheets.Values.
		Append(spreadsheetId, appendRange, valueRange).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	return err
}

// SheetsRecorder appends rows via the Google Sheets values.append API.
type SheetsRecorder struct {
	Appender      valuesAppender
	SpreadsheetId string
	Range         string
	Log           *log.Logger
}

func NewSheetsRecorder(
	ctx context.Context,
	credentialsJson []byte,
	spreadsheetId, appendRange string,
	logger *log.Logger,
) (*SheetsRecorder, error) {
	creds, err := google.CredentialsFromJSON(
		ctx, credentialsJson, sheets.SpreadsheetsScope,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Google credentials: %s", err)
	}

	service, err := sheets.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("failed to create Sheets client: %s", err)
	}

	if appendRange == "" {
		appendRange = DefaultRange
	}
	return &SheetsRecorder{
		Appender:      &sheetsValuesAppender{service},
		SpreadsheetId: spreadsheetId,
		Range:         appendRange,
		Log:           logger,
	}, nil
}

func (r *SheetsRecorder) Append(
	ctx context.Context, sub *form.SanitizedSubmission, mediaUrl string,
) error {
	row := BuildRow(sub, mediaUrl)
	values := [][]interface{}{row}

	err := r.Appender.Append(ctx, r.SpreadsheetId, r.Range, values)
	if err != nil {
		return fmt.Errorf(
			"failed to append row to sheet %s: %s", r.SpreadsheetId, err,
		)
	}
	r.Log.Printf("appended submission row for %s", sub.Email)
	return nil
}
