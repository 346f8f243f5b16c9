package core

// error_messages.go maps technical errors to user-facing messages with codes
// for support reference.
//
// # Error Codes Reference
//
//	SCH001 - Catalog schema: a required catalog column is missing
//	         Action: Rename the column to one of the accepted headers
//	SCH002 - Purchase schema: the ledger lacks part number or quantity
//	         Action: Use the purchase template headers
//	FILE001 - File too large: upload exceeds the configured size limit
//	FILE002 - Invalid CSV: file could not be parsed as CSV
//	FILE003 - Unreadable workbook: file could not be opened as .xlsx
//	FILE004 - Empty file: file has no header row
//	FILE005 - No file: a required file was not provided
//	FILE006 - No catalog: nothing uploaded and the default catalog is missing
//	FAC001 - Invalid factors: an emission factor is out of range
//	RATE001 - Rate limited: too many requests
//	REQ001 - Bad request: the JSON body could not be decoded
//	RUN001 - Busy: every calculation slot is in use
//	ERR000 - Unknown error: check application logs
//
// Typed errors are matched with errors.Is first; remaining errors fall back
// to case-insensitive substring patterns, first match wins.

import (
	"errors"
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string   `json:"message"`           // What happened
	Action  string   `json:"action"`            // What to do about it
	Code    string   `json:"code"`              // Error code for support reference
	Details []string `json:"details,omitempty"` // Offending headers or values
}

var (
	msgCatalogSchema = UserMessage{
		Message: "The catalog is missing required columns",
		Action:  "Rename the columns to one of the accepted headers and upload again",
		Code:    "SCH001",
	}
	msgPurchaseSchema = UserMessage{
		Message: "The purchase file must include part number and quantity columns",
		Action:  "Download the purchase template and match its headers",
		Code:    "SCH002",
	}
	msgInvalidCSV = UserMessage{
		Message: "File is not a valid CSV",
		Action:  "Ensure the file is comma-separated with a header row",
		Code:    "FILE002",
	}
	msgUnreadableWorkbook = UserMessage{
		Message: "The workbook could not be opened",
		Action:  "Save the catalog as .xlsx or .csv and upload again",
		Code:    "FILE003",
	}
	msgEmptyFile = UserMessage{
		Message: "The uploaded file is empty",
		Action:  "Upload a file with a header row and data rows",
		Code:    "FILE004",
	}
	msgNoCatalog = UserMessage{
		Message: "No catalog is available",
		Action:  "Upload a parts catalog or install the default catalog file",
		Code:    "FILE006",
	}
	msgTooManyRuns = UserMessage{
		Message: "The calculator is busy",
		Action:  "Please wait a few seconds and try again",
		Code:    "RUN001",
	}
	msgInvalidFactors = UserMessage{
		Message: "An emission factor is out of range",
		Action:  "Factors must be >= 0 and the baseline PCR% must be 0-100",
		Code:    "FAC001",
	}
)

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns catch errors raised outside this package (HTTP layer, OS).
var errorPatterns = []errorPattern{
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "File exceeds maximum size limit",
			Action:  "Split the file or remove unused sheets",
			Code:    "FILE001",
		},
	},
	{
		pattern: "request body too large",
		msg: UserMessage{
			Message: "File exceeds maximum size limit",
			Action:  "Split the file or remove unused sheets",
			Code:    "FILE001",
		},
	},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "No file was selected",
			Action:  "Please select a file to upload",
			Code:    "FILE005",
		},
	},
	{
		pattern: "invalid request body",
		msg: UserMessage{
			Message: "The request body could not be read",
			Action:  "Send a JSON object with a records array",
			Code:    "REQ001",
		},
	},
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

// defaultMessage is returned when nothing matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
//
// Example:
//
//	_, err := LoadCatalog(data)
//	msg := MapError(err)
//	// msg.Code == "SCH001"
//	// msg.Details == ["missing: Weight (g)", "found: Part #, Description, PCR %"]
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	var schemaErr *SchemaError
	if errors.As(err, &schemaErr) {
		msg := msgCatalogSchema
		if schemaErr.Kind == SchemaPurchase {
			msg = msgPurchaseSchema
		}
		msg.Details = schemaDetails(schemaErr)
		return msg
	}

	switch {
	case errors.Is(err, ErrInvalidFactors):
		return withDetail(msgInvalidFactors, err)
	case errors.Is(err, ErrTooManyRuns):
		return msgTooManyRuns
	case errors.Is(err, ErrNoCatalog):
		return msgNoCatalog
	case errors.Is(err, ErrUnreadableWorkbook):
		return msgUnreadableWorkbook
	case errors.Is(err, ErrInvalidCSV):
		return msgInvalidCSV
	case errors.Is(err, ErrEmptyTable):
		return msgEmptyFile
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

func schemaDetails(e *SchemaError) []string {
	details := []string{
		"missing: " + strings.Join(e.Missing, ", "),
		"found: " + strings.Join(e.Found, ", "),
	}
	table := CatalogAliases
	if e.Kind == SchemaPurchase {
		table = PurchaseAliases
	}
	for _, f := range table.Fields {
		if e.Kind == SchemaPurchase || e.Accepted[f.Canonical] != nil {
			details = append(details, fmt.Sprintf("accepted for %s: %s", f.Canonical, strings.Join(f.Aliases, ", ")))
		}
	}
	return details
}

func withDetail(msg UserMessage, err error) UserMessage {
	msg.Details = []string{err.Error()}
	return msg
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to a specific message rather than ERR000.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
