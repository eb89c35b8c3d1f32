// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package tracker implements the application store: a CSV-backed table of job
// applications with schema checks, a (company, role) uniqueness rule and
// filtered queries.
package tracker

import (
	"strings"
	"time"
)

// Status is the lifecycle stage of an application.
type Status string

const (
	StatusApplied   Status = "applied"
	StatusInterview Status = "interview"
	StatusRejected  Status = "rejected"
	StatusOffer     Status = "offer"
)

// Statuses lists every allowed status in sorted order.
var Statuses = []Status{StatusApplied, StatusInterview, StatusOffer, StatusRejected}

// DateLayout is the ISO-8601 calendar date format used for date_applied.
const DateLayout = "2006-01-02"

// UnknownSource labels applications with an empty source in summaries.
const UnknownSource = "Unknown"

// Columns is the exact header of the data file.
var Columns = []string{"company", "role", "location", "date_applied", "status", "source", "notes"}

// Application is one job-application entry. All fields are stored as strings.
type Application struct {
	Company     string
	Role        string
	Location    string
	DateApplied string
	Status      Status
	Source      string
	Notes       string
}

// Key returns the (company, role) pair that identifies the application.
func (a Application) Key() (string, string) { return a.Company, a.Role }

// matches compares the stored keys with surrounding whitespace removed, so rows
// from hand-edited files still match trimmed input.
func (a Application) matches(company, role string) bool {
	return strings.TrimSpace(a.Company) == company && strings.TrimSpace(a.Role) == role
}

// fields returns the record in Columns order.
func (a Application) fields() []string {
	return []string{a.Company, a.Role, a.Location, a.DateApplied, string(a.Status), a.Source, a.Notes}
}

func (a Application) trimmed() Application {
	return Application{
		Company:     cleanText(a.Company),
		Role:        cleanText(a.Role),
		Location:    cleanText(a.Location),
		DateApplied: cleanText(a.DateApplied),
		Status:      Status(cleanText(string(a.Status))),
		Source:      cleanText(a.Source),
		Notes:       cleanText(a.Notes),
	}
}

// cleanText trims s and folds CRLF line breaks to LF. The CSV reader returns
// LF for line breaks inside quoted fields, so stored values must use LF too.
func cleanText(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), "\r\n", "\n")
}

// NormalizeStatus trims and lowercases s and checks it against the allowed set.
func NormalizeStatus(s string) (Status, error) {
	status := Status(strings.ToLower(strings.TrimSpace(s)))
	if status == "" {
		return "", Errorf(KindInvalidStatus, "status cannot be empty")
	}
	for _, allowed := range Statuses {
		if status == allowed {
			return status, nil
		}
	}
	return "", Errorf(KindInvalidStatus, "invalid status '%s'. Allowed: %s", status, allowedStatuses())
}

func allowedStatuses() string {
	names := make([]string, len(Statuses))
	for i, s := range Statuses {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// RequireNonEmpty trims value and fails with KindMissingRequiredField if nothing is left.
func RequireNonEmpty(value, field string) (string, error) {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" {
		return "", Errorf(KindMissingRequiredField, "--%s is required and cannot be empty", field)
	}
	return cleaned, nil
}

// normalizeDate defaults an empty date to today and validates anything else.
func normalizeDate(value string, now time.Time) (string, error) {
	if value == "" {
		return now.Format(DateLayout), nil
	}
	if _, err := time.Parse(DateLayout, value); err != nil {
		return "", Errorf(KindInvalidDate, "invalid date_applied '%s', expected YYYY-MM-DD", value)
	}
	return value, nil
}
