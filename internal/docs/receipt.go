// Package docs renders trip receipts as PDF.
package docs

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"

	"rideshare/internal/domain"
	"rideshare/internal/drivers"
	"rideshare/internal/riders"
	"rideshare/internal/trips"
	"rideshare/internal/utils"
)

// ReceiptData is the eagerly-loaded context for one receipt.
type ReceiptData struct {
	TripID      int64
	RiderName   string
	DriverName  string
	Stops       []string
	DistanceKm  float64
	FareAmount  int64
	RequestedAt string
	CompletedAt string
}

// Service builds receipts for completed trips. Loader is replaceable in
// tests.
type Service struct {
	DB        *sql.DB
	RequestID string
	Loader    func(ctx context.Context, tripID int64) (ReceiptData, error)
}

// Receipt renders the PDF for a completed trip and returns the bytes plus
// a download filename. Non-completed trips are a conflict.
func (s Service) Receipt(ctx context.Context, tripID int64) ([]byte, string, error) {
	load := s.Loader
	if load == nil {
		load = s.loadReceiptData
	}
	data, err := load(ctx, tripID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "receipt", fmt.Sprintf("trip_id=%d", tripID))
	return buildReceiptPDF(data)
}

func (s Service) loadReceiptData(ctx context.Context, tripID int64) (ReceiptData, error) {
	t, err := trips.Queries{DB: s.DB}.GetByID(ctx, tripID)
	if err != nil {
		return ReceiptData{}, err
	}
	if t.Status != trips.StatusCompleted {
		return ReceiptData{}, domain.ConflictError{Resource: "trip", Msg: "receipt available after completion"}
	}

	out := ReceiptData{
		TripID:      t.ID,
		DistanceKm:  t.DistanceKm,
		FareAmount:  t.FareAmount,
		RequestedAt: t.RequestedAt,
		CompletedAt: t.CompletedAt,
	}
	for _, stop := range t.Stops {
		out.Stops = append(out.Stops, stop.Label)
	}

	if r, err := (riders.Queries{DB: s.DB}).GetByID(ctx, t.RiderID); err == nil {
		out.RiderName = r.Name
	}
	if t.DriverID != 0 {
		if d, err := (drivers.Queries{DB: s.DB}).GetByID(ctx, t.DriverID); err == nil {
			out.DriverName = d.Name
		}
	}
	return out, nil
}

// tripDuration renders the requested-to-completed span in whole minutes.
func tripDuration(requestedAt, completedAt string) (string, bool) {
	start, err := utils.ParseDateTime(requestedAt)
	if err != nil {
		return "", false
	}
	end, err := utils.ParseDateTime(completedAt)
	if err != nil || end.Before(start) {
		return "", false
	}
	mins := int(end.Sub(start).Round(time.Minute) / time.Minute)
	return fmt.Sprintf("%d min", mins), true
}

func safe(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

func buildReceiptPDF(d ReceiptData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Trip Receipt", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "TRIP RECEIPT")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Trip        : #%d", d.TripID),
		fmt.Sprintf("Rider       : %s", safe(d.RiderName, "-")),
		fmt.Sprintf("Driver      : %s", safe(d.DriverName, "-")),
		fmt.Sprintf("Route       : %s", safe(strings.Join(d.Stops, " -> "), "-")),
		fmt.Sprintf("Distance    : %.1f km", d.DistanceKm),
		fmt.Sprintf("Requested   : %s", safe(d.RequestedAt, "-")),
		fmt.Sprintf("Completed   : %s", safe(d.CompletedAt, "-")),
	}
	if dur, ok := tripDuration(d.RequestedAt, d.CompletedAt); ok {
		lines = append(lines, fmt.Sprintf("Duration    : %s", dur))
	}
	for _, s := range lines {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, "Total: "+utils.FormatCents(d.FareAmount))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Thank you for riding with us.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", domain.InternalError{Msg: "render receipt", Err: err}
	}

	filename := fmt.Sprintf("RECEIPT_%d.pdf", d.TripID)
	return buf.Bytes(), filename, nil
}
