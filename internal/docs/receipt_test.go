package docs

import (
	"bytes"
	"context"
	"testing"

	"rideshare/internal/domain"
)

func TestReceiptRendersPDF(t *testing.T) {
	svc := Service{
		Loader: func(ctx context.Context, tripID int64) (ReceiptData, error) {
			return ReceiptData{
				TripID:      42,
				RiderName:   "Riley",
				DriverName:  "Dana",
				Stops:       []string{"Central Station", "Airport"},
				DistanceKm:  12.5,
				FareAmount:  1750,
				RequestedAt: "2025-06-01 08:00:00",
				CompletedAt: "2025-06-01 08:40:00",
			}, nil
		},
	}

	pdf, filename, err := svc.Receipt(context.Background(), 42)
	if err != nil {
		t.Fatalf("receipt error: %v", err)
	}
	if filename != "RECEIPT_42.pdf" {
		t.Fatalf("filename = %s", filename)
	}
	if len(pdf) == 0 {
		t.Fatal("empty pdf output")
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("output does not look like a pdf: %q", pdf[:8])
	}
}

func TestTripDuration(t *testing.T) {
	dur, ok := tripDuration("2025-06-01 08:00:00", "2025-06-01 08:40:00")
	if !ok || dur != "40 min" {
		t.Fatalf("got %q ok=%v, want 40 min", dur, ok)
	}

	if _, ok := tripDuration("", "2025-06-01 08:40:00"); ok {
		t.Fatal("blank requested_at should not produce a duration")
	}
	if _, ok := tripDuration("2025-06-01 09:00:00", "2025-06-01 08:00:00"); ok {
		t.Fatal("completed before requested should not produce a duration")
	}
}

func TestReceiptPropagatesLoaderError(t *testing.T) {
	svc := Service{
		Loader: func(ctx context.Context, tripID int64) (ReceiptData, error) {
			return ReceiptData{}, domain.ConflictError{Resource: "trip", Msg: "receipt available after completion"}
		},
	}
	_, _, err := svc.Receipt(context.Background(), 42)
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
}
