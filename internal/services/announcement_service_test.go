package services

import (
	"testing"

	"tourapp/internal/domain"
	"tourapp/internal/domain/models"
)

func TestValidatePayloadAudience(t *testing.T) {
	svc := AnnouncementService{}
	vid := int64(2)

	cases := []struct {
		name    string
		payload models.AnnouncementPayload
		wantErr bool
	}{
		{"all", models.AnnouncementPayload{Title: "t", Body: "b", Audience: "all"}, false},
		{"vehicle ok", models.AnnouncementPayload{Title: "t", Body: "b", Audience: "vehicle", VehicleID: &vid}, false},
		{"vehicle tanpa id", models.AnnouncementPayload{Title: "t", Body: "b", Audience: "vehicle"}, true},
		{"users ok", models.AnnouncementPayload{Title: "t", Body: "b", Audience: "users", Recipients: []int64{1}}, false},
		{"users tanpa penerima", models.AnnouncementPayload{Title: "t", Body: "b", Audience: "users"}, true},
		{"audience asing", models.AnnouncementPayload{Title: "t", Body: "b", Audience: "broadcast"}, true},
	}

	for _, tc := range cases {
		_, err := svc.ValidatePayload(tc.payload, 9)
		if tc.wantErr && !domain.IsValidation(err) {
			t.Fatalf("%s: expected validation error, got %v", tc.name, err)
		}
		if !tc.wantErr && err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
	}
}

func TestValidatePayloadNormalizesAudience(t *testing.T) {
	svc := AnnouncementService{}

	out, err := svc.ValidatePayload(models.AnnouncementPayload{
		Title:    "  Kumpul  ",
		Body:     "Jam 7",
		Audience: " ALL ",
	}, 9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Audience != domain.AudienceAll {
		t.Fatalf("audience = %q, want all", out.Audience)
	}
	if out.Title != "Kumpul" {
		t.Fatalf("title tidak di-trim: %q", out.Title)
	}
	if out.CreatedBy != 9 {
		t.Fatalf("created_by = %d", out.CreatedBy)
	}
}

func TestValidatePayloadExpiry(t *testing.T) {
	svc := AnnouncementService{}

	out, err := svc.ValidatePayload(models.AnnouncementPayload{
		Title:     "t",
		Body:      "b",
		Audience:  "all",
		ExpiresAt: "2026-08-30 18:00:00",
	}, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.ExpiresAt == nil {
		t.Fatal("expires_at tidak terisi")
	}

	_, err = svc.ValidatePayload(models.AnnouncementPayload{
		Title:     "t",
		Body:      "b",
		Audience:  "all",
		ExpiresAt: "30/08/2026",
	}, 1)
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error for bad expiry, got %v", err)
	}
}
