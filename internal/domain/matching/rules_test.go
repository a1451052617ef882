package matching

import (
	"testing"
	"time"

	"carelink/internal/domain/core"
)

func datePtr(t time.Time) *time.Time { return &t }

func compliantCaregiver(id string) core.Caregiver {
	checked := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	oriented := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
	return core.Caregiver{
		ID:                  id,
		FirstName:           "Test",
		LastName:            "Caregiver",
		Status:              core.StatusActive,
		Classification:      core.ClassificationBasic,
		BackgroundCheckDate: &checked,
		OrientationDate:     &oriented,
	}
}

func TestContinuityRule(t *testing.T) {
	caregiver := compliantCaregiver("cg-1")

	delta, reason := continuityRule(caregiver, []core.Assignment{{CaregiverID: "cg-1", IsPrimary: true}})
	if delta != 50 || reason != "Primary caregiver" {
		t.Fatalf("primary link: got (%d, %q)", delta, reason)
	}

	delta, reason = continuityRule(caregiver, []core.Assignment{{CaregiverID: "cg-1"}})
	if delta != 20 || reason != "Previously assigned" {
		t.Fatalf("prior link: got (%d, %q)", delta, reason)
	}

	delta, reason = continuityRule(caregiver, []core.Assignment{{CaregiverID: "cg-other", IsPrimary: true}})
	if delta != 0 || reason != "" {
		t.Fatalf("unrelated link: got (%d, %q)", delta, reason)
	}
}

func TestClassificationRule(t *testing.T) {
	client := core.Client{Classification: core.ClassificationIntermediate}

	caregiver := compliantCaregiver("cg-1")
	caregiver.Classification = core.ClassificationComprehensive
	delta, reason := classificationRule(caregiver, client)
	if delta != 15 {
		t.Fatalf("expected +15 for covering tier, got %d", delta)
	}
	if reason != "Classification: Comprehensive" {
		t.Fatalf("unexpected reason %q", reason)
	}

	caregiver.Classification = core.ClassificationIntermediate
	if delta, _ := classificationRule(caregiver, client); delta != 15 {
		t.Fatalf("equal tier must qualify, got %d", delta)
	}

	caregiver.Classification = core.ClassificationBasic
	delta, reason = classificationRule(caregiver, client)
	if delta != -10 {
		t.Fatalf("expected -10 for under-classification, got %d", delta)
	}
	if reason != "" {
		t.Fatalf("penalty must carry no reason, got %q", reason)
	}
}

func TestMedicationRule(t *testing.T) {
	caregiver := compliantCaregiver("cg-1")
	caregiver.Certifications = []string{"CPR", "Medication Aide"}

	if delta, _ := medicationRule(caregiver, core.Client{CanSelfDirect: true}); delta != 10 {
		t.Fatalf("expected +10 for med aide with self-directing client, got %d", delta)
	}
	if delta, _ := medicationRule(caregiver, core.Client{CanSelfDirect: false}); delta != 0 {
		t.Fatalf("non-self-directing client must not award the bonus, got %d", delta)
	}
	caregiver.Certifications = []string{"CPR"}
	if delta, _ := medicationRule(caregiver, core.Client{CanSelfDirect: true}); delta != 0 {
		t.Fatalf("missing certification must not award the bonus, got %d", delta)
	}
}

func TestDriverRule(t *testing.T) {
	caregiver := compliantCaregiver("cg-1")
	if delta, _ := driverRule(caregiver); delta != 0 {
		t.Fatalf("no license must score 0, got %d", delta)
	}
	caregiver.DriverLicense = true
	if delta, _ := driverRule(caregiver); delta != 5 {
		t.Fatalf("license must score +5, got %d", delta)
	}
}

func TestComplianceRule(t *testing.T) {
	now := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)

	caregiver := compliantCaregiver("cg-1")
	delta, reason := complianceRule(caregiver, now)
	if delta != 5 || reason != "" {
		t.Fatalf("current docs without renewal date: got (%d, %q)", delta, reason)
	}

	caregiver.BackgroundCheckRenewalDue = datePtr(now.AddDate(1, 0, 0))
	if delta, _ := complianceRule(caregiver, now); delta != 5 {
		t.Fatalf("future renewal date: got %d", delta)
	}

	caregiver.BackgroundCheckRenewalDue = datePtr(now.AddDate(0, -1, 0))
	delta, reason = complianceRule(caregiver, now)
	if delta != -20 || reason != "Background check EXPIRED" {
		t.Fatalf("overdue renewal: got (%d, %q)", delta, reason)
	}

	caregiver.BackgroundCheckDate = nil
	delta, reason = complianceRule(caregiver, now)
	if delta != -15 || reason != "Missing compliance docs" {
		t.Fatalf("missing background check: got (%d, %q)", delta, reason)
	}

	caregiver = compliantCaregiver("cg-1")
	caregiver.OrientationDate = nil
	if delta, _ := complianceRule(caregiver, now); delta != -15 {
		t.Fatalf("missing orientation: got %d", delta)
	}
}

func TestScoreCaregiverFoldsAllRules(t *testing.T) {
	now := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	caregiver := compliantCaregiver("cg-1")
	caregiver.Classification = core.ClassificationComprehensive
	caregiver.Certifications = []string{"Medication Aide"}
	caregiver.DriverLicense = true
	client := core.Client{Classification: core.ClassificationIntermediate, CanSelfDirect: true}
	assignments := []core.Assignment{{CaregiverID: "cg-1", IsPrimary: true}}

	score, reasons := scoreCaregiver(caregiver, client, assignments, now)
	if score != 50+15+10+5+5 {
		t.Fatalf("expected 85, got %d", score)
	}
	want := []string{"Primary caregiver", "Classification: Comprehensive"}
	if len(reasons) != len(want) {
		t.Fatalf("unexpected reasons %v", reasons)
	}
	for i := range want {
		if reasons[i] != want[i] {
			t.Fatalf("reason %d: got %q, want %q", i, reasons[i], want[i])
		}
	}
}
