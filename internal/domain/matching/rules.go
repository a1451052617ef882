package matching

import (
	"time"

	"carelink/internal/domain/core"
)

const medicationAideCert = "Medication Aide"

// Each scoring rule yields a score delta and an optional human-readable
// reason. Rules are pure over their inputs so they can be tested alone.

func continuityRule(caregiver core.Caregiver, assignments []core.Assignment) (int, string) {
	prior := false
	for _, a := range assignments {
		if a.CaregiverID != caregiver.ID {
			continue
		}
		if a.IsPrimary {
			return 50, "Primary caregiver"
		}
		prior = true
	}
	if prior {
		return 20, "Previously assigned"
	}
	return 0, ""
}

// classificationRule rewards a caregiver whose tier covers the client's
// needs and penalizes an under-classified one. The penalty carries no
// reason text.
func classificationRule(caregiver core.Caregiver, client core.Client) (int, string) {
	if core.ClassificationLevel(caregiver.Classification) >= core.ClassificationLevel(client.Classification) {
		return 15, "Classification: " + caregiver.Classification
	}
	return -10, ""
}

func medicationRule(caregiver core.Caregiver, client core.Client) (int, string) {
	if client.CanSelfDirect && caregiver.HasCertification(medicationAideCert) {
		return 10, ""
	}
	return 0, ""
}

func driverRule(caregiver core.Caregiver) (int, string) {
	if caregiver.DriverLicense {
		return 5, ""
	}
	return 0, ""
}

// complianceRule checks currency of the caregiver's paperwork. Both the
// background check and orientation must be on file; an overdue renewal
// outweighs the currency bonus.
func complianceRule(caregiver core.Caregiver, now time.Time) (int, string) {
	if caregiver.BackgroundCheckDate == nil || caregiver.OrientationDate == nil {
		return -15, "Missing compliance docs"
	}
	if caregiver.BackgroundCheckRenewalDue != nil && caregiver.BackgroundCheckRenewalDue.Before(now) {
		return -20, "Background check EXPIRED"
	}
	return 5, ""
}

func scoreCaregiver(caregiver core.Caregiver, client core.Client, assignments []core.Assignment, now time.Time) (int, []string) {
	score := 0
	reasons := []string{}
	apply := func(delta int, reason string) {
		score += delta
		if reason != "" {
			reasons = append(reasons, reason)
		}
	}
	apply(continuityRule(caregiver, assignments))
	apply(classificationRule(caregiver, client))
	apply(medicationRule(caregiver, client))
	apply(driverRule(caregiver))
	apply(complianceRule(caregiver, now))
	return score, reasons
}
