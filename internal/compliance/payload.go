package compliance

import (
	"fmt"
	"time"

	"github.com/JERPCorporation/jerp-compliance/internal/ledger"
	"github.com/JERPCorporation/jerp-compliance/internal/money"
	"github.com/JERPCorporation/jerp-compliance/internal/violation"
)

// Ledger payloads carry decimals and timestamps as strings: canonical
// JSON forbids floats, and strings round-trip exactly.

func violationPayload(v violation.Violation) map[string]any {
	p := map[string]any{
		"violation_id": v.ID,
		"kind":         string(v.Kind),
		"regulation":   v.Regulation,
		"severity":     string(v.Severity),
		"description":  v.Description,
		"entity_type":  v.EntityType,
		"entity_id":    v.EntityID,
		"detected_at":  v.DetectedAt.UTC().Format(time.RFC3339Nano),
		"status":       string(v.Status),
	}
	if v.Impact != nil {
		p["impact"] = money.FormatCurrency(*v.Impact)
	}
	if v.Supersedes != "" {
		p["supersedes"] = v.Supersedes
	}
	return p
}

func statusChangePayload(v violation.Violation, from violation.Status, note string) map[string]any {
	p := map[string]any{
		"violation_id": v.ID,
		"from":         string(from),
		"to":           string(v.Status),
	}
	if note != "" {
		p["note"] = note
	}
	return p
}

// violationFromPayload rebuilds the recorded violation during replay.
func violationFromPayload(entry ledger.Entry) (violation.Violation, error) {
	get := func(key string) (string, error) {
		raw, ok := entry.Payload[key]
		if !ok {
			return "", fmt.Errorf("entry %d: payload missing %q", entry.Seq, key)
		}
		s, ok := raw.(string)
		if !ok {
			return "", fmt.Errorf("entry %d: payload field %q is not a string", entry.Seq, key)
		}
		return s, nil
	}
	opt := func(key string) string {
		if s, ok := entry.Payload[key].(string); ok {
			return s
		}
		return ""
	}

	var v violation.Violation
	var err error
	if v.ID, err = get("violation_id"); err != nil {
		return violation.Violation{}, err
	}

	kind, err := get("kind")
	if err != nil {
		return violation.Violation{}, err
	}
	v.Kind = violation.Kind(kind)

	if v.Regulation, err = get("regulation"); err != nil {
		return violation.Violation{}, err
	}

	severity, err := get("severity")
	if err != nil {
		return violation.Violation{}, err
	}
	v.Severity = violation.Severity(severity)

	if v.Description, err = get("description"); err != nil {
		return violation.Violation{}, err
	}
	if v.EntityType, err = get("entity_type"); err != nil {
		return violation.Violation{}, err
	}
	if v.EntityID, err = get("entity_id"); err != nil {
		return violation.Violation{}, err
	}

	detectedAt, err := get("detected_at")
	if err != nil {
		return violation.Violation{}, err
	}
	if v.DetectedAt, err = time.Parse(time.RFC3339Nano, detectedAt); err != nil {
		return violation.Violation{}, fmt.Errorf("entry %d: bad detected_at: %w", entry.Seq, err)
	}

	status, err := get("status")
	if err != nil {
		return violation.Violation{}, err
	}
	v.Status = violation.Status(status)

	if raw := opt("impact"); raw != "" {
		impact, err := money.Parse(raw)
		if err != nil {
			return violation.Violation{}, fmt.Errorf("entry %d: bad impact: %w", entry.Seq, err)
		}
		v.Impact = &impact
	}
	v.Supersedes = opt("supersedes")
	v.Seq = int64(entry.Seq)
	return v, nil
}
