package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"contact-navigator/errors"
	"contact-navigator/models"
)

// ParseQueues reads the queue/intent baseline CSV and returns one
// IntentRecord per data row. Lines starting with '#' are headers/comments.
// Expected columns:
//
//	Intent, Channel, Volume, AHTSeconds, ACWSeconds, Complexity,
//	AuthScore, EmotionalScore, RepeatRate, TransferRate, EscalationRate,
//	FCRRate, CSAT
//
// plus an optional granular handle-time triple (TalkSeconds, HoldSeconds,
// SearchSeconds) appended at the end. AuthScore, EmotionalScore,
// RepeatRate, FCRRate and CSAT may be empty; enrichment derives them.
func ParseQueues(r io.Reader) ([]models.IntentRecord, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	var data []models.IntentRecord
	lineNum := 0

	for {
		record, err := reader.Read()
		lineNum++
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV at line %d: %w", lineNum, err)
		}

		if len(record) > 0 && strings.HasPrefix(record[0], "#") {
			continue
		}
		if isBlank(record) {
			continue
		}

		if len(record) != 13 && len(record) != 16 {
			return nil, &errors.ParseError{
				Line:   lineNum,
				Record: record,
				Err:    errors.ErrInvalidFieldCount,
			}
		}

		rec := models.IntentRecord{}
		rec.Intent = strings.TrimSpace(record[0])
		if rec.Intent == "" {
			return nil, &errors.ParseError{
				Line:   lineNum,
				Record: record,
				Err:    errors.ErrEmptyRecord,
			}
		}
		rec.Channel = NormalizeChannel(record[1])

		rec.Volume, err = parseNonNegative(record[2], errors.ErrInvalidVolume)
		if err != nil {
			return nil, &errors.ParseError{Line: lineNum, Record: record, Err: err}
		}
		rec.AHTSeconds, err = parsePositive(record[3], errors.ErrInvalidAHT)
		if err != nil {
			return nil, &errors.ParseError{Line: lineNum, Record: record, Err: err}
		}
		rec.ACWSeconds, err = parseNonNegative(record[4], errors.ErrInvalidAHT)
		if err != nil {
			return nil, &errors.ParseError{Line: lineNum, Record: record, Err: err}
		}
		rec.Complexity, err = parseUnit(record[5], errors.ErrInvalidComplexity)
		if err != nil {
			return nil, &errors.ParseError{Line: lineNum, Record: record, Err: err}
		}

		rec.AuthScore, err = parseOptionalUnit(record[6])
		if err != nil {
			return nil, &errors.ParseError{Line: lineNum, Record: record, Err: err}
		}
		rec.EmotionalScore, err = parseOptionalUnit(record[7])
		if err != nil {
			return nil, &errors.ParseError{Line: lineNum, Record: record, Err: err}
		}
		rec.RepeatRate, err = parseOptionalUnit(record[8])
		if err != nil {
			return nil, &errors.ParseError{Line: lineNum, Record: record, Err: err}
		}
		rec.TransferRate, err = parseUnit(record[9], errors.ErrInvalidRate)
		if err != nil {
			return nil, &errors.ParseError{Line: lineNum, Record: record, Err: err}
		}
		rec.EscalationRate, err = parseUnit(record[10], errors.ErrInvalidRate)
		if err != nil {
			return nil, &errors.ParseError{Line: lineNum, Record: record, Err: err}
		}
		rec.FCRRate, err = parseOptionalUnit(record[11])
		if err != nil {
			return nil, &errors.ParseError{Line: lineNum, Record: record, Err: err}
		}
		rec.CSAT, err = parseOptionalUnit(record[12])
		if err != nil {
			return nil, &errors.ParseError{Line: lineNum, Record: record, Err: err}
		}

		if len(record) == 16 {
			talk, terr := parseNonNegative(record[13], errors.ErrInvalidAHT)
			if terr != nil {
				return nil, &errors.ParseError{Line: lineNum, Record: record, Err: terr}
			}
			hold, herr := parseNonNegative(record[14], errors.ErrInvalidAHT)
			if herr != nil {
				return nil, &errors.ParseError{Line: lineNum, Record: record, Err: herr}
			}
			search, serr := parseNonNegative(record[15], errors.ErrInvalidAHT)
			if serr != nil {
				return nil, &errors.ParseError{Line: lineNum, Record: record, Err: serr}
			}
			rec.Breakdown = &models.AHTBreakdown{
				TalkSeconds:   talk,
				HoldSeconds:   hold,
				SearchSeconds: search,
			}
		}

		data = append(data, rec)
	}

	return data, nil
}

// ParseRoles reads the staffing baseline CSV. Expected columns:
//
//	Role, FTE, AnnualCostPerFTE, Segment, Migratable
//
// Migratable accepts yes/no, true/false, 1/0.
func ParseRoles(r io.Reader) ([]models.Role, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	var roles []models.Role
	lineNum := 0

	for {
		record, err := reader.Read()
		lineNum++
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV at line %d: %w", lineNum, err)
		}

		if len(record) > 0 && strings.HasPrefix(record[0], "#") {
			continue
		}
		if isBlank(record) {
			continue
		}

		if len(record) != 5 {
			return nil, &errors.ParseError{
				Line:   lineNum,
				Record: record,
				Err:    errors.ErrInvalidFieldCount,
			}
		}

		role := models.Role{}
		role.Name = strings.TrimSpace(record[0])
		if role.Name == "" {
			return nil, &errors.ParseError{
				Line:   lineNum,
				Record: record,
				Err:    errors.ErrEmptyRecord,
			}
		}

		role.FTE, err = parsePositive(record[1], errors.ErrInvalidFTE)
		if err != nil {
			return nil, &errors.ParseError{Line: lineNum, Record: record, Err: err}
		}
		role.AnnualCostPerFTE, err = parseNonNegative(record[2], errors.ErrInvalidCost)
		if err != nil {
			return nil, &errors.ParseError{Line: lineNum, Record: record, Err: err}
		}
		role.Segment = strings.ToLower(strings.TrimSpace(record[3]))

		role.Migratable, err = parseBool(record[4])
		if err != nil {
			return nil, &errors.ParseError{Line: lineNum, Record: record, Err: err}
		}

		roles = append(roles, role)
	}

	return roles, nil
}

// channelSynonyms folds the channel spellings seen in operational exports
// onto the canonical channel names the heuristics key on.
var channelSynonyms = map[string]string{
	"phone":         "voice",
	"call":          "voice",
	"calls":         "voice",
	"telephone":     "voice",
	"inbound voice": "voice",
	"voice":         "voice",
	"webchat":       "chat",
	"live chat":     "chat",
	"livechat":      "chat",
	"messaging":     "chat",
	"chat":          "chat",
	"e-mail":        "email",
	"mail":          "email",
	"email":         "email",
	"self-service":  "web",
	"self service":  "web",
	"portal":        "web",
	"website":       "web",
	"web":           "web",
	"mobile app":    "app",
	"mobile":        "app",
	"app":           "app",
	"ivr":           "ivr",
	"social media":  "social",
	"twitter":       "social",
	"facebook":      "social",
	"social":        "social",
	"store":         "retail",
	"branch":        "retail",
	"retail":        "retail",
}

// NormalizeChannel maps a raw channel label onto its canonical name.
// Unrecognized labels pass through lowercased so enrichment can still
// apply its voice-like default.
func NormalizeChannel(raw string) string {
	key := strings.ToLower(strings.TrimSpace(raw))
	if canonical, ok := channelSynonyms[key]; ok {
		return canonical
	}
	return key
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func parseFloat(field string, sentinel error) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", sentinel, err)
	}
	return v, nil
}

func parseNonNegative(field string, sentinel error) (float64, error) {
	v, err := parseFloat(field, sentinel)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, fmt.Errorf("%w: negative value %v", sentinel, v)
	}
	return v, nil
}

func parsePositive(field string, sentinel error) (float64, error) {
	v, err := parseFloat(field, sentinel)
	if err != nil {
		return 0, err
	}
	if v <= 0 {
		return 0, fmt.Errorf("%w: non-positive value %v", sentinel, v)
	}
	return v, nil
}

func parseUnit(field string, sentinel error) (float64, error) {
	v, err := parseFloat(field, sentinel)
	if err != nil {
		return 0, err
	}
	if v < 0 || v > 1 {
		return 0, fmt.Errorf("%w: %v outside [0,1]", sentinel, v)
	}
	return v, nil
}

func parseOptionalUnit(field string) (*float64, error) {
	trimmed := strings.TrimSpace(field)
	if trimmed == "" || trimmed == "-" {
		return nil, nil
	}
	v, err := parseUnit(trimmed, errors.ErrInvalidRate)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func parseBool(field string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(field)) {
	case "yes", "true", "1", "y":
		return true, nil
	case "no", "false", "0", "n", "":
		return false, nil
	default:
		return false, fmt.Errorf("%w: unrecognized boolean %q", errors.ErrInvalidRate, field)
	}
}
