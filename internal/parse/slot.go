package parse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"appliance-service-backend/internal/model"
)

var (
	spaceRe = regexp.MustCompile(`\s+`)
	slotRe  = regexp.MustCompile(`^(\d{1,2})(?::(\d{2}))?\s*(?:-|–|a)\s*(\d{1,2})(?::(\d{2}))?$`)
)

// dateLayouts are tried in order; the first is canonical.
var dateLayouts = []string{
	model.DateLayout,
	time.RFC3339,
	"02/01/2006",
}

// TimeSlot normalises a raw time window such as "9:00 - 11:00" or "9-11"
// and checks it against model.TimeSlots.
func TimeSlot(raw string) (string, error) {
	s := strings.TrimSpace(spaceRe.ReplaceAllString(raw, " "))
	if s == "" {
		return "", fmt.Errorf("time slot is empty")
	}

	m := slotRe.FindStringSubmatch(s)
	if m == nil {
		return "", fmt.Errorf("unrecognised time slot %q", raw)
	}
	from, err := clock(m[1], m[2])
	if err != nil {
		return "", fmt.Errorf("unrecognised time slot %q: %w", raw, err)
	}
	to, err := clock(m[3], m[4])
	if err != nil {
		return "", fmt.Errorf("unrecognised time slot %q: %w", raw, err)
	}

	slot := from + "-" + to
	if model.SlotIndex(slot) < 0 {
		return "", fmt.Errorf("time slot %q is not one of %s", slot, strings.Join(model.TimeSlots, ", "))
	}
	return slot, nil
}

func clock(hour, minute string) (string, error) {
	h, err := strconv.Atoi(hour)
	if err != nil || h > 23 {
		return "", fmt.Errorf("bad hour %q", hour)
	}
	mm := 0
	if minute != "" {
		if mm, err = strconv.Atoi(minute); err != nil || mm > 59 {
			return "", fmt.Errorf("bad minute %q", minute)
		}
	}
	return fmt.Sprintf("%02d:%02d", h, mm), nil
}

// Date parses a calendar date. Besides YYYY-MM-DD it accepts an RFC 3339
// timestamp (the day in its own offset is kept) and DD/MM/YYYY.
func Date(raw string) (model.Date, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return model.Date{}, fmt.Errorf("date is empty")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return model.NewDate(t), nil
		}
	}
	return model.Date{}, fmt.Errorf("unrecognised date %q", raw)
}

// OrderStatus maps loose spellings ("en_proceso", "COMPLETADO") onto the
// canonical status values.
func OrderStatus(raw string) (model.OrderStatus, error) {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.NewReplacer("_", " ", "-", " ").Replace(key)
	key = spaceRe.ReplaceAllString(key, " ")
	for _, s := range model.OrderStatuses {
		if strings.ToLower(string(s)) == key {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown order status %q", raw)
}
