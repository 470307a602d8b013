package preferences

import (
	"fmt"
	"strconv"
	"strings"

	"pomodoro/internal/core/model"
)

// Field is one editable entry in the form.
type Field struct {
	Key   string
	Label string
	Unit  string
	get   func(model.Settings) int
	set   func(*model.Settings, int)
}

// Fields lists the form rows in display order.
var Fields = []Field{
	{
		Key: "work", Label: "Work duration", Unit: "min",
		get: func(settings model.Settings) int { return settings.WorkMinutes },
		set: func(settings *model.Settings, value int) { settings.WorkMinutes = value },
	},
	{
		Key: "short", Label: "Short break", Unit: "min",
		get: func(settings model.Settings) int { return settings.ShortBreakMinutes },
		set: func(settings *model.Settings, value int) { settings.ShortBreakMinutes = value },
	},
	{
		Key: "long", Label: "Long break", Unit: "min",
		get: func(settings model.Settings) int { return settings.LongBreakMinutes },
		set: func(settings *model.Settings, value int) { settings.LongBreakMinutes = value },
	},
	{
		Key: "sessions", Label: "Long break after", Unit: "sessions",
		get: func(settings model.Settings) int { return settings.SessionsBeforeLongBreak },
		set: func(settings *model.Settings, value int) { settings.SessionsBeforeLongBreak = value },
	},
}

// Format renders the field's current value.
func (field Field) Format(settings model.Settings) string {
	return strconv.Itoa(field.get(settings))
}

// Parse reads the form values keyed by Field.Key on top of base. Every field
// must hold a positive integer.
func Parse(base model.Settings, values map[string]string) (model.Settings, error) {
	settings := base
	for _, field := range Fields {
		raw, ok := values[field.Key]
		if !ok {
			continue
		}
		value, err := parsePositiveInt(raw)
		if err != nil {
			return base, fmt.Errorf("%w: %s: %v", model.ErrInvalidSettings, strings.ToLower(field.Label), err)
		}
		field.set(&settings, value)
	}
	if err := settings.Validate(); err != nil {
		return base, err
	}
	return settings, nil
}

func parsePositiveInt(value string) (int, error) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%q is not a whole number", value)
	}
	if parsed <= 0 {
		return 0, fmt.Errorf("must be positive, got %d", parsed)
	}
	return parsed, nil
}
