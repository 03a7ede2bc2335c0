package task

import "github.com/aide-sh/aide/internal/storage"

// Rule is one persisted automation rule: a trigger plus the actions it
// fires. Actions are opaque maps; only the triggers the dispatcher knows
// about ever fire.
type Rule struct {
	Trigger   string           `json:"trigger"`
	Time      string           `json:"time,omitempty"`
	Condition string           `json:"condition,omitempty"`
	Actions   []map[string]any `json:"actions"`
}

// defaultRules seeds the rule set on first run.
func defaultRules() map[string]Rule {
	return map[string]Rule{
		"productivity_boost": {
			Trigger: "focus_mode",
			Actions: []map[string]any{
				{"type": "close_distracting_apps", "apps": []string{"firefox", "discord", "steam"}},
				{"type": "start_app", "app": "code"},
				{"type": "set_do_not_disturb", "duration": 120},
			},
		},
		"morning_routine": {
			Trigger: "time_based",
			Time:    "09:00",
			Actions: []map[string]any{
				{"type": "system_info", "display": true},
				{"type": "weather_check", "location": "auto"},
				{"type": "calendar_summary", "days": 1},
			},
		},
		"battery_low": {
			Trigger:   "system_condition",
			Condition: "battery_below_20",
			Actions: []map[string]any{
				{"type": "notification", "message": "Battery low! Consider charging."},
				{"type": "reduce_performance", "mode": "power_saver"},
			},
		},
	}
}

// loadRules restores persisted automation rules, seeding and saving the
// defaults when none exist.
func (d *Dispatcher) loadRules() {
	rules := make(map[string]Rule)
	ok, err := storage.LoadInto(d.docs, storage.DocRules, &rules)
	if err != nil {
		d.logger.Warn("automation rules unreadable, using defaults", "error", err)
	}
	if !ok || len(rules) == 0 {
		rules = defaultRules()
		if err := d.docs.Save(storage.DocRules, rules); err != nil {
			d.logger.Warn("could not save default automation rules", "error", err)
		}
	}
	d.rules = rules
}

// Rules returns a copy of the automation rule table.
func (d *Dispatcher) Rules() map[string]Rule {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make(map[string]Rule, len(d.rules))
	for k, v := range d.rules {
		out[k] = v
	}
	return out
}
