package state

import (
	"strconv"
	"time"
)

// DefaultSnapshot returns the built-in state graph used when no persisted
// snapshot exists. It mirrors the factory state of the real device: a set of
// demo variables, one clock-driven template, no bitmaps, and a full settings
// tree.
func DefaultSnapshot(now time.Time) *Snapshot {
	unix := strconv.FormatInt(now.Unix(), 10)

	return &Snapshot{
		Variables: map[string]string{
			VarTimestamp:          unix,
			VarDate:               now.Format("2006-01-02"),
			VarTime:               now.Format("15:04:05"),
			VarLastDisplayRefresh: unix,
			"wifi_state":          "connected",
			"mqtt_state":          "connected",
			"temperature":         "23.5",
			"humidity":            "45",
			"weather":             "sunny",
			"battery":             "95",
		},
		Templates: []Template{defaultTemplate()},
		Bitmaps:   []Bitmap{},
		Settings:  DefaultSettings(),
	}
}

// defaultTemplate is a 2.9" clock layout bound to the reserved time variables.
func defaultTemplate() Template {
	return Template{
		Name:            "default_template",
		Width:           296,
		Height:          128,
		BackgroundColor: "white",
		Texts: []TextItem{
			{
				X: 10, Y: 30,
				Color:           "black",
				Font:            "sans-24",
				BackgroundColor: "white",
				Value:           TextValue{Type: TextValueVariable, Variable: VarTime},
			},
			{
				X: 10, Y: 70,
				Color:           "black",
				Font:            "sans-18",
				BackgroundColor: "white",
				Value:           TextValue{Type: TextValueVariable, Variable: VarDate},
			},
			{
				X: 10, Y: 110,
				Color:           "black",
				Font:            "sans-16",
				BackgroundColor: "white",
				Value:           TextValue{Type: TextValueVariable, Variable: "weather"},
			},
		},
		Rectangles: []Rectangle{},
		Bitmaps:    []BitmapPlacement{},
		Lines:      []Line{},
	}
}

// DefaultSettings returns the factory settings tree.
func DefaultSettings() Settings {
	return Settings{
		Display: DisplaySettings{
			DisplayType:  "GxEPD2_290_T5D",
			TemplateName: "default_template",
		},
		MQTT: MQTTSettings{
			Host:                  "localhost",
			Port:                  1883,
			ClientStatusTopic:     "epaper/status",
			VariablesTopicPattern: "epaper/variables/:variable_name",
		},
		Network: NetworkSettings{
			WiFiSSID:  "MOCK_WIFI",
			Hostname:  "epaper-mock",
			MDNSName:  "epaper-mock",
			NTPServer: "pool.ntp.org",
		},
		Power: PowerSettings{
			SleepMode:            "ALWAYS_ON",
			SleepIntervalSeconds: 300,
		},
		System: SystemSettings{
			Timezone: "UTC",
			HardwarePins: map[string]int{
				"DC":   17,
				"RST":  16,
				"BUSY": 7,
			},
		},
		Web: WebSettings{
			Port:         80,
			AuthEnabled:  false,
			AuthUsername: "admin",
			AuthPassword: "admin",
		},
	}
}
