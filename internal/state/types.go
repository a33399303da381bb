package state

// Reserved variable names written by the clock ticker. These are refreshed
// automatically and must not be treated as caller-owned.
const (
	VarTimestamp = "timestamp"
	VarDate      = "date"
	VarTime      = "time"

	// VarLastDisplayRefresh records the unix time of the last simulated
	// display refresh (seconds, as a string).
	VarLastDisplayRefresh = "last_display_refresh"
)

// Text value kinds. A text item's content is either a literal string or a
// reference to a named variable resolved at read time.
const (
	TextValueLiteral  = "literal"
	TextValueVariable = "variable"
)

// TextValue is the polymorphic content of a text item.
type TextValue struct {
	Type     string `json:"type"`
	Text     string `json:"text,omitempty"`
	Variable string `json:"variable,omitempty"`
}

// TextItem is a positioned text drawable within a template.
type TextItem struct {
	X               int       `json:"x"`
	Y               int       `json:"y"`
	Color           string    `json:"color,omitempty"`
	Font            string    `json:"font,omitempty"`
	BackgroundColor string    `json:"background_color,omitempty"`
	Value           TextValue `json:"value"`
}

// Rectangle is a positioned rectangle drawable within a template.
type Rectangle struct {
	X               int    `json:"x"`
	Y               int    `json:"y"`
	Width           int    `json:"width"`
	Height          int    `json:"height"`
	Color           string `json:"color,omitempty"`
	BackgroundColor string `json:"background_color,omitempty"`
	Filled          bool   `json:"filled,omitempty"`
}

// Line is a line drawable within a template.
type Line struct {
	X1    int    `json:"x1"`
	Y1    int    `json:"y1"`
	X2    int    `json:"x2"`
	Y2    int    `json:"y2"`
	Color string `json:"color,omitempty"`
	Width int    `json:"width,omitempty"`
}

// BitmapPlacement positions an uploaded bitmap (by filename) within a template.
type BitmapPlacement struct {
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Filename string `json:"filename"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
}

// Template is a named visual layout: canvas dimensions, background color,
// and four independent ordered collections of drawables. Templates are keyed
// by unique Name; upserting an existing name replaces the whole template.
type Template struct {
	Name            string            `json:"name"`
	Width           int               `json:"width"`
	Height          int               `json:"height"`
	BackgroundColor string            `json:"background_color,omitempty"`
	Texts           []TextItem        `json:"texts"`
	Rectangles      []Rectangle       `json:"rectangles"`
	Bitmaps         []BitmapPlacement `json:"bitmaps"`
	Lines           []Line            `json:"lines"`
}

// Clone returns a deep copy of the template.
func (t *Template) Clone() Template {
	c := *t
	c.Texts = append([]TextItem(nil), t.Texts...)
	c.Rectangles = append([]Rectangle(nil), t.Rectangles...)
	c.Bitmaps = append([]BitmapPlacement(nil), t.Bitmaps...)
	c.Lines = append([]Line(nil), t.Lines...)
	return c
}

// BitmapMetadata is free-form metadata attached to an uploaded bitmap.
// Declared width/height live alongside any extension fields the uploader sends.
type BitmapMetadata map[string]any

// DefaultBitmapMetadata returns the fallback metadata used when an upload
// carries no metadata or the metadata cannot be parsed.
func DefaultBitmapMetadata() BitmapMetadata {
	return BitmapMetadata{"width": 64, "height": 64}
}

// Clone returns a copy of the metadata map.
func (m BitmapMetadata) Clone() BitmapMetadata {
	if m == nil {
		return nil
	}
	c := make(BitmapMetadata, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

// Bitmap is a named binary blob plus metadata, keyed by unique Filename.
// The payload is embedded in the persisted snapshot as a byte sequence.
type Bitmap struct {
	Filename string         `json:"filename"`
	Data     []byte         `json:"data"`
	Metadata BitmapMetadata `json:"metadata"`
}

// Clone returns a deep copy of the bitmap.
func (b *Bitmap) Clone() Bitmap {
	return Bitmap{
		Filename: b.Filename,
		Data:     append([]byte(nil), b.Data...),
		Metadata: b.Metadata.Clone(),
	}
}

// BitmapSummary describes a stored bitmap without embedding the raw blob.
type BitmapSummary struct {
	Name     string         `json:"name"` // serving reference, e.g. "/b/logo.bin"
	Size     int            `json:"size"`
	Metadata BitmapMetadata `json:"metadata"`
}

// DisplaySettings configures the emulated display panel.
type DisplaySettings struct {
	DisplayType  string `json:"display_type"`
	TemplateName string `json:"template_name"`
}

// MQTTSettings configures the device's messaging transport.
type MQTTSettings struct {
	Host                  string `json:"host"`
	Port                  int    `json:"port"`
	Username              string `json:"username"`
	Password              string `json:"password"`
	ClientStatusTopic     string `json:"client_status_topic"`
	VariablesTopicPattern string `json:"variables_topic_pattern"`
}

// NetworkSettings configures the device's network identity.
type NetworkSettings struct {
	WiFiSSID  string `json:"wifi_ssid"`
	Hostname  string `json:"hostname"`
	MDNSName  string `json:"mdns_name"`
	NTPServer string `json:"ntp_server"`
}

// PowerSettings configures the device's sleep behaviour.
type PowerSettings struct {
	SleepMode            string `json:"sleep_mode"`
	SleepIntervalSeconds int    `json:"sleep_interval_seconds"`
}

// SystemSettings holds timezone and hardware pin assignments.
type SystemSettings struct {
	Timezone     string         `json:"timezone"`
	HardwarePins map[string]int `json:"hardware_pins"`
}

// WebSettings configures the device's built-in web server.
type WebSettings struct {
	Port         int    `json:"port"`
	AuthEnabled  bool   `json:"auth_enabled"`
	AuthUsername string `json:"auth_username"`
	AuthPassword string `json:"auth_password"`
}

// Settings is the device configuration, partitioned into independent domains.
type Settings struct {
	Display DisplaySettings `json:"display"`
	MQTT    MQTTSettings    `json:"mqtt"`
	Network NetworkSettings `json:"network"`
	Power   PowerSettings   `json:"power"`
	System  SystemSettings  `json:"system"`
	Web     WebSettings     `json:"web"`
}

// Clone returns a deep copy of the settings.
func (s *Settings) Clone() Settings {
	c := *s
	if s.System.HardwarePins != nil {
		c.System.HardwarePins = make(map[string]int, len(s.System.HardwarePins))
		for k, v := range s.System.HardwarePins {
			c.System.HardwarePins[k] = v
		}
	}
	return c
}

// SettingsPatch is a partial settings update. Updates are a shallow merge at
// the domain level: a present domain fully replaces the stored domain, absent
// domains are left untouched. Nested keys are never merged individually.
type SettingsPatch struct {
	Display *DisplaySettings `json:"display,omitempty"`
	MQTT    *MQTTSettings    `json:"mqtt,omitempty"`
	Network *NetworkSettings `json:"network,omitempty"`
	Power   *PowerSettings   `json:"power,omitempty"`
	System  *SystemSettings  `json:"system,omitempty"`
	Web     *WebSettings     `json:"web,omitempty"`
}

// Snapshot is the complete serializable state graph at one instant:
// variables, templates (ordered), bitmaps, and settings.
type Snapshot struct {
	Variables map[string]string `json:"variables"`
	Templates []Template        `json:"templates"`
	Bitmaps   []Bitmap          `json:"bitmaps"`
	Settings  Settings          `json:"settings"`
}

// Clone returns a deep copy of the snapshot.
func (s *Snapshot) Clone() *Snapshot {
	c := &Snapshot{
		Variables: make(map[string]string, len(s.Variables)),
		Templates: make([]Template, 0, len(s.Templates)),
		Bitmaps:   make([]Bitmap, 0, len(s.Bitmaps)),
		Settings:  s.Settings.Clone(),
	}
	for k, v := range s.Variables {
		c.Variables[k] = v
	}
	for i := range s.Templates {
		c.Templates = append(c.Templates, s.Templates[i].Clone())
	}
	for i := range s.Bitmaps {
		c.Bitmaps = append(c.Bitmaps, s.Bitmaps[i].Clone())
	}
	return c
}
