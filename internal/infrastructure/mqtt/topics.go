package mqtt

import "strings"

// Topic prefixes for the emulated device. The topic layout matches what the
// real firmware uses, so tooling pointed at the mock behaves identically:
//
//	epaper/status              retained online/offline device status
//	epaper/variables/{name}    one retained value per variable
const (
	// TopicPrefix is the base for all device topics.
	TopicPrefix = "epaper"

	// TopicStatus carries the retained device status payload.
	TopicStatus = TopicPrefix + "/status"

	// TopicVariablesPrefix is the base for per-variable topics.
	TopicVariablesPrefix = TopicPrefix + "/variables"
)

// Topics provides builders for device MQTT topics.
// Using these helpers ensures consistent topic naming across the codebase.
type Topics struct{}

// Status returns the device status topic.
func (Topics) Status() string {
	return TopicStatus
}

// Variable returns the topic carrying a single variable's value.
//
// Example: epaper/variables/temperature
func (Topics) Variable(name string) string {
	return TopicVariablesPrefix + "/" + name
}

// AllVariables returns the wildcard subscription matching every variable topic.
func (Topics) AllVariables() string {
	return TopicVariablesPrefix + "/+"
}

// VariableName extracts the variable name from a variable topic.
// Returns "" when the topic is not a variable topic.
func (Topics) VariableName(topic string) string {
	rest, ok := strings.CutPrefix(topic, TopicVariablesPrefix+"/")
	if !ok || rest == "" || strings.Contains(rest, "/") {
		return ""
	}
	return rest
}
