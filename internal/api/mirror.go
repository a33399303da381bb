package api

import (
	"strconv"

	"github.com/openepaper/epaper-mock/internal/infrastructure/mqtt"
)

// subscribeVariableMirror subscribes to the broker's variable topics so
// values published there flow into the store and out to live observers,
// the same path the real firmware uses to receive variable updates.
func (s *Server) subscribeVariableMirror() error {
	if s.mqtt == nil {
		return nil // MQTT not configured; mirror disabled
	}

	topic := mqtt.Topics{}.AllVariables()
	s.logger.Info("subscribing to variable mirror topics", "topic", topic)
	return s.mqtt.Subscribe(topic, 1, func(t string, payload []byte) error {
		name := mqtt.Topics{}.VariableName(t)
		if name == "" {
			return nil
		}
		value := string(payload)

		// Locally originated updates are published retained to these same
		// topics, so the broker echoes them back. Skipping unchanged values
		// breaks that loop.
		if s.store.Variable(name) == value {
			return nil
		}

		s.store.SetVariable(name, value)

		if s.hub != nil {
			s.hub.Broadcast(wsVariableUpdate{
				Type:  WSTypeVariableUpdate,
				Name:  name,
				Value: value,
			}, "")
		}
		s.recordVariableMetric(name, value, "mqtt")
		return nil
	})
}

// mirrorVariable forwards a locally originated variable write to the
// optional broker mirror and telemetry sinks. Both are fire-and-forget;
// failures are logged and never affect the mutation.
func (s *Server) mirrorVariable(name, value, source string) {
	if s.mqtt != nil {
		topic := mqtt.Topics{}.Variable(name)
		if err := s.mqtt.PublishRetained(topic, []byte(value)); err != nil {
			s.logger.Debug("variable mirror publish failed", "variable", name, "error", err)
		}
	}
	s.recordVariableMetric(name, value, source)
}

// recordVariableMetric writes a telemetry point for numeric variable values.
// Non-numeric values are skipped; telemetry only tracks quantities.
func (s *Server) recordVariableMetric(name, value, source string) {
	if s.influx == nil {
		return
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return
	}
	s.influx.WriteVariableMetric(name, f, source)
}
