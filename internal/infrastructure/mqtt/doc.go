// Package mqtt provides MQTT connectivity for the e-paper variable mirror.
//
// This package manages:
//   - Connection to the broker with auto-reconnect
//   - Retained publishing of variable values and device status
//   - Topic subscriptions with wildcard support
//   - Last Will and Testament (LWT) for offline detection
//
// # Architecture
//
// The real device keeps its variables in sync over MQTT: one retained topic
// per variable plus a retained status topic. The mock speaks the same topic
// layout so MQTT tooling cannot tell it apart from hardware:
//
//	epaper/status              retained online/offline status
//	epaper/variables/{name}    retained current value per variable
//
// The mirror is optional and disabled by default; the mock is fully
// functional without a broker.
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	err = client.Subscribe(mqtt.Topics{}.AllVariables(), 1,
//	    func(topic string, payload []byte) error {
//	        name := mqtt.Topics{}.VariableName(topic)
//	        // apply to store...
//	        return nil
//	    })
package mqtt
