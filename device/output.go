// Package device watches the system audio output so playback can pause when
// headphones or another external output go away.
package device

import (
	"context"
	"encoding/json"
	"os/exec"
	"runtime"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
)

// ErrUnsupported is returned by sources that cannot run on this platform
var ErrUnsupported = errors.New("audio output detection unsupported on this platform")

// Class groups audio outputs by how they are attached
type Class int

const (
	ClassUnknown Class = iota
	ClassBuiltIn
	ClassBluetooth
	ClassUSB
	ClassHDMI
	ClassHeadphones
)

// External reports whether the output can be unplugged
func (c Class) External() bool {
	return c == ClassBluetooth || c == ClassUSB || c == ClassHDMI || c == ClassHeadphones
}

// Output is one audio output as reported by the system
type Output struct {
	Name      string
	Transport string
	Class     Class
	Default   bool
	Connected bool
}

var transportClasses = map[string]Class{
	"bluetooth": ClassBluetooth, "wireless": ClassBluetooth, "ble": ClassBluetooth,
	"usb": ClassUSB, "usb audio": ClassUSB, "usbaudio": ClassUSB,
	"hdmi": ClassHDMI, "displayport": ClassHDMI, "thunderbolt": ClassHDMI,
	"built-in": ClassBuiltIn, "internal": ClassBuiltIn,
	"headphone": ClassHeadphones, "headset": ClassHeadphones, "analog": ClassHeadphones,
}

// checked in order; the first class with a matching keyword wins
var nameKeywords = []struct {
	class    Class
	keywords []string
}{
	{ClassBluetooth, []string{"bluetooth", "airpods", "beats", "bose", "jabra", "sennheiser", "jbl", "marshall", "sony wh", "sony wf"}},
	{ClassBuiltIn, []string{"built-in", "internal", "macbook", "imac", "mac mini", "mac pro", "speakers"}},
	{ClassUSB, []string{"usb", "dac", "audio interface"}},
	{ClassHDMI, []string{"hdmi", "displayport", "display audio"}},
	{ClassHeadphones, []string{"headphone", "headset"}},
}

// Classify guesses the class from the transport, then from the device name
func Classify(name, transport string) Class {
	if c, ok := transportClasses[strings.ToLower(strings.TrimSpace(transport))]; ok {
		return c
	}

	lower := strings.ToLower(name)
	for _, entry := range nameKeywords {
		if lo.ContainsBy(entry.keywords, func(k string) bool { return strings.Contains(lower, k) }) {
			return entry.class
		}
	}
	return ClassUnknown
}

// Current picks the default output, preferring one that is connected
func Current(outputs []Output) (Output, bool) {
	if o, ok := lo.Find(outputs, func(o Output) bool { return o.Default && o.Connected }); ok {
		return o, true
	}
	if o, ok := lo.Find(outputs, func(o Output) bool { return o.Default }); ok {
		return o, true
	}
	return lo.Find(outputs, func(o Output) bool { return o.Connected })
}

// Source lists the current audio outputs
type Source func(ctx context.Context) ([]Output, error)

// SystemProfiler reads outputs from macOS system_profiler
func SystemProfiler(ctx context.Context) ([]Output, error) {
	if runtime.GOOS != "darwin" {
		return nil, ErrUnsupported
	}

	out, err := exec.CommandContext(ctx, "system_profiler", "SPAudioDataType", "-json").Output()
	if err != nil {
		return nil, errors.Wrap(err, "system_profiler")
	}
	return ParseSystemProfiler(out)
}

type profilerReport struct {
	Audio []struct {
		Items []map[string]any `json:"_items"`
	} `json:"SPAudioDataType"`
}

// ParseSystemProfiler decodes `system_profiler SPAudioDataType -json` output.
// Key names differ between macOS releases, so several spellings are accepted.
func ParseSystemProfiler(data []byte) ([]Output, error) {
	var report profilerReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, errors.Wrap(err, "decode audio report")
	}

	var outputs []Output
	for _, entry := range report.Audio {
		for _, item := range entry.Items {
			name := stringValue(item, "_name", "name")
			if name == "" {
				continue
			}
			transport := stringValue(item, "coreaudio_device_transport", "coreaudio_transport", "transport")

			_, isDefault := boolValue(item,
				"coreaudio_device_is_default_output",
				"coreaudio_default_audio_output_device",
				"default_output_device",
			)
			found, connected := boolValue(item, "coreaudio_device_is_alive", "device_is_alive", "connected")

			outputs = append(outputs, Output{
				Name:      name,
				Transport: transport,
				Class:     Classify(name, transport),
				Default:   isDefault,
				Connected: connected || !found,
			})
		}
	}
	return outputs, nil
}

func stringValue(m map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := m[key].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

// boolValue returns whether any key was present and its truth value
func boolValue(m map[string]any, keys ...string) (found, value bool) {
	for _, key := range keys {
		switch v := m[key].(type) {
		case bool:
			return true, v
		case float64:
			return true, v != 0
		case string:
			switch strings.ToLower(strings.TrimSpace(v)) {
			case "yes", "true", "1", "on", "spaudio_yes", "enabled":
				return true, true
			case "no", "false", "0", "off", "spaudio_no", "disabled":
				return true, false
			}
		}
	}
	return false, false
}
