// Package macros resolves a format's declared macro set against caller
// supplied values and substitutes them into rendered markup.
package macros

import (
	"github.com/gofrs/uuid"

	"github.com/adcontextprotocol/creative-agent/formats"
)

// Well-known macro keys with canonical defaults.
const (
	MacroKeyCachebuster = "CACHEBUSTER"
	MacroKeyDeviceType  = "DEVICE_TYPE"
)

// Provider holds the resolved macro values for one render invocation.
type Provider struct {
	values map[string]string
}

// Resolve builds the macro values for a single render. Every macro the format
// declares gets a value: the caller's when supplied, otherwise a default.
// Caller macros the format does not declare are dropped so they can never
// leak into rendered output.
func Resolve(format *formats.Format, supplied map[string]string) *Provider {
	values := make(map[string]string, len(format.SupportedMacros))
	for _, name := range format.SupportedMacros {
		if v, ok := supplied[name]; ok {
			values[name] = v
			continue
		}
		values[name] = defaultValue(name)
	}
	return &Provider{values: values}
}

// defaultValue returns the canonical default for an unset declared macro.
// CACHEBUSTER gets a fresh random token per resolution; everything else is
// empty.
func defaultValue(name string) string {
	if name == MacroKeyCachebuster {
		return uuid.Must(uuid.NewV4()).String()
	}
	return ""
}

// GetMacro returns the resolved value for the given macro key.
func (p *Provider) GetMacro(key string) (string, bool) {
	v, ok := p.values[key]
	return v, ok
}

// Values returns a copy of all resolved macro values.
func (p *Provider) Values() map[string]string {
	out := make(map[string]string, len(p.values))
	for k, v := range p.values {
		out[k] = v
	}
	return out
}
