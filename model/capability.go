// Package model provides capability-based model selection for the assistant.
// Instead of hardcoding model names, callers specify capabilities (chat,
// planning, fast) and the registry resolves them to available models with
// fallback chains.
package model

// Capability represents a semantic capability for model selection.
// Instead of specifying "llama-3.1-8b-instant", callers specify "chat" or
// "planning".
type Capability string

const (
	// CapabilityChat is for conversational productivity assistance.
	CapabilityChat Capability = "chat"

	// CapabilityPlanning is for structured project-plan generation.
	CapabilityPlanning Capability = "planning"

	// CapabilityFast is for quick responses, simple tasks.
	CapabilityFast Capability = "fast"
)

// IsValid checks if a capability string is a known capability.
func (c Capability) IsValid() bool {
	switch c {
	case CapabilityChat, CapabilityPlanning, CapabilityFast:
		return true
	}
	return false
}

// String returns the string representation of the capability.
func (c Capability) String() string {
	return string(c)
}

// ParseCapability converts a string to a Capability, returning empty for invalid values.
func ParseCapability(s string) Capability {
	cap := Capability(s)
	if cap.IsValid() {
		return cap
	}
	return ""
}
