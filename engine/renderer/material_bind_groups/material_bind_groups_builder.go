package material_bind_groups

import (
	"github.com/Carmen-Shannon/oxy-bindings/common"
	"github.com/charmbracelet/log"
)

// MaterialBindGroupsBuilderOption is a functional option applied to a MaterialBindGroups during construction.
type MaterialBindGroupsBuilderOption func(*materialBindGroups)

// WithLabel sets the debug label prefix used for the sampler, layouts and bind groups.
//
// Parameters:
//   - label: the debug label prefix
//
// Returns:
//   - MaterialBindGroupsBuilderOption: a function that applies the label option
func WithLabel(label string) MaterialBindGroupsBuilderOption {
	return func(m *materialBindGroups) {
		if label != "" {
			m.label = label
		}
	}
}

// WithSamplerStagingData configures the shared default sampler. Zero fields keep the linear, repeating defaults.
//
// Parameters:
//   - data: the sampler configuration
//
// Returns:
//   - MaterialBindGroupsBuilderOption: a function that applies the sampler option
func WithSamplerStagingData(data common.SamplerStagingData) MaterialBindGroupsBuilderOption {
	return func(m *materialBindGroups) {
		m.samplerData = data
	}
}

// WithLogger sets the logger used for cache events. The package default logger is used otherwise.
//
// Parameters:
//   - l: the logger
//
// Returns:
//   - MaterialBindGroupsBuilderOption: a function that applies the logger option
func WithLogger(l *log.Logger) MaterialBindGroupsBuilderOption {
	return func(m *materialBindGroups) {
		m.logger = l
	}
}
