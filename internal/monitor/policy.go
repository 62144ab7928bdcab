package monitor

import (
	"fmt"

	"github.com/rileyhilliard/rhino/internal/errors"
	"github.com/rileyhilliard/rhino/internal/logger"
)

// GPUFailurePolicy decides what a failed per-cycle GPU query does.
type GPUFailurePolicy string

const (
	// GPUDegrade shows N/A for the failed field this cycle and keeps running.
	GPUDegrade GPUFailurePolicy = "degrade"
	// GPUFatal stops the dashboard on the first failed GPU query.
	GPUFatal GPUFailurePolicy = "fatal"
)

// ParseGPUFailurePolicy converts a config value to a policy.
// An empty string selects GPUDegrade.
func ParseGPUFailurePolicy(s string) (GPUFailurePolicy, error) {
	switch GPUFailurePolicy(s) {
	case "", GPUDegrade:
		return GPUDegrade, nil
	case GPUFatal:
		return GPUFatal, nil
	default:
		return "", errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown gpu.on_error value '%s'", s),
			"Use 'degrade' or 'fatal'")
	}
}

// apply returns the error that should stop the loop, or nil when the
// failure is absorbed.
func (p GPUFailurePolicy) apply(field string, err error, log logger.Logger) error {
	if p == GPUFatal {
		return errors.WrapWithCode(err, errors.ErrGPU,
			fmt.Sprintf("Can't read GPU %s", field),
			"Set gpu.on_error: degrade to keep the dashboard running through driver hiccups")
	}
	log.Debug("gpu %s unavailable this cycle: %v", field, err)
	return nil
}
