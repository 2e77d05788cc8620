// Package device resolves the compute device a pipeline run executes on.
// Auto mode probes for an accelerator once per process and caches the
// decision; explicit cpu/gpu requests fail fast instead of silently
// falling back.
package device

import (
	"context"
	"sync"
	"time"

	"github.com/kbukum/voicebridge/errors"
	"github.com/kbukum/voicebridge/logger"
	"github.com/kbukum/voicebridge/process"
)

// Preference is the caller's requested compute device.
type Preference string

const (
	Auto Preference = "auto"
	CPU  Preference = "cpu"
	GPU  Preference = "gpu"
)

// Valid reports whether the preference is a known value.
func (p Preference) Valid() bool {
	return p == Auto || p == CPU || p == GPU
}

// Probe reports whether an accelerator is present.
type Probe func(ctx context.Context) bool

// NvidiaSMIProbe detects a CUDA-capable GPU by running nvidia-smi.
func NvidiaSMIProbe(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	result, err := process.Run(ctx, process.Command{
		Binary: "nvidia-smi",
		Args:   []string{"-L"},
	})
	return err == nil && result.ExitCode == 0 && len(result.Stdout) > 0
}

// Selector resolves device preferences against a single cached probe.
type Selector struct {
	probe  Probe
	once   sync.Once
	hasGPU bool
	log    *logger.Logger
}

// NewSelector creates a Selector using the given probe. A nil probe uses
// NvidiaSMIProbe.
func NewSelector(probe Probe) *Selector {
	if probe == nil {
		probe = NvidiaSMIProbe
	}
	return &Selector{probe: probe, log: logger.Get("device")}
}

// Resolve maps a preference to the concrete device for this run. The
// accelerator probe runs at most once per process; explicit gpu requests
// fail with DeviceUnavailable when no accelerator is found.
func (s *Selector) Resolve(ctx context.Context, pref Preference) (Preference, error) {
	if !pref.Valid() {
		return "", errors.DeviceUnavailable(string(pref), nil).WithDetail("reason", "unknown device preference")
	}
	if pref == CPU {
		return CPU, nil
	}

	s.once.Do(func() {
		s.hasGPU = s.probe(ctx)
		s.log.Info("accelerator probe", logger.Fields("gpu", s.hasGPU))
	})

	if pref == GPU {
		if !s.hasGPU {
			return "", errors.DeviceUnavailable("gpu", nil).WithDetail("reason", "no accelerator detected")
		}
		return GPU, nil
	}

	if s.hasGPU {
		return GPU, nil
	}
	return CPU, nil
}
