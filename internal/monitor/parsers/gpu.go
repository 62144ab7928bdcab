package parsers

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// SMIQueryFields is the --query-gpu field list ParseNvidiaSMI expects, in order.
const SMIQueryFields = "name,utilization.gpu,temperature.gpu,clocks.gr,clocks.mem,memory.used,memory.total"

// SMIIdentityFields is the --query-gpu field list ParseSMIIdentity expects, in order.
const SMIIdentityFields = "name,compute_cap"

const mib = 1024 * 1024

// SMIReading is one device row from nvidia-smi. A nil field was reported
// as [N/A] by the driver.
type SMIReading struct {
	Name          string
	Utilization   *uint32
	Temperature   *uint32
	GraphicsClock *uint32
	MemoryClock   *uint32
	MemoryUsed    *uint64 // bytes
	MemoryTotal   *uint64 // bytes
}

// SMIIdentity is the static description of a device.
type SMIIdentity struct {
	Name       string
	ComputeCap string
}

var cudaVersionRe = regexp.MustCompile(`CUDA Version:\s*([0-9.]+)`)

// ParseNvidiaSMI parses GPU metrics from nvidia-smi CSV output.
// Expected input is from: nvidia-smi --query-gpu=<SMIQueryFields> --format=csv,noheader,nounits -i <index>
//
// Returns nil, nil if the GPU is not available (empty output or command failure indicator).
func ParseNvidiaSMI(output string) (*SMIReading, error) {
	fields, ok := splitSMIRow(output)
	if !ok {
		return nil, nil
	}

	// Example: "NVIDIA GeForce RTX 3070, 45, 65, 1800, 7000, 2048, 8192"
	if len(fields) < 7 {
		return nil, fmt.Errorf("nvidia-smi output has insufficient fields: expected 7, got %d", len(fields))
	}

	r := &SMIReading{Name: fields[0]}
	var err error

	if r.Utilization, err = parseUint32(fields[1], "utilization"); err != nil {
		return nil, err
	}
	if r.Temperature, err = parseUint32(fields[2], "temperature"); err != nil {
		return nil, err
	}
	if r.GraphicsClock, err = parseUint32(fields[3], "graphics clock"); err != nil {
		return nil, err
	}
	if r.MemoryClock, err = parseUint32(fields[4], "memory clock"); err != nil {
		return nil, err
	}
	if r.MemoryUsed, err = parseMiB(fields[5], "memory used"); err != nil {
		return nil, err
	}
	if r.MemoryTotal, err = parseMiB(fields[6], "memory total"); err != nil {
		return nil, err
	}

	return r, nil
}

// ParseSMIIdentity parses the output of
// nvidia-smi --query-gpu=<SMIIdentityFields> --format=csv,noheader -i <index>.
//
// Returns nil, nil if the GPU is not available.
func ParseSMIIdentity(output string) (*SMIIdentity, error) {
	fields, ok := splitSMIRow(output)
	if !ok {
		return nil, nil
	}
	if len(fields) < 2 {
		return nil, fmt.Errorf("nvidia-smi identity has insufficient fields: expected 2, got %d", len(fields))
	}
	return &SMIIdentity{
		Name:       fields[0],
		ComputeCap: naToEmpty(fields[1]),
	}, nil
}

// ParseCudaVersion extracts the CUDA version from the banner of a plain
// nvidia-smi run. Returns "" if the banner has none.
func ParseCudaVersion(output string) string {
	m := cudaVersionRe.FindStringSubmatch(output)
	if m == nil {
		return ""
	}
	return m[1]
}

// splitSMIRow returns the trimmed fields of the first row, or false when the
// output signals that no GPU is present.
func splitSMIRow(output string) ([]string, bool) {
	output = strings.TrimSpace(output)

	// Handle missing GPU gracefully
	if output == "" {
		return nil, false
	}

	// Check for common error indicators
	lowerOutput := strings.ToLower(output)
	if strings.Contains(lowerOutput, "no devices") ||
		strings.Contains(lowerOutput, "not found") ||
		strings.Contains(lowerOutput, "failed") ||
		strings.Contains(lowerOutput, "error") ||
		strings.Contains(lowerOutput, "command not found") {
		return nil, false
	}

	// Only the selected device is reported; ignore any extra rows.
	if i := strings.IndexByte(output, '\n'); i >= 0 {
		output = output[:i]
	}

	fields := strings.Split(output, ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields, true
}

func isNA(s string) bool {
	return s == "" || s == "[N/A]" || s == "N/A" || s == "[Not Supported]"
}

func naToEmpty(s string) string {
	if isNA(s) {
		return ""
	}
	return s
}

func parseUint32(s, what string) (*uint32, error) {
	if isNA(s) {
		return nil, nil
	}
	// Values may carry decimals depending on driver version
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 {
		return nil, fmt.Errorf("failed to parse GPU %s '%s'", what, s)
	}
	v := uint32(f)
	return &v, nil
}

func parseMiB(s, what string) (*uint64, error) {
	if isNA(s) {
		return nil, nil
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse GPU %s '%s': %w", what, s, err)
	}
	// Convert MiB to bytes
	v := n * mib
	return &v, nil
}
