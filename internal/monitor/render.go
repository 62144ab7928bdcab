package monitor

import (
	"fmt"
	"strings"
)

// ruleWidth is the width of the separator under each section title.
const ruleWidth = 52

// bytesPerGB converts raw byte counts to the decimal gigabytes shown on screen.
const bytesPerGB = 1e9

// tempUnavailable replaces the CPU temperature when no sensor is readable.
const tempUnavailable = "[Requires Admin Privileges]"

const notAvailable = "N/A"

// Renderer formats a Snapshot into the fixed-layout text report.
// Output depends only on the Snapshot passed to Render.
type Renderer struct {
	styles Styles
}

// NewRenderer creates a renderer that emits plain text.
func NewRenderer() *Renderer {
	return &Renderer{styles: PlainStyles()}
}

// NewStyledRenderer creates a renderer that decorates section titles and
// rules with the given styles.
func NewStyledRenderer(styles Styles) *Renderer {
	return &Renderer{styles: styles}
}

// Render formats the snapshot. Sections always appear in the same order:
// System, CPU, GPU, Memory, Disk.
func (r *Renderer) Render(s Snapshot) string {
	var b strings.Builder

	r.section(&b, "System Info")
	fmt.Fprintf(&b, "System Name: %s\n", orDefault(s.Host.Hostname, DefaultHostname))
	fmt.Fprintf(&b, "OS: %s Version: %s\n",
		orDefault(s.Host.OSName, DefaultOSName),
		orDefault(s.Host.OSVersion, DefaultOSVersion))
	fmt.Fprintf(&b, "CPU Name: %s\n", orDefault(s.Host.CPUModel, DefaultCPUModel))
	fmt.Fprintf(&b, "Available CPU Cores: %d\n", s.CPU.Cores)
	fmt.Fprintf(&b, "GPU Name: %s (%s)\n",
		orDefault(s.GPU.Identity.Name, notAvailable),
		orDefault(s.GPU.Identity.Architecture, notAvailable))
	fmt.Fprintf(&b, "Cuda Version: %s\n", orDefault(s.GPU.Identity.DriverVersion, notAvailable))
	b.WriteString("\n")

	r.section(&b, "CPU Info")
	fmt.Fprintf(&b, "CPU Utilization: %.1f%%\n", s.CPU.Utilization())
	if !s.CPU.TemperatureAvailable() {
		fmt.Fprintf(&b, "CPU Temperature(°C): %s\n", tempUnavailable)
	}
	for _, t := range s.CPU.Temperatures {
		fmt.Fprintf(&b, "CPU Temperature(°C): %.1f°C\n", t)
	}
	b.WriteString("\n")

	r.section(&b, "GPU Info")
	fmt.Fprintf(&b, "GPU Utilization: %s\n", formatOptional(s.GPU.Utilization, "%.1f%%"))
	fmt.Fprintf(&b, "GPU Temperature(°C): %s\n", formatOptional(s.GPU.Temperature, "%.1f°C"))
	fmt.Fprintf(&b, "GPU Clock Speed: %s\n", formatClock(s.GPU.GraphicsClock))
	if s.GPU.Memory != nil {
		fmt.Fprintf(&b, "VRAM:%s\n", formatUsage(s.GPU.Memory.Used, s.GPU.Memory.Total))
	} else {
		fmt.Fprintf(&b, "VRAM:%s\n", notAvailable)
	}
	fmt.Fprintf(&b, "VRAM Clock Speed: %s\n", formatClock(s.GPU.MemoryClock))
	b.WriteString("\n")

	r.section(&b, "Memory Info")
	fmt.Fprintf(&b, "RAM:%s\n", formatUsage(s.Memory.Used, s.Memory.Total))
	b.WriteString("\n")

	r.section(&b, "Disk Info")
	for _, d := range s.Disks {
		kind := d.Kind
		if kind == "" {
			kind = DiskUnknown
		}
		fmt.Fprintf(&b, "(%s) Disk Name: %s, %s\n",
			kind, orDefault(d.Name, DefaultDiskName), formatUsage(d.Used, d.Total))
	}

	return b.String()
}

func (r *Renderer) section(b *strings.Builder, title string) {
	b.WriteString(r.styles.Title(title))
	b.WriteString("\n")
	b.WriteString(r.styles.Rule(strings.Repeat("-", ruleWidth)))
	b.WriteString("\n")
}

// formatUsage renders "<used>G/<total>G, <pct>%".
func formatUsage(used, total uint64) string {
	return fmt.Sprintf("%.2fG/%.2fG, %.1f%%",
		float64(used)/bytesPerGB, float64(total)/bytesPerGB, Percent(used, total))
}

func formatOptional(v *uint32, format string) string {
	if v == nil {
		return notAvailable
	}
	return fmt.Sprintf(format, float64(*v))
}

func formatClock(v *uint32) string {
	if v == nil {
		return notAvailable
	}
	return fmt.Sprintf("%dMHz", *v)
}
