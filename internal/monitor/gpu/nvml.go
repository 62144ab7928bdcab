package gpu

// NVMLDriver opens a device through the NVIDIA Management Library.
type NVMLDriver struct {
	Index int
}
