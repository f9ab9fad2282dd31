//go:build !linux

package randsrc

// Non-Linux platforms go straight to the OS random device.
func systemSource() Source {
	return deviceSource{}
}
