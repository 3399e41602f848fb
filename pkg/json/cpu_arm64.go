//go:build arm64

package json

import "golang.org/x/sys/cpu"

func init() {
	WideWindows = cpu.ARM64.HasASIMD
}
