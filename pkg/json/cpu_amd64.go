//go:build amd64

package json

import "golang.org/x/sys/cpu"

func init() {
	WideWindows = cpu.X86.HasAVX2
}
