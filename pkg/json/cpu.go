package json

// WideWindows selects 32-byte (4x8) windows for unescaped quote scans.
// It is enabled at init on CPUs with wide vector units and may be toggled
// by callers before scanning starts; it must not change during a scan.
var WideWindows bool
