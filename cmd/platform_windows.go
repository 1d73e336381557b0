//go:build windows

package cmd

// Registers the Windows UI Automation backend.
import _ "uidriver/internal/platform/windows"
