package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// Impact label constants.
const (
	GainValue    = "Gain"    // Minutes gained
	LossValue    = "Loss"    // Minutes lost
	NeutralValue = "Neutral" // On target
)

// Color variables for console output.
var (
	GainColor    = color.New(color.FgGreen, color.Bold) // gainColor marks lifespan gained.
	LossColor    = color.New(color.FgRed, color.Bold)   // lossColor marks lifespan lost.
	NeutralColor = color.New(color.FgCyan)              // neutralColor marks on-target metrics.
)

// GetPlainLabel returns a plain text label for the sign of an impact.
// This is the core logic used for CSV, JSON, and table printing.
func GetPlainLabel(minutes float64) string {
	switch {
	case minutes > 0:
		return GainValue
	case minutes < 0:
		return LossValue
	default:
		return NeutralValue
	}
}

// GetColorLabel returns a colored text label for console output (table).
// It uses GetPlainLabel to determine the string, and then applies the appropriate color.
func GetColorLabel(minutes float64) string {
	text := GetPlainLabel(minutes)

	switch text {
	case GainValue:
		return GainColor.Sprint(text)
	case LossValue:
		return LossColor.Sprint(text)
	default: // "Neutral"
		return NeutralColor.Sprint(text)
	}
}

// SelectOutputFile opens the render target: the given path, or stdout when
// no path was configured.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal reports an unrecoverable command error and exits.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn reports a condition the command survived, on stderr so piped
// output stays clean.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetStoreDBFilePath returns the path to the SQLite DB file for sample storage.
func GetStoreDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".lifetick_samples.db"
	}
	return filepath.Join(homeDir, ".lifetick_samples.db")
}

// ParseBoolString parses the yes/no style toggles the CLI documents:
// "yes", "no", "true", "false" (case-insensitive).
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true":
		return true, nil
	case "no", "false":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false)", s)
	}
}
