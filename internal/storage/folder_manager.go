package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// unknownFolder receives statements whose customer name is empty or
// sanitizes to nothing.
const unknownFolder = "unknown"

// FolderManager manages per-customer output folders and statement
// paths under one output directory.
type FolderManager struct {
	baseDir string
	logger  *zap.Logger
}

// NewFolderManager creates a FolderManager rooted at baseDir.
func NewFolderManager(baseDir string, logger *zap.Logger) *FolderManager {
	return &FolderManager{baseDir: baseDir, logger: logger}
}

// BaseDir returns the output root.
func (m *FolderManager) BaseDir() string {
	return m.baseDir
}

// StatementPath returns the destination path for one (customer,
// year-month) statement. The folder is not created.
func (m *FolderManager) StatementPath(customer, yearMonth string) string {
	safe := m.SanitizeFolderName(customer)
	name := fmt.Sprintf("statement_%s_%s.xlsx", safe, yearMonth)
	return filepath.Join(m.baseDir, safe, name)
}

// EnsureCustomerFolder creates the customer folder, returning its path.
func (m *FolderManager) EnsureCustomerFolder(customer string) (string, error) {
	folderPath := filepath.Join(m.baseDir, m.SanitizeFolderName(customer))
	if err := os.MkdirAll(folderPath, 0755); err != nil {
		m.logger.Error("Failed to create customer folder",
			zap.String("customer", customer),
			zap.String("folder_path", folderPath),
			zap.Error(err))
		return "", fmt.Errorf("failed to create folder: %w", err)
	}
	return folderPath, nil
}

// EnsureBaseDir creates the output root if missing.
func (m *FolderManager) EnsureBaseDir() error {
	if err := os.MkdirAll(m.baseDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

var unsafeFolderChars = regexp.MustCompile(`[^\p{L}\p{N}\-_ ]`)

// SanitizeFolderName returns a filesystem-safe version of a customer
// name. Unicode letters are kept so CJK customer names survive; path
// separators and parent references are stripped.
func (m *FolderManager) SanitizeFolderName(name string) string {
	name = strings.ReplaceAll(name, "..", "")
	name = strings.ReplaceAll(name, "/", "")
	name = strings.ReplaceAll(name, "\\", "")
	name = unsafeFolderChars.ReplaceAllString(name, "")
	name = strings.TrimSpace(name)
	if name == "" {
		return unknownFolder
	}
	return name
}
