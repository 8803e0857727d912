package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"mediawall/pkg/models"
)

// Manager handles bulk-download file storage and duplicate detection.
// Files are keyed by their catalog filename, which is stable across runs.
type Manager struct {
	outputDir  string
	downloaded map[string]bool
	mu         sync.RWMutex
}

// NewManager creates a new storage manager rooted at outputDir.
func NewManager(outputDir string) (*Manager, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	manager := &Manager{
		outputDir:  outputDir,
		downloaded: make(map[string]bool),
	}

	if err := manager.scanExistingFiles(); err != nil {
		return nil, fmt.Errorf("failed to scan existing files: %w", err)
	}

	return manager, nil
}

// scanExistingFiles seeds duplicate detection from media already on disk.
func (m *Manager) scanExistingFiles() error {
	entries, err := os.ReadDir(m.outputDir)
	if err != nil {
		return fmt.Errorf("failed to read directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if models.IsMediaExtension(filepath.Ext(entry.Name())) {
			m.downloaded[entry.Name()] = true
		}
	}

	return nil
}

// IsDownloaded checks if a media file with the given filename is already
// stored.
func (m *Manager) IsDownloaded(filename string) bool {
	m.mu.RLock()
	cached := m.downloaded[filename]
	m.mu.RUnlock()
	if cached {
		return true
	}

	// Double-check file existence for files created by other processes.
	if _, err := os.Stat(filepath.Join(m.outputDir, filename)); err == nil {
		m.mu.Lock()
		m.downloaded[filename] = true
		m.mu.Unlock()
		return true
	}

	return false
}

// SaveMedia saves one media file from the given reader under its catalog
// filename. The write goes through a temp file and an atomic rename so a
// crashed download never leaves a truncated file behind.
func (m *Manager) SaveMedia(r io.Reader, filename string) error {
	target := filepath.Join(m.outputDir, filename)
	tempFile := target + ".tmp"

	out, err := os.Create(tempFile)
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	_, err = io.Copy(out, r)
	closeErr := out.Close()

	if err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("failed to save media data: %w", err)
	}
	if closeErr != nil {
		os.Remove(tempFile)
		return fmt.Errorf("failed to close file: %w", closeErr)
	}

	if err := os.Rename(tempFile, target); err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	m.mu.Lock()
	m.downloaded[filename] = true
	m.mu.Unlock()

	return nil
}

// GetOutputDir returns the output directory path.
func (m *Manager) GetOutputDir() string {
	return m.outputDir
}

// GetDownloadedCount returns the number of stored media files.
func (m *Manager) GetDownloadedCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.downloaded)
}
