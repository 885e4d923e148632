package source

import (
	"time"

	"github.com/theirongolddev/shiftcast/internal/model"
)

// DiscoveredFile is a sales export found by ScanDir.
type DiscoveredFile struct {
	Path    string
	Period  model.Period
	ModTime time.Time
}

// Extensions lists the export formats ReadFile understands.
var Extensions = []string{".csv", ".xlsx", ".xlsm"}
