package source

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"github.com/theirongolddev/shiftcast/internal/model"
)

// ScanDir lists the sales exports directly inside dir whose file name marks
// them as AM or PM, newest first. Files naming neither (or both) periods are
// ignored.
func ScanDir(dir string) ([]DiscoveredFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []DiscoveredFile
	for _, e := range entries {
		if e.IsDir() || !isExport(e.Name()) {
			continue
		}
		period, ok := PeriodFromName(e.Name())
		if !ok {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue // removed while scanning
		}
		files = append(files, DiscoveredFile{
			Path:    filepath.Join(dir, e.Name()),
			Period:  period,
			ModTime: info.ModTime(),
		})
	}

	sort.SliceStable(files, func(i, j int) bool {
		return files[i].ModTime.After(files[j].ModTime)
	})
	return files, nil
}

// Latest returns the newest discovered file for each period.
func Latest(files []DiscoveredFile) map[model.Period]DiscoveredFile {
	latest := make(map[model.Period]DiscoveredFile, 2)
	for _, f := range files {
		if cur, ok := latest[f.Period]; !ok || f.ModTime.After(cur.ModTime) {
			latest[f.Period] = f
		}
	}
	return latest
}

// PeriodFromName finds a standalone "am" or "pm" token in a file name,
// e.g. "Sales AM 2024-03.csv" or "pm_sales.xlsx".
func PeriodFromName(name string) (model.Period, bool) {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	tokens := strings.FieldsFunc(strings.ToLower(base), func(r rune) bool {
		return !unicode.IsLetter(r)
	})

	var found []model.Period
	for _, tok := range tokens {
		switch tok {
		case "am":
			found = append(found, model.PeriodAM)
		case "pm":
			found = append(found, model.PeriodPM)
		}
	}
	if len(found) == 0 {
		return "", false
	}
	for _, p := range found[1:] {
		if p != found[0] {
			return "", false
		}
	}
	return found[0], true
}

func isExport(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}
