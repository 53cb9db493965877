package personalize

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"

	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/errors"
	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/interfaces"
	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/types"
)

const (
	// insightTimeLayout renders timestamps inside insight lines
	insightTimeLayout = "2006-01-02 15:04"

	// similarityThreshold is the minimum normalized Levenshtein similarity
	// at which two insights count as duplicates
	similarityThreshold = 0.85
)

// FileInsightStore keeps one append-only insight log per farmer. New lines
// are deduplicated against the existing log before being written.
type FileInsightStore struct {
	dataDir string
	logger  interfaces.Logger
	now     func() time.Time
}

// NewFileInsightStore creates an insight store rooted at dataDir
func NewFileInsightStore(dataDir string, logger interfaces.Logger) (*FileInsightStore, error) {
	if dataDir == "" {
		return nil, errors.NewConfigInvalidError("insight data directory is required")
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, errors.NewFileErrorWithCause("failed to create insight directory", err)
	}
	return &FileInsightStore{dataDir: dataDir, logger: logger, now: time.Now}, nil
}

func (s *FileInsightStore) path(ownerID string) string {
	return filepath.Join(s.dataDir, sanitizeOwnerID(ownerID)+"_insights.txt")
}

// Append stores text as a timestamped insight line. Returns false without
// error when text is blank or duplicates an existing line.
func (s *FileInsightStore) Append(ownerID, text string) (bool, error) {
	if strings.TrimSpace(ownerID) == "" {
		return false, errors.NewMissingFieldError("owner_id")
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return false, nil
	}

	existing, err := s.List(ownerID)
	if err != nil {
		return false, err
	}
	for _, line := range existing {
		if isDuplicateInsight(text, line.Text) {
			s.logger.Debug("insight rejected as duplicate", map[string]interface{}{
				"owner_id": ownerID,
				"existing": line.Text,
			})
			return false, nil
		}
	}

	entry := "- [" + s.now().Format(insightTimeLayout) + "] " + text + "\n"
	f, err := os.OpenFile(s.path(ownerID), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return false, errors.NewFileErrorWithCause("failed to open insight log", err)
	}
	defer f.Close()

	if _, err := f.WriteString(entry); err != nil {
		return false, errors.NewFileErrorWithCause("failed to append insight", err)
	}

	s.logger.Info("insight recorded", map[string]interface{}{
		"owner_id": ownerID,
		"insight":  text,
	})
	return true, nil
}

// Read returns the raw insight log, or "" when no log exists
func (s *FileInsightStore) Read(ownerID string) (string, error) {
	if strings.TrimSpace(ownerID) == "" {
		return "", errors.NewMissingFieldError("owner_id")
	}
	data, err := os.ReadFile(s.path(ownerID))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", errors.NewFileErrorWithCause("failed to read insight log", err)
	}
	return string(data), nil
}

// List returns parsed insight lines in append order
func (s *FileInsightStore) List(ownerID string) ([]types.InsightLine, error) {
	raw, err := s.Read(ownerID)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}

	var lines []types.InsightLine
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, parseInsightLine(line))
	}
	return lines, nil
}

// Clear removes the insight log; missing files are not an error
func (s *FileInsightStore) Clear(ownerID string) error {
	if strings.TrimSpace(ownerID) == "" {
		return errors.NewMissingFieldError("owner_id")
	}
	if err := os.Remove(s.path(ownerID)); err != nil && !os.IsNotExist(err) {
		return errors.NewFileErrorWithCause("failed to clear insight log", err)
	}
	return nil
}

// parseInsightLine splits "- [2024-06-01 09:30] text" into its parts. Lines
// without the expected shape keep their full text and a zero timestamp.
func parseInsightLine(line string) types.InsightLine {
	text := strings.TrimPrefix(line, "- ")
	if strings.HasPrefix(text, "[") {
		if close := strings.Index(text, "] "); close > 0 {
			if ts, err := time.ParseInLocation(insightTimeLayout, text[1:close], time.Local); err == nil {
				return types.InsightLine{Timestamp: ts, Text: strings.TrimSpace(text[close+2:])}
			}
		}
	}
	return types.InsightLine{Text: strings.TrimSpace(text)}
}

// isDuplicateInsight reports whether candidate repeats existing, either as a
// case-insensitive exact match or a near match by normalized edit distance.
func isDuplicateInsight(candidate, existing string) bool {
	a := strings.ToLower(strings.TrimSpace(candidate))
	b := strings.ToLower(strings.TrimSpace(existing))
	if a == b {
		return true
	}
	if a == "" || b == "" {
		return false
	}

	dist := levenshtein.ComputeDistance(a, b)
	longest := len([]rune(a))
	if l := len([]rune(b)); l > longest {
		longest = l
	}
	similarity := 1.0 - float64(dist)/float64(longest)
	return similarity >= similarityThreshold
}

var _ interfaces.InsightStore = (*FileInsightStore)(nil)
