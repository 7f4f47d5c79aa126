package types

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

const maxRecordLine = 1 << 20

// ReadRecipeRecords decodes one recipe record per line. Blank lines are skipped.
func ReadRecipeRecords(r io.Reader) ([]RecipeRecord, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxRecordLine)

	var records []RecipeRecord
	line := 0
	for scanner.Scan() {
		line++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}
		var rec RecipeRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("line %d: %w", line+1, err)
	}
	return records, nil
}
