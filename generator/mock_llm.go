package generator

import (
	"context"
	"fmt"
	"strings"
)

// MockLLM answers offline with placeholder slogans, for dry runs and local debugging.
type MockLLM struct{}

func (m MockLLM) Complete(_ context.Context, prompt Prompt) (string, error) {
	product := "your product"
	for _, line := range strings.Split(prompt.User, "\n") {
		if v, ok := strings.CutPrefix(line, "Product: "); ok && strings.TrimSpace(v) != "" {
			product = v
			break
		}
	}

	closing := "Brief Explanation"
	switch {
	case strings.Contains(prompt.User, "Creative Rationale:"):
		closing = "Creative Rationale"
	case strings.Contains(prompt.User, "Audience Insight:"):
		closing = "Audience Insight"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Slogan 1: %s, made simple.\n", product))
	sb.WriteString(fmt.Sprintf("Slogan 2: Every day, upgraded by %s.\n", product))
	sb.WriteString(fmt.Sprintf("Slogan 3: %s fits the way you live.\n", product))
	sb.WriteString(fmt.Sprintf("\n%s: Dry run placeholder; no completion service was called.", closing))
	return sb.String(), nil
}
