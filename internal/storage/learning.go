package storage

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/taxxyapp/taxxy/internal/service"
)

const trendWeeks = 8

// GetLearningStats summarizes the owner's correction history: how much the
// classifier has had the chance to learn, and where.
func (s *SQLiteStorage) GetLearningStats(ctx context.Context, owner string) (*service.LearningStats, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(owner, "owner"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT description, created_at
		FROM corrections
		WHERE owner = ?
		ORDER BY created_at DESC
	`, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to query corrections: %w", err)
	}
	defer func() { _ = rows.Close() }()

	now := time.Now()
	thirtyDaysAgo := now.AddDate(0, 0, -30)

	stats := &service.LearningStats{
		WeeklyCorrections: make([]int, trendWeeks),
	}
	categoryCount := make(map[string]int)

	for rows.Next() {
		var description string
		var createdAt time.Time
		if err := rows.Scan(&description, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan correction: %w", err)
		}

		stats.TotalCorrections++
		if createdAt.After(thirtyDaysAgo) {
			stats.RecentCorrections++
		}

		categoryCount[inferStatCategory(description)]++

		weeksAgo := int(now.Sub(createdAt).Hours() / (24 * 7))
		if weeksAgo >= 0 && weeksAgo < trendWeeks {
			// Most recent week at the end
			stats.WeeklyCorrections[trendWeeks-1-weeksAgo]++
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate corrections: %w", err)
	}

	for category, count := range categoryCount {
		stats.TopCategories = append(stats.TopCategories, service.CategoryCount{
			Category: category,
			Count:    count,
		})
	}
	sort.SliceStable(stats.TopCategories, func(i, j int) bool {
		return stats.TopCategories[i].Count > stats.TopCategories[j].Count
	})
	if len(stats.TopCategories) > 5 {
		stats.TopCategories = stats.TopCategories[:5]
	}

	// More corrections means more learning. Capped at 20 corrections for up
	// to a 15% estimated improvement.
	score := float64(stats.TotalCorrections) / 20
	if score > 1 {
		score = 1
	}
	stats.AvgConfidenceImprovement = score * 15

	return stats, nil
}

// inferStatCategory buckets a correction's description for reporting. This is
// display-side grouping, separate from the classifier's category tables.
func inferStatCategory(description string) string {
	desc := strings.ToLower(description)

	switch {
	case strings.Contains(desc, "software") || strings.Contains(desc, "subscription"):
		return "Software"
	case strings.Contains(desc, "office") || strings.Contains(desc, "supplies"):
		return "Office Supplies"
	case strings.Contains(desc, "travel") || strings.Contains(desc, "flight"):
		return "Travel"
	case strings.Contains(desc, "food") || strings.Contains(desc, "restaurant"):
		return "Meals"
	case strings.Contains(desc, "gas") || strings.Contains(desc, "fuel"):
		return "Transportation"
	case strings.Contains(desc, "marketing") || strings.Contains(desc, "ads"):
		return "Marketing"
	default:
		return "Other"
	}
}
