// Package algorithms содержит чистые алгоритмы без обращений к БД.
package algorithms

import (
	"sort"

	"jigz_backend/internal/models"
)

// RankApplications ранжирует отклики по ставке монет.
// Порядок: больше coins_bid выше; при равенстве раньше поданный выше.
// Ранги начинаются с 1 и не разделяются при равных ставках.
// Функция детерминирована: одинаковый вход всегда дает одинаковый выход.
func RankApplications(applications []models.Application) []models.RankedApplication {
	ranked := make([]models.RankedApplication, 0, len(applications))
	for _, application := range applications {
		ranked = append(ranked, models.RankedApplication{Application: application})
	}

	// Стабильная сортировка сохраняет хронологию при равных ставках,
	// поэтому вход должен быть отсортирован по created_at ASC.
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].CoinsBid != ranked[j].CoinsBid {
			return ranked[i].CoinsBid > ranked[j].CoinsBid
		}
		return ranked[i].CreatedAt.Before(ranked[j].CreatedAt)
	})

	for i := range ranked {
		ranked[i].Rank = i + 1
		ranked[i].IsBidding = ranked[i].CoinsBid > 0
	}
	return ranked
}
