package adapters

import (
	"context"

	"etf_catalog/internal/feature/etfcatalog/domain/entity"
)

// DistinctIssuers はカタログ全体のNULLでない発行体を重複なしで返します。
// トリムと並び替えはusecase側で行います。
func (r *etfGorm) DistinctIssuers(ctx context.Context) ([]string, error) {
	var vals []string
	if err := r.db.WithContext(ctx).
		Model(&entity.ETF{}).
		Where("issuer IS NOT NULL").
		Distinct().
		Pluck("issuer", &vals).Error; err != nil {
		return nil, err
	}
	return vals, nil
}

// DistinctCategories はカタログ全体のNULLでないカテゴリを重複なしで返します。
func (r *etfGorm) DistinctCategories(ctx context.Context) ([]string, error) {
	var vals []string
	if err := r.db.WithContext(ctx).
		Model(&entity.ETF{}).
		Where("category IS NOT NULL").
		Distinct().
		Pluck("category", &vals).Error; err != nil {
		return nil, err
	}
	return vals, nil
}
