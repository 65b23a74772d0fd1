// Package adapters はetfcatalogフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"etf_catalog/internal/feature/etfcatalog/domain"
	"etf_catalog/internal/feature/etfcatalog/domain/entity"
	"etf_catalog/internal/feature/etfcatalog/query"
	"etf_catalog/internal/feature/etfcatalog/usecase"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// etfGorm はCatalogReader・FacetRepository・ETFRepositoryのgorm実装です。
// PostgreSQLとSQLiteの両方で動作します。
type etfGorm struct {
	db *gorm.DB
}

var (
	_ usecase.CatalogReader   = (*etfGorm)(nil)
	_ usecase.FacetRepository = (*etfGorm)(nil)
	_ usecase.ETFRepository   = (*etfGorm)(nil)
)

// NewETFRepository は指定されたDB接続でetfGormリポジトリの新しいインスタンスを生成します。
func NewETFRepository(db *gorm.DB) *etfGorm {
	return &etfGorm{db: db}
}

// Find はプランの述語に一致する行を、プランの並び順とウィンドウで返します。
func (r *etfGorm) Find(ctx context.Context, plan query.Plan) ([]entity.ETF, error) {
	var rows []entity.ETF
	q := r.filtered(ctx, plan.Predicate).
		Order(orderBy(plan.Sort, plan.Dir)).
		Offset(plan.Skip).
		Limit(plan.Take)
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count は述語に一致する行数を返します。ページングは無視します。
func (r *etfGorm) Count(ctx context.Context, pred query.Predicate) (int64, error) {
	var n int64
	if err := r.filtered(ctx, pred).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// FindByTicker はティッカーに一致するETFを返します。見つからない場合はdomain.ErrETFNotFoundを返します。
func (r *etfGorm) FindByTicker(ctx context.Context, ticker string) (*entity.ETF, error) {
	var e entity.ETF
	err := r.db.WithContext(ctx).Where("ticker = ?", ticker).Take(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrETFNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// FindByTickers はリストに含まれるティッカーのETFを返します。順序は保証しません。
func (r *etfGorm) FindByTickers(ctx context.Context, tickers []string) ([]entity.ETF, error) {
	if len(tickers) == 0 {
		return []entity.ETF{}, nil
	}
	var rows []entity.ETF
	if err := r.db.WithContext(ctx).Where("ticker IN ?", tickers).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// filtered は述語を適用したクエリを組み立てます。
func (r *etfGorm) filtered(ctx context.Context, pred query.Predicate) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&entity.ETF{})
	if len(pred.Text) > 0 {
		q = q.Where(textCondition(r.db.Dialector.Name(), pred.Text))
	}
	if len(pred.Issuers) > 0 {
		q = q.Where("issuer IN ?", pred.Issuers)
	}
	if len(pred.Categories) > 0 {
		q = q.Where("category IN ?", pred.Categories)
	}
	return q
}

// textCondition はテキスト条件をORで結合した式を返します。
// 部分一致は大文字小文字を区別する位置関数で評価し、LIKEのワイルドカードを避けます。
// NULLの列はどの条件にも一致しません。
func textCondition(dialect string, matches []query.TextMatch) clause.Expression {
	fn := "instr"
	if dialect == "postgres" {
		fn = "strpos"
	}
	exprs := make([]clause.Expression, 0, len(matches))
	for _, m := range matches {
		exprs = append(exprs, clause.Expr{
			SQL:  fn + "(?, ?) > 0",
			Vars: []any{clause.Column{Name: m.Field.Column()}, m.Needle},
		})
	}
	return clause.Or(exprs...)
}

// orderBy はソートキーの固定列で並べ、同値はtickerで安定させます。
// NULLは方向に関わらず末尾に置きます。
func orderBy(k query.SortKey, d query.Direction) clause.OrderBy {
	dir := " ASC"
	if d.Desc() {
		dir = " DESC"
	}
	col := clause.Column{Name: k.Column()}
	if k == query.SortTicker {
		return clause.OrderBy{Expression: clause.Expr{SQL: "?" + dir, Vars: []any{col}}}
	}
	return clause.OrderBy{Expression: clause.Expr{
		SQL:  "?" + dir + " NULLS LAST, ? ASC",
		Vars: []any{col, clause.Column{Name: query.SortTicker.Column()}},
	}}
}
