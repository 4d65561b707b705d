package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/supply-chain-api/internal/domain/entity"
	"github.com/jhoicas/supply-chain-api/internal/domain/repository"
)

var (
	_ repository.OfferRepository    = (*OfferRepo)(nil)
	_ repository.DiscountRepository = (*DiscountRepo)(nil)
)

// OfferRepo ofertas producto-proveedor sobre PostgreSQL. No carga descuentos.
type OfferRepo struct {
	q Querier
}

func NewOfferRepository(q Querier) *OfferRepo {
	return &OfferRepo{q: q}
}

const offerColumns = `catalog_number, product_id, supplier_id, agreement_id, price, unit`

func (r *OfferRepo) Upsert(ctx context.Context, offer *entity.SupplierOffer) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO supplier_offers (`+offerColumns+`) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (agreement_id, product_id) DO UPDATE SET catalog_number = EXCLUDED.catalog_number,
			supplier_id = EXCLUDED.supplier_id, price = EXCLUDED.price, unit = EXCLUDED.unit`,
		offer.CatalogNumber, offer.ProductID, offer.SupplierID, offer.AgreementID, offer.Price, offer.Unit,
	)
	if err != nil {
		return fmt.Errorf("upsert offer: %w", err)
	}
	return nil
}

func (r *OfferRepo) ListByProduct(ctx context.Context, productID int) ([]*entity.SupplierOffer, error) {
	return r.list(ctx, `SELECT `+offerColumns+` FROM supplier_offers WHERE product_id = $1 ORDER BY supplier_id, agreement_id`, productID)
}

func (r *OfferRepo) ListByCatalogNumber(ctx context.Context, catalogNumber int) ([]*entity.SupplierOffer, error) {
	return r.list(ctx, `SELECT `+offerColumns+` FROM supplier_offers WHERE catalog_number = $1 ORDER BY supplier_id, agreement_id`, catalogNumber)
}

func (r *OfferRepo) GetByAgreementAndProduct(ctx context.Context, agreementID, productID int) (*entity.SupplierOffer, error) {
	var o entity.SupplierOffer
	err := r.q.QueryRow(ctx,
		`SELECT `+offerColumns+` FROM supplier_offers WHERE agreement_id = $1 AND product_id = $2`,
		agreementID, productID,
	).Scan(&o.CatalogNumber, &o.ProductID, &o.SupplierID, &o.AgreementID, &o.Price, &o.Unit)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get offer: %w", err)
	}
	return &o, nil
}

func (r *OfferRepo) list(ctx context.Context, query string, arg int) ([]*entity.SupplierOffer, error) {
	rows, err := r.q.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list offers: %w", err)
	}
	defer rows.Close()
	var list []*entity.SupplierOffer
	for rows.Next() {
		var o entity.SupplierOffer
		if err := rows.Scan(&o.CatalogNumber, &o.ProductID, &o.SupplierID, &o.AgreementID, &o.Price, &o.Unit); err != nil {
			return nil, fmt.Errorf("scan offer: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}

// DiscountRepo escalones de descuento. Se listan en orden de inserción (seq), que es el orden
// que usa la política de desempate last-write-wins.
type DiscountRepo struct {
	q Querier
}

func NewDiscountRepository(q Querier) *DiscountRepo {
	return &DiscountRepo{q: q}
}

const discountColumns = `id, scope, owner_id, agreement_id, product_id, catalog_number, category,
	min_quantity, percentage, valid_from, valid_to`

func (r *DiscountRepo) Upsert(ctx context.Context, rule *entity.DiscountRule) error {
	if rule.ID == "" {
		rule.ID = uuid.New().String()
	}
	err := r.q.QueryRow(ctx, `
		INSERT INTO discount_rules (`+discountColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (scope, owner_id, agreement_id, product_id, catalog_number, category, min_quantity)
		DO UPDATE SET percentage = EXCLUDED.percentage, valid_from = EXCLUDED.valid_from, valid_to = EXCLUDED.valid_to
		RETURNING id`,
		rule.ID, string(rule.Scope), rule.OwnerID, rule.AgreementID, rule.ProductID, rule.CatalogNumber,
		rule.Category, rule.MinQuantity, rule.Percentage, rule.ValidFrom, rule.ValidTo,
	).Scan(&rule.ID)
	if err != nil {
		return fmt.Errorf("upsert discount: %w", err)
	}
	return nil
}

func (r *DiscountRepo) ListForOffer(ctx context.Context, supplierID, agreementID, productID int) ([]entity.DiscountRule, error) {
	return r.list(ctx, `SELECT `+discountColumns+` FROM discount_rules
		WHERE scope = 'SUPPLIER' AND owner_id = $1 AND agreement_id = $2 AND product_id = $3 ORDER BY seq`,
		supplierID, agreementID, productID)
}

func (r *DiscountRepo) ListByCatalogNumber(ctx context.Context, scope entity.DiscountScope, catalogNumber int) ([]entity.DiscountRule, error) {
	return r.list(ctx, `SELECT `+discountColumns+` FROM discount_rules
		WHERE scope = $1 AND catalog_number = $2 AND category = '' ORDER BY seq`,
		string(scope), catalogNumber)
}

func (r *DiscountRepo) ListByCategory(ctx context.Context, scope entity.DiscountScope, category string) ([]entity.DiscountRule, error) {
	return r.list(ctx, `SELECT `+discountColumns+` FROM discount_rules
		WHERE scope = $1 AND category = $2 AND category <> '' ORDER BY seq`,
		string(scope), category)
}

func (r *DiscountRepo) list(ctx context.Context, query string, args ...any) ([]entity.DiscountRule, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list discounts: %w", err)
	}
	defer rows.Close()
	var list []entity.DiscountRule
	for rows.Next() {
		var (
			d     entity.DiscountRule
			scope string
		)
		if err := rows.Scan(&d.ID, &scope, &d.OwnerID, &d.AgreementID, &d.ProductID, &d.CatalogNumber,
			&d.Category, &d.MinQuantity, &d.Percentage, &d.ValidFrom, &d.ValidTo); err != nil {
			return nil, fmt.Errorf("scan discount: %w", err)
		}
		d.Scope = entity.DiscountScope(scope)
		list = append(list, d)
	}
	return list, rows.Err()
}
