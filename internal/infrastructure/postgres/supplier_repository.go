package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/supply-chain-api/internal/domain/entity"
	"github.com/jhoicas/supply-chain-api/internal/domain/repository"
)

var (
	_ repository.SupplierRepository  = (*SupplierRepo)(nil)
	_ repository.AgreementRepository = (*AgreementRepo)(nil)
)

// SupplierRepo proveedores sobre PostgreSQL.
type SupplierRepo struct {
	q Querier
}

func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

func (r *SupplierRepo) GetByID(ctx context.Context, id int) (*entity.Supplier, error) {
	var s entity.Supplier
	err := r.q.QueryRow(ctx,
		`SELECT id, name, contact_name, contact_phone FROM suppliers WHERE id = $1`, id,
	).Scan(&s.ID, &s.Name, &s.ContactName, &s.ContactPhone)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return &s, nil
}

func (r *SupplierRepo) Upsert(ctx context.Context, supplier *entity.Supplier) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO suppliers (id, name, contact_name, contact_phone) VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, contact_name = EXCLUDED.contact_name,
			contact_phone = EXCLUDED.contact_phone`,
		supplier.ID, supplier.Name, supplier.ContactName, supplier.ContactPhone,
	)
	if err != nil {
		return fmt.Errorf("upsert supplier: %w", err)
	}
	return nil
}

// AgreementRepo acuerdos con proveedores. Los días de entrega se guardan como SMALLINT[].
type AgreementRepo struct {
	q Querier
}

func NewAgreementRepository(q Querier) *AgreementRepo {
	return &AgreementRepo{q: q}
}

func (r *AgreementRepo) GetByID(ctx context.Context, id int) (*entity.SupplierAgreement, error) {
	var (
		a    entity.SupplierAgreement
		days []int16
	)
	err := r.q.QueryRow(ctx,
		`SELECT id, supplier_id, delivery_days, self_pickup FROM supplier_agreements WHERE id = $1`, id,
	).Scan(&a.ID, &a.SupplierID, &days, &a.SelfPickup)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get agreement: %w", err)
	}
	a.DeliveryDays = intsToWeekdays(days)
	return &a, nil
}

func (r *AgreementRepo) ListBySupplier(ctx context.Context, supplierID int) ([]*entity.SupplierAgreement, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, supplier_id, delivery_days, self_pickup FROM supplier_agreements WHERE supplier_id = $1 ORDER BY id`,
		supplierID)
	if err != nil {
		return nil, fmt.Errorf("list agreements: %w", err)
	}
	defer rows.Close()
	var list []*entity.SupplierAgreement
	for rows.Next() {
		var (
			a    entity.SupplierAgreement
			days []int16
		)
		if err := rows.Scan(&a.ID, &a.SupplierID, &days, &a.SelfPickup); err != nil {
			return nil, fmt.Errorf("scan agreement: %w", err)
		}
		a.DeliveryDays = intsToWeekdays(days)
		list = append(list, &a)
	}
	return list, rows.Err()
}

func (r *AgreementRepo) Upsert(ctx context.Context, agreement *entity.SupplierAgreement) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO supplier_agreements (id, supplier_id, delivery_days, self_pickup) VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET supplier_id = EXCLUDED.supplier_id, delivery_days = EXCLUDED.delivery_days,
			self_pickup = EXCLUDED.self_pickup`,
		agreement.ID, agreement.SupplierID, weekdaysToInts(agreement.DeliveryDays), agreement.SelfPickup,
	)
	if err != nil {
		return fmt.Errorf("upsert agreement: %w", err)
	}
	return nil
}
