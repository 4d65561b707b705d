package repository

import (
	"context"

	"github.com/jhoicas/supply-chain-api/internal/domain/entity"
)

// SupplierRepository define el puerto de persistencia para proveedores.
type SupplierRepository interface {
	GetByID(ctx context.Context, id int) (*entity.Supplier, error)
	Upsert(ctx context.Context, supplier *entity.Supplier) error
}

// AgreementRepository define el puerto de persistencia para acuerdos con proveedores.
type AgreementRepository interface {
	GetByID(ctx context.Context, id int) (*entity.SupplierAgreement, error)
	ListBySupplier(ctx context.Context, supplierID int) ([]*entity.SupplierAgreement, error)
	Upsert(ctx context.Context, agreement *entity.SupplierAgreement) error
}
