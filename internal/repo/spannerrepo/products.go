package spannerrepo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"

	catalog "github.com/light-bringer/storefront-service/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-service/internal/app/contracts"
	"github.com/light-bringer/storefront-service/internal/models/m_product"
	"github.com/light-bringer/storefront-service/internal/pkg/money"
	"github.com/light-bringer/storefront-service/internal/pkg/query"
)

type productRepo struct {
	tx    *tx
	model *m_product.Model
}

func newProductRepo(t *tx) *productRepo {
	return &productRepo{tx: t, model: m_product.NewModel()}
}

// GetByID retrieves a product by ID, reconstructing the domain aggregate.
func (r *productRepo) GetByID(ctx context.Context, productID string) (*catalog.Product, error) {
	row, err := r.tx.rd.ReadRow(ctx, m_product.TableName, spanner.Key{productID}, m_product.Columns)
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, fmt.Errorf("%w: %s", catalog.ErrProductNotFound, productID)
		}
		return nil, fmt.Errorf("failed to read product: %w", err)
	}
	return decodeProduct(row)
}

// List returns products newest first.
func (r *productRepo) List(ctx context.Context, filter contracts.ProductFilter) ([]*catalog.Product, error) {
	q := query.From(m_product.TableName).
		Select(m_product.Columns...).
		OrderBy(m_product.CreatedAt, query.Desc).
		OrderBy(m_product.ProductID, query.Asc)
	if filter.ActiveOnly {
		q = q.Where(query.Eq(m_product.Active, true))
	}

	products, err := queryRows(ctx, r.tx.rd, q.Build(), decodeProduct)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (r *productRepo) Insert(_ context.Context, product *catalog.Product) error {
	data, err := productToData(product)
	if err != nil {
		return err
	}
	data.Version = 1
	return r.tx.write(r.model.InsertMut(data))
}

// Update writes only the dirty fields and bumps the version.
func (r *productRepo) Update(_ context.Context, product *catalog.Product) error {
	changes := product.Changes()
	if !changes.HasChanges() {
		return nil
	}

	updates := make(map[string]interface{})
	if changes.Dirty(catalog.FieldName) {
		updates[m_product.Name] = product.Name()
	}
	if changes.Dirty(catalog.FieldDescription) {
		updates[m_product.Description] = product.Description()
	}
	if changes.Dirty(catalog.FieldPurchasePrice) {
		num, den, err := moneyParts(product.PurchasePrice(), "purchase price")
		if err != nil {
			return err
		}
		updates[m_product.PurchasePriceNumerator] = num
		updates[m_product.PurchasePriceDenominator] = den
	}
	if changes.Dirty(catalog.FieldSalePrice) {
		num, den, err := moneyParts(product.SalePrice(), "sale price")
		if err != nil {
			return err
		}
		updates[m_product.SalePriceNumerator] = num
		updates[m_product.SalePriceDenominator] = den
	}
	if changes.Dirty(catalog.FieldMargin) {
		num, den, err := moneyParts(product.Margin(), "margin")
		if err != nil {
			return err
		}
		updates[m_product.MarginNumerator] = num
		updates[m_product.MarginDenominator] = den
	}
	if changes.Dirty(catalog.FieldStock) {
		updates[m_product.Stock] = product.Stock()
	}
	if changes.Dirty(catalog.FieldActive) {
		updates[m_product.Active] = product.IsActive()
	}
	if changes.Dirty(catalog.FieldImages) {
		updates[m_product.Images] = product.Images()
	}

	updates[m_product.UpdatedAt] = product.UpdatedAt()
	updates[m_product.Version] = product.Version() + 1

	return r.tx.write(r.model.UpdateMut(product.ID(), updates))
}

func (r *productRepo) Delete(ctx context.Context, productID string) error {
	if r.tx.plan == nil {
		return contracts.ErrReadOnly
	}
	_, err := r.tx.rd.ReadRow(ctx, m_product.TableName, spanner.Key{productID}, []string{m_product.ProductID})
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return fmt.Errorf("%w: %s", catalog.ErrProductNotFound, productID)
		}
		return fmt.Errorf("failed to read product: %w", err)
	}
	return r.tx.write(r.model.DeleteMut(productID))
}

func productToData(product *catalog.Product) (*m_product.Data, error) {
	purchaseNum, purchaseDen, err := moneyParts(product.PurchasePrice(), "purchase price")
	if err != nil {
		return nil, err
	}
	saleNum, saleDen, err := moneyParts(product.SalePrice(), "sale price")
	if err != nil {
		return nil, err
	}
	marginNum, marginDen, err := moneyParts(product.Margin(), "margin")
	if err != nil {
		return nil, err
	}

	return &m_product.Data{
		ProductID:                product.ID(),
		Name:                     product.Name(),
		Description:              product.Description(),
		PurchasePriceNumerator:   purchaseNum,
		PurchasePriceDenominator: purchaseDen,
		SalePriceNumerator:       saleNum,
		SalePriceDenominator:     saleDen,
		MarginNumerator:          marginNum,
		MarginDenominator:        marginDen,
		Stock:                    product.Stock(),
		Active:                   product.IsActive(),
		Images:                   product.Images(),
		Version:                  product.Version(),
		CreatedAt:                product.CreatedAt(),
		UpdatedAt:                product.UpdatedAt(),
	}, nil
}

// decodeProduct rebuilds the aggregate. The stored margin is ignored; the domain
// derives it from the prices.
func decodeProduct(row *spanner.Row) (*catalog.Product, error) {
	var data m_product.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse product: %w", err)
	}

	purchase, err := money.New(data.PurchasePriceNumerator, data.PurchasePriceDenominator)
	if err != nil {
		return nil, fmt.Errorf("invalid purchase price for %s: %w", data.ProductID, err)
	}
	sale, err := money.New(data.SalePriceNumerator, data.SalePriceDenominator)
	if err != nil {
		return nil, fmt.Errorf("invalid sale price for %s: %w", data.ProductID, err)
	}

	return catalog.Reconstruct(catalog.Snapshot{
		ID:            data.ProductID,
		Name:          data.Name,
		Description:   data.Description,
		PurchasePrice: purchase,
		SalePrice:     sale,
		Stock:         data.Stock,
		Active:        data.Active,
		Images:        data.Images,
		Version:       data.Version,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}), nil
}

// moneyParts splits m for the numerator/denominator column pair.
func moneyParts(m *money.Money, field string) (int64, int64, error) {
	num, den, err := m.Parts()
	if err != nil {
		return 0, 0, fmt.Errorf("%s exceeds storage capacity: %w", field, err)
	}
	return num, den, nil
}
