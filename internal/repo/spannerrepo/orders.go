package spannerrepo

import (
	"context"
	"encoding/json"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/storefront-service/internal/app/contracts"
	ordering "github.com/light-bringer/storefront-service/internal/app/ordering/domain"
	"github.com/light-bringer/storefront-service/internal/models/m_order"
	"github.com/light-bringer/storefront-service/internal/models/m_order_line"
	"github.com/light-bringer/storefront-service/internal/pkg/money"
	"github.com/light-bringer/storefront-service/internal/pkg/query"
)

type orderRepo struct {
	tx        *tx
	model     *m_order.Model
	lineModel *m_order_line.Model
}

func newOrderRepo(t *tx) *orderRepo {
	return &orderRepo{tx: t, model: m_order.NewModel(), lineModel: m_order_line.NewModel()}
}

func (r *orderRepo) GetByID(ctx context.Context, orderID string) (*ordering.Order, error) {
	row, err := r.tx.rd.ReadRow(ctx, m_order.TableName, spanner.Key{orderID}, m_order.Columns)
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, fmt.Errorf("%w: %s", ordering.ErrOrderNotFound, orderID)
		}
		return nil, fmt.Errorf("failed to read order: %w", err)
	}

	var data m_order.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse order: %w", err)
	}

	lines, err := r.loadLines(ctx, []string{orderID})
	if err != nil {
		return nil, err
	}
	return orderFromData(&data, lines[orderID])
}

// List returns orders newest first. Lines are fetched in one query for the whole page.
func (r *orderRepo) List(ctx context.Context, filter contracts.OrderFilter) ([]*ordering.Order, error) {
	q := query.From(m_order.TableName).
		Select(m_order.Columns...).
		OrderBy(m_order.CreatedAt, query.Desc).
		OrderBy(m_order.OrderID, query.Asc)
	if filter.UserID != "" {
		q = q.Where(query.Eq(m_order.UserID, filter.UserID))
	}
	if filter.Status != "" {
		q = q.Where(query.Eq(m_order.Status, string(filter.Status)))
	}

	headers, err := queryRows(ctx, r.tx.rd, q.Build(), func(row *spanner.Row) (*m_order.Data, error) {
		var data m_order.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to parse order: %w", err)
		}
		return &data, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	if len(headers) == 0 {
		return []*ordering.Order{}, nil
	}

	ids := make([]string, len(headers))
	for i, h := range headers {
		ids[i] = h.OrderID
	}
	lines, err := r.loadLines(ctx, ids)
	if err != nil {
		return nil, err
	}

	orders := make([]*ordering.Order, 0, len(headers))
	for _, h := range headers {
		o, err := orderFromData(h, lines[h.OrderID])
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

// Insert writes the header and its interleaved lines.
func (r *orderRepo) Insert(_ context.Context, order *ordering.Order) error {
	num, den, err := moneyParts(order.Total(), "order total")
	if err != nil {
		return err
	}
	shipping, err := shippingJSON(order.Shipping())
	if err != nil {
		return err
	}

	muts := []*spanner.Mutation{r.model.InsertMut(&m_order.Data{
		OrderID:          order.ID(),
		UserID:           order.UserID(),
		UserEmail:        order.UserEmail(),
		TotalNumerator:   num,
		TotalDenominator: den,
		Status:           string(order.Status()),
		Shipping:         shipping,
		Version:          1,
		CreatedAt:        order.CreatedAt(),
		UpdatedAt:        order.UpdatedAt(),
	})}

	for i, l := range order.Lines() {
		data, err := lineToData(order.ID(), int64(i+1), l)
		if err != nil {
			return err
		}
		muts = append(muts, r.lineModel.InsertMut(data))
	}

	return r.tx.write(muts...)
}

// Update persists status changes. Lines and total are immutable.
func (r *orderRepo) Update(_ context.Context, order *ordering.Order) error {
	changes := order.Changes()
	if !changes.HasChanges() {
		return nil
	}

	updates := map[string]interface{}{
		m_order.UpdatedAt: order.UpdatedAt(),
		m_order.Version:   order.Version() + 1,
	}
	if changes.Dirty(ordering.FieldStatus) {
		updates[m_order.Status] = string(order.Status())
	}

	return r.tx.write(r.model.UpdateMut(order.ID(), updates))
}

// loadLines returns lines grouped by order ID, in line order.
func (r *orderRepo) loadLines(ctx context.Context, orderIDs []string) (map[string][]ordering.Line, error) {
	stmt := query.From(m_order_line.TableName).
		Select(m_order_line.Columns...).
		Where(query.In(m_order_line.OrderID, orderIDs)).
		OrderBy(m_order_line.OrderID, query.Asc).
		OrderBy(m_order_line.LineNo, query.Asc).
		Build()

	rows, err := queryRows(ctx, r.tx.rd, stmt, func(row *spanner.Row) (*m_order_line.Data, error) {
		var data m_order_line.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to parse order line: %w", err)
		}
		return &data, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load order lines: %w", err)
	}

	grouped := make(map[string][]ordering.Line, len(orderIDs))
	for _, data := range rows {
		l, err := lineFromData(data)
		if err != nil {
			return nil, err
		}
		grouped[data.OrderID] = append(grouped[data.OrderID], l)
	}
	return grouped, nil
}

func orderFromData(data *m_order.Data, lines []ordering.Line) (*ordering.Order, error) {
	total, err := money.New(data.TotalNumerator, data.TotalDenominator)
	if err != nil {
		return nil, fmt.Errorf("invalid total for order %s: %w", data.OrderID, err)
	}

	var shipping ordering.ShippingInfo
	if data.Shipping.Valid {
		raw, err := json.Marshal(data.Shipping.Value)
		if err != nil {
			return nil, fmt.Errorf("failed to read shipping for order %s: %w", data.OrderID, err)
		}
		if err := json.Unmarshal(raw, &shipping); err != nil {
			return nil, fmt.Errorf("failed to parse shipping for order %s: %w", data.OrderID, err)
		}
	}

	return ordering.Reconstruct(ordering.Snapshot{
		ID:        data.OrderID,
		UserID:    data.UserID,
		UserEmail: data.UserEmail,
		Lines:     lines,
		Total:     total,
		Status:    ordering.Status(data.Status),
		Shipping:  shipping,
		Version:   data.Version,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}), nil
}

func lineToData(orderID string, lineNo int64, l ordering.Line) (*m_order_line.Data, error) {
	purchaseNum, purchaseDen, err := moneyParts(l.PurchasePrice, "line purchase price")
	if err != nil {
		return nil, err
	}
	saleNum, saleDen, err := moneyParts(l.SalePrice, "line sale price")
	if err != nil {
		return nil, err
	}
	return &m_order_line.Data{
		OrderID:                  orderID,
		LineNo:                   lineNo,
		ProductID:                l.ProductID,
		ProductName:              l.ProductName,
		PurchasePriceNumerator:   purchaseNum,
		PurchasePriceDenominator: purchaseDen,
		SalePriceNumerator:       saleNum,
		SalePriceDenominator:     saleDen,
		Quantity:                 l.Quantity,
	}, nil
}

func lineFromData(data *m_order_line.Data) (ordering.Line, error) {
	purchase, err := money.New(data.PurchasePriceNumerator, data.PurchasePriceDenominator)
	if err != nil {
		return ordering.Line{}, fmt.Errorf("invalid line purchase price: %w", err)
	}
	sale, err := money.New(data.SalePriceNumerator, data.SalePriceDenominator)
	if err != nil {
		return ordering.Line{}, fmt.Errorf("invalid line sale price: %w", err)
	}
	return ordering.Line{
		ProductID:     data.ProductID,
		ProductName:   data.ProductName,
		PurchasePrice: purchase,
		SalePrice:     sale,
		Quantity:      data.Quantity,
	}, nil
}

func shippingJSON(s ordering.ShippingInfo) (spanner.NullJSON, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return spanner.NullJSON{}, fmt.Errorf("failed to encode shipping: %w", err)
	}
	return spanner.NullJSON{Value: json.RawMessage(raw), Valid: true}, nil
}
