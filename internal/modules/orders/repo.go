package orders

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const txAttempts = 3

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

// Create assigns ids and timestamps, then writes the order and its items in
// one transaction.
func (r *Repo) Create(ctx context.Context, o *Order) error {
	if len(o.Items) == 0 {
		return ErrNoItems
	}
	Prepare(o, time.Now())

	return withTxRetry(ctx, r.db, txAttempts, func(tx *gorm.DB) error {
		items := o.Items
		o.Items = nil
		defer func() { o.Items = items }()

		if err := tx.Create(o).Error; err != nil {
			return err
		}
		return tx.Create(&items).Error
	})
}

// Prepare fills ids, status, timestamps and the total of an order about to
// be written.
func Prepare(o *Order, now time.Time) {
	now = now.UTC()
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.Status == "" {
		o.Status = StatusPlaced
	}
	o.CreatedAt, o.UpdatedAt = now, now
	o.Total = decimal.Zero
	for i := range o.Items {
		it := &o.Items[i]
		if it.ID == "" {
			it.ID = uuid.NewString()
		}
		it.OrderID = o.ID
		it.CreatedAt = now
		o.Total = o.Total.Add(it.LineTotal())
	}
}

func (r *Repo) Get(ctx context.Context, id string) (Order, error) {
	var o Order
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC, id ASC") }).
		First(&o, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Order{}, ErrNotFound
	}
	if err != nil {
		return Order{}, err
	}
	return o, nil
}

type ListParams struct {
	ClientID string
	Page     int
	PageSize int
	Status   string // optional filter
}

type ListResult struct {
	Items []Order
	Total int64
}

// ListByClient returns a client's orders, newest first, without items.
func (r *Repo) ListByClient(ctx context.Context, in ListParams) (ListResult, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	size := in.PageSize
	if size < 1 || size > 100 {
		size = 20
	}

	q := r.db.WithContext(ctx).Model(&Order{}).Where("client_id = ?", in.ClientID)
	if status := strings.TrimSpace(in.Status); status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return ListResult{}, err
	}

	var list []Order
	if err := q.Order("created_at DESC").
		Limit(size).
		Offset((page - 1) * size).
		Find(&list).Error; err != nil {
		return ListResult{}, err
	}
	return ListResult{Items: list, Total: total}, nil
}
